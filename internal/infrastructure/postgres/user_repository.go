package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	u.id, u.name, u.email, u.password_hash, COALESCE(u.mobile_number, ''), u.role,
	u.verification_status, u.verification_notes, u.created_at, u.updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool, tx: NewTxRunner(pool)}
}

// Create persiste el usuario y su perfil en una transacción.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	err := r.tx.Run(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, mobile_number, role, verification_status,
				verification_notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)`,
			user.ID, user.Name, user.Email, user.PasswordHash, user.MobileNumber, string(user.Role),
			string(user.VerificationStatus), user.VerificationNotes, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if p := user.RetailerProfile; p != nil {
			_, err = tx.Exec(ctx, `
				INSERT INTO retailer_profiles (id, user_id, shop_name, shop_address, gst_number, license_number,
					aadhar_card_number, pan_card_number, referral_code, shop_image, aadhar_image, pan_image, license_image)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				p.ID, user.ID, p.ShopName, p.ShopAddress, p.GSTNumber, p.LicenseNumber,
				p.AadharCardNumber, p.PanCardNumber, p.ReferralCode, p.ShopImage, p.AadharImage, p.PanImage, p.LicenseImage,
			)
			if err != nil {
				return fmt.Errorf("insert retailer profile: %w", err)
			}
		}
		if p := user.WholesalerProfile; p != nil {
			_, err = tx.Exec(ctx, `
				INSERT INTO wholesaler_profiles (id, user_id, company_name, company_address, gst_number, license_number,
					aadhar_card_number, pan_card_number, company_image, aadhar_image, pan_image, license_image)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				p.ID, user.ID, p.CompanyName, p.CompanyAddress, p.GSTNumber, p.LicenseNumber,
				p.AadharCardNumber, p.PanCardNumber, p.CompanyImage, p.AadharImage, p.PanImage, p.LicenseImage,
			)
			if err != nil {
				return fmt.Errorf("insert wholesaler profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if isEmailConflict(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario con su perfil completo.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + `,
			rp.id, COALESCE(rp.shop_name, ''), COALESCE(rp.shop_address, ''), COALESCE(rp.gst_number, ''),
			COALESCE(rp.license_number, ''), COALESCE(rp.aadhar_card_number, ''), COALESCE(rp.pan_card_number, ''),
			COALESCE(rp.referral_code, ''), COALESCE(rp.shop_image, ''), COALESCE(rp.aadhar_image, ''),
			COALESCE(rp.pan_image, ''), COALESCE(rp.license_image, ''),
			wp.id, COALESCE(wp.company_name, ''), COALESCE(wp.company_address, ''), COALESCE(wp.gst_number, ''),
			COALESCE(wp.license_number, ''), COALESCE(wp.aadhar_card_number, ''), COALESCE(wp.pan_card_number, ''),
			COALESCE(wp.company_image, ''), COALESCE(wp.aadhar_image, ''), COALESCE(wp.pan_image, ''),
			COALESCE(wp.license_image, '')
		FROM users u
		LEFT JOIN retailer_profiles rp ON rp.user_id = u.id
		LEFT JOIN wholesaler_profiles wp ON wp.user_id = u.id
		WHERE u.id = $1`

	var (
		u          entity.User
		role       string
		status     string
		rpID, wpID *string
		rp         entity.RetailerProfile
		wp         entity.WholesalerProfile
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.MobileNumber, &role,
		&status, &u.VerificationNotes, &u.CreatedAt, &u.UpdatedAt,
		&rpID, &rp.ShopName, &rp.ShopAddress, &rp.GSTNumber,
		&rp.LicenseNumber, &rp.AadharCardNumber, &rp.PanCardNumber,
		&rp.ReferralCode, &rp.ShopImage, &rp.AadharImage,
		&rp.PanImage, &rp.LicenseImage,
		&wpID, &wp.CompanyName, &wp.CompanyAddress, &wp.GSTNumber,
		&wp.LicenseNumber, &wp.AadharCardNumber, &wp.PanCardNumber,
		&wp.CompanyImage, &wp.AadharImage, &wp.PanImage,
		&wp.LicenseImage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	u.Role = entity.Role(role)
	u.VerificationStatus = entity.VerificationStatus(status)
	if rpID != nil {
		rp.ID, rp.UserID = *rpID, u.ID
		u.RetailerProfile = &rp
	}
	if wpID != nil {
		wp.ID, wp.UserID = *wpID, u.ID
		u.WholesalerProfile = &wp
	}
	return &u, nil
}

// GetByEmail obtiene un usuario por email, sin perfil.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1 LIMIT 1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List lista usuarios más recientes primero, con el resumen de su perfil.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	where, args := buildUserWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s,
			rp.id, COALESCE(rp.shop_name, ''), COALESCE(rp.shop_address, ''), COALESCE(rp.gst_number, ''),
			wp.id, COALESCE(wp.company_name, ''), COALESCE(wp.company_address, ''), COALESCE(wp.gst_number, '')
		FROM users u
		LEFT JOIN retailer_profiles rp ON rp.user_id = u.id
		LEFT JOIN wholesaler_profiles wp ON wp.user_id = u.id
		%s
		ORDER BY u.created_at DESC
		LIMIT $%d OFFSET $%d`, userColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0, limit)
	for rows.Next() {
		var (
			u          entity.User
			role       string
			status     string
			rpID, wpID *string
			rp         entity.RetailerProfile
			wp         entity.WholesalerProfile
		)
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.MobileNumber, &role,
			&status, &u.VerificationNotes, &u.CreatedAt, &u.UpdatedAt,
			&rpID, &rp.ShopName, &rp.ShopAddress, &rp.GSTNumber,
			&wpID, &wp.CompanyName, &wp.CompanyAddress, &wp.GSTNumber,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = entity.Role(role)
		u.VerificationStatus = entity.VerificationStatus(status)
		if rpID != nil {
			rp.ID, rp.UserID = *rpID, u.ID
			u.RetailerProfile = &rp
		}
		if wpID != nil {
			wp.ID, wp.UserID = *wpID, u.ID
			u.WholesalerProfile = &wp
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Count cuenta usuarios que cumplen el filtro.
func (r *UserRepo) Count(ctx context.Context, filter repository.UserFilter) (int, error) {
	where, args := buildUserWhere(filter)
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// UpdateVerification fija estado y notas (notes nil conserva las actuales) en una sola sentencia.
func (r *UserRepo) UpdateVerification(ctx context.Context, id string, status entity.VerificationStatus, notes *string) (*entity.User, error) {
	query := `
		UPDATE users u SET
			verification_status = $2,
			verification_notes = COALESCE($3, u.verification_notes),
			updated_at = NOW()
		WHERE u.id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, query, id, string(status), notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update verification: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u      entity.User
		role   string
		status string
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.MobileNumber, &role,
		&status, &u.VerificationNotes, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.VerificationStatus = entity.VerificationStatus(status)
	return &u, nil
}

// buildUserWhere arma la cláusula WHERE con placeholders $1..$n.
func buildUserWhere(f repository.UserFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if len(f.Roles) > 0 {
		roles := make([]string, 0, len(f.Roles))
		for _, r := range f.Roles {
			roles = append(roles, string(r))
		}
		args = append(args, roles)
		conds = append(conds, fmt.Sprintf("u.role = ANY($%d)", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("u.verification_status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
