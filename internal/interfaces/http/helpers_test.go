package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/wholesetail-admin-api/internal/application/analytics"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/auth"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/usecase"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/verification"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/repository"
	apphttp "github.com/jhoicas/wholesetail-admin-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/wholesetail-admin-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "wholesetail-test"
	testOrigin    = "https://admin.wholesetail.in"
)

// memRepo UserRepository en memoria, suficiente para las rutas HTTP.
type memRepo struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	updateErr error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*entity.User{}}
}

func (m *memRepo) add(u *entity.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *memRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memRepo) match(f repository.UserFilter) []*entity.User {
	var out []*entity.User
	for _, u := range m.users {
		if f.Status != "" && u.VerificationStatus != f.Status {
			continue
		}
		if len(f.Roles) > 0 {
			found := false
			for _, r := range f.Roles {
				found = found || r == u.Role
			}
			if !found {
				continue
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memRepo) List(_ context.Context, f repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.match(f)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memRepo) Count(_ context.Context, f repository.UserFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.match(f)), nil
}

func (m *memRepo) UpdateVerification(_ context.Context, id string, status entity.VerificationStatus, notes *string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.VerificationStatus = status
	if notes != nil {
		u.VerificationNotes = notes
	}
	u.UpdatedAt = time.Now()
	return u, nil
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (r *recordingDispatcher) Dispatch(_ context.Context, n ports.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

type testEnv struct {
	app  *fiber.App
	repo *memRepo
	disp *recordingDispatcher
}

// buildTestApp arma la app completa (router, error handler y CORS) sobre el repo en memoria.
func buildTestApp(t *testing.T, bypass bool) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	env := &testEnv{repo: newMemRepo(), disp: &recordingDispatcher{}}

	guard := auth.NewGuard(testJWTSecret, bypass)
	uploadUC := usecase.NewUploadUseCase(nil, "wholesetail", log)
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(env.repo, uploadUC, env.disp, nil, guard,
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, log),
		Guard:          guard,
		VerificationUC: verification.NewUseCase(guard, env.repo, env.disp, log),
		UserUC:         usecase.NewUserUseCase(env.repo),
		DashboardUC:    appanalytics.NewDashboardUseCase(env.repo),
		UploadUC:       uploadUC,
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(false, log)})
	env.app.Use(apphttp.CORSMiddleware([]string{testOrigin}))
	apphttp.Router(env.app, deps)
	return env
}

// seedUser agrega un usuario con password "password123".
func (e *testEnv) seedUser(t *testing.T, id, email string, role entity.Role, status entity.VerificationStatus, age time.Duration) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:                 id,
		Name:               "Usuario " + id,
		Email:              email,
		PasswordHash:       string(hash),
		Role:               role,
		VerificationStatus: status,
		CreatedAt:          time.Now().Add(-age),
		UpdatedAt:          time.Now().Add(-age),
	}
	switch role {
	case entity.RoleRetailer:
		u.RetailerProfile = &entity.RetailerProfile{ID: "rp-" + id, UserID: id, ShopName: "Tienda " + id}
	case entity.RoleWholesaler:
		u.WholesalerProfile = &entity.WholesalerProfile{ID: "wp-" + id, UserID: id, CompanyName: "Empresa " + id}
	}
	e.repo.add(u)
	return u
}

// tokenForRole genera un header Bearer con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Identity{
		ID: "admin-1", Email: "admin@wholesetail.in", Name: "Admin", Role: role,
	}, 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza la petición contra la app y devuelve status y cuerpo decodificado.
// doRawRequest envía el cuerpo tal cual, con el Content-Type indicado.
func doRawRequest(t *testing.T, app *fiber.App, method, path, authHeader, contentType, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}
