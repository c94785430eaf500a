package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/pkg/metrics"
)

// MaxImageBytes tamaño máximo de una imagen decodificada.
const MaxImageBytes = 10 << 20

// ErrStorageDisabled no hay object storage configurado (S3_BUCKET vacío).
var ErrStorageDisabled = errors.New("image storage not configured")

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadUseCase sube imágenes en base64 (crudo o data-URL) al object storage.
type UploadUseCase struct {
	store         ports.ImageStore // nil si el storage está desactivado
	defaultFolder string
	log           zerolog.Logger
}

// NewUploadUseCase construye el caso de uso. store puede ser nil.
func NewUploadUseCase(store ports.ImageStore, defaultFolder string, log zerolog.Logger) *UploadUseCase {
	if defaultFolder == "" {
		defaultFolder = "wholesetail"
	}
	return &UploadUseCase{store: store, defaultFolder: defaultFolder, log: log}
}

// Upload decodifica in.Image y devuelve la URL pública.
func (uc *UploadUseCase) Upload(ctx context.Context, in dto.UploadRequest) (*dto.UploadResponse, error) {
	if strings.TrimSpace(in.Image) == "" {
		return nil, domain.NewValidationError("Image is required")
	}
	folder := strings.Trim(strings.TrimSpace(in.Folder), "/")
	if folder == "" {
		folder = uc.defaultFolder
	}
	if strings.Contains(folder, "..") {
		return nil, domain.NewValidationError("Invalid folder")
	}
	url, err := uc.put(ctx, in.Image, folder)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{URL: url}, nil
}

// StoreIfEmbedded sube value solo si es un data-URL; cualquier otro valor
// (URL ya subida o vacío) se devuelve tal cual.
func (uc *UploadUseCase) StoreIfEmbedded(ctx context.Context, value, folder string) (string, error) {
	if !strings.HasPrefix(value, "data:") {
		return value, nil
	}
	return uc.put(ctx, value, folder)
}

func (uc *UploadUseCase) put(ctx context.Context, raw, folder string) (string, error) {
	if uc.store == nil {
		return "", ErrStorageDisabled
	}
	img, err := DecodeImage(raw)
	if err != nil {
		metrics.RecordUpload(folder, "invalid")
		return "", err
	}
	url, err := uc.store.Upload(ctx, img, folder)
	if err != nil {
		metrics.RecordUpload(folder, "failed")
		uc.log.Error().Err(err).Str("folder", folder).Msg("fallo subiendo imagen")
		return "", fmt.Errorf("upload: %w", err)
	}
	metrics.RecordUpload(folder, "ok")
	return url, nil
}

// DecodeImage acepta "data:<mime>;base64,<datos>" o base64 crudo.
// El tipo real se detecta sobre los bytes; solo se aceptan jpeg, png, gif y webp.
func DecodeImage(raw string) (ports.Image, error) {
	payload := strings.TrimSpace(raw)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.Contains(payload[:comma], ";base64") {
			return ports.Image{}, domain.NewValidationError("Image must be base64 encoded")
		}
		payload = payload[comma+1:]
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+2 {
		return ports.Image{}, domain.NewValidationError("Image is too large")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return ports.Image{}, domain.NewValidationError("Image must be base64 encoded")
		}
	}
	if len(data) == 0 {
		return ports.Image{}, domain.NewValidationError("Image is required")
	}
	if len(data) > MaxImageBytes {
		return ports.Image{}, domain.NewValidationError("Image is too large")
	}

	ct := http.DetectContentType(data)
	ext, ok := imageExtensions[ct]
	if !ok {
		return ports.Image{}, domain.NewValidationError("Unsupported image type")
	}
	return ports.Image{Data: data, ContentType: ct, Extension: ext}, nil
}
