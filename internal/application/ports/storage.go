package ports

import "context"

// Image imagen ya decodificada, lista para subir.
type Image struct {
	Data        []byte
	ContentType string // image/jpeg, image/png, ...
	Extension   string // sin punto: jpg, png, ...
}

// ImageStore puerto de salida hacia el object storage.
// Upload devuelve la URL pública del objeto.
type ImageStore interface {
	Upload(ctx context.Context, img Image, folder string) (string, error)
}
