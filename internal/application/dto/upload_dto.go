package dto

// UploadRequest entrada de POST /api/upload: base64 crudo o data-URL.
type UploadRequest struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
}

// UploadResponse URL pública de la imagen subida.
type UploadResponse struct {
	URL string `json:"url"`
}
