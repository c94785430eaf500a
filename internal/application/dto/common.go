package dto

// maxPage acota page para que Offset no desborde; ninguna tabla tiene tantas páginas.
const maxPage = 1_000_000

// PageRequest paginación por página (1-based) para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y topes: 1 <= page <= maxPage, 1 <= limit <= 100 (defecto 10).
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset filas a saltar para la página actual.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta metadatos de página en respuestas.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta calcula totalPages = ceil(total / limit).
func NewPageMeta(total int, p PageRequest) PageMeta {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return PageMeta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
// VerificationStatus solo acompaña al 403 de login de una cuenta no aprobada.
type ErrorResponse struct {
	Error              string `json:"error"`
	Code               string `json:"code,omitempty"`
	Details            string `json:"details,omitempty"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
}

// MessageResponse respuesta genérica con usuario y mensaje.
type MessageResponse struct {
	User    interface{} `json:"user"`
	Message string      `json:"message"`
}
