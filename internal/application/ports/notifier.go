package ports

import "context"

// EmailTemplate plantilla de email transaccional.
type EmailTemplate string

const (
	TemplateVerificationApproved EmailTemplate = "verification-approved"
	TemplateVerificationRejected EmailTemplate = "verification-rejected"
	TemplateVerificationPending  EmailTemplate = "verification-pending"
)

// Notification mensaje a enviar a un usuario.
type Notification struct {
	To       string
	Subject  string
	Template EmailTemplate
	Data     TemplateData
}

// TemplateData datos que interpolan las plantillas.
type TemplateData struct {
	Name  string
	Notes string // solo verification-rejected; vacío = sin bloque de notas
}

// Notifier puerto de salida para el envío de emails (SMTP, log, mock).
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// NotificationDispatcher lanza el envío en segundo plano.
// El llamador no espera la entrega ni recibe su error.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n Notification)
}
