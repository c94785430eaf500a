// Package email implementa ports.Notifier: SMTP vía gomail o solo log cuando no hay SMTP.
package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/pkg/config"
)

var (
	_ ports.Notifier = (*Mailer)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

// sender abstrae *gomail.Dialer para poder probar sin servidor SMTP.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer envía las notificaciones por SMTP.
type Mailer struct {
	dialer   sender
	from     string
	fromName string
	appURL   string
	log      zerolog.Logger
	inflight sync.WaitGroup
}

// NewMailer construye el mailer SMTP a partir de la configuración.
func NewMailer(cfg config.EmailConfig, appURL string, log zerolog.Logger) *Mailer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return newMailer(d, cfg.FromEmail, cfg.FromName, appURL, log)
}

func newMailer(d sender, from, fromName, appURL string, log zerolog.Logger) *Mailer {
	return &Mailer{
		dialer:   d,
		from:     from,
		fromName: fromName,
		appURL:   appURL,
		log:      log.With().Str("component", "smtp_mailer").Logger(),
	}
}

// Send renderiza la plantilla y la entrega al servidor SMTP.
// gomail no acepta contexto: si ctx vence antes de terminar se devuelve ctx.Err()
// y el envío sigue en segundo plano hasta que el servidor responde. Wait lo espera.
func (m *Mailer) Send(ctx context.Context, n ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := Render(n.Template, n.Data, m.appURL)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", n.To)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/html", body)

	done := make(chan error, 1)
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		err := m.dialer.DialAndSend(msg)
		if err != nil && ctx.Err() != nil {
			m.log.Warn().Err(err).Str("to", n.To).Msg("smtp send tardío falló")
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", n.To, err)
		}
		m.log.Debug().Str("to", n.To).Str("template", string(n.Template)).Msg("smtp send ok")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s: %w", n.To, ctx.Err())
	}
}

// Wait bloquea hasta que terminen los DialAndSend en curso, incluidos los que
// superaron el timeout de Send.
func (m *Mailer) Wait() {
	m.inflight.Wait()
}

// LogNotifier registra la notificación en lugar de enviarla (desarrollo, SMTP no configurado).
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier construye el notifier de desarrollo.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "log_notifier").Logger()}
}

// Send solo escribe en el log.
func (l *LogNotifier) Send(_ context.Context, n ports.Notification) error {
	l.log.Info().
		Str("to", n.To).
		Str("subject", n.Subject).
		Str("template", string(n.Template)).
		Msg("email no enviado: SMTP no configurado")
	return nil
}
