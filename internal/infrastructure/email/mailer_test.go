package email

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
)

type captureSender struct {
	mu    sync.Mutex
	msgs  []*gomail.Message
	err   error
	delay time.Duration
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m...)
	return c.err
}

func (c *captureSender) sent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func rendered(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestRender_Plantillas(t *testing.T) {
	html, err := Render(ports.TemplateVerificationApproved, ports.TemplateData{Name: "Ravi"}, "https://app.test/")
	require.NoError(t, err)
	assert.Contains(t, html, "Dear Ravi,")
	assert.Contains(t, html, `href="https://app.test/login"`)

	html, err = Render(ports.TemplateVerificationRejected, ports.TemplateData{Name: "Ravi", Notes: "Blurry PAN"}, "")
	require.NoError(t, err)
	assert.Contains(t, html, "Reviewer Notes:")
	assert.Contains(t, html, "Blurry PAN")

	html, err = Render(ports.TemplateVerificationRejected, ports.TemplateData{Name: "Ravi"}, "")
	require.NoError(t, err)
	assert.NotContains(t, html, "Reviewer Notes:")

	html, err = Render(ports.TemplateVerificationPending, ports.TemplateData{Name: "Ravi"}, "")
	require.NoError(t, err)
	assert.Contains(t, html, "pending verification")

	html, err = Render("otra", ports.TemplateData{Name: "Ravi"}, "")
	require.NoError(t, err)
	assert.Contains(t, html, "Wholesetail Notification")
}

func TestRender_EscapaHTML(t *testing.T) {
	html, err := Render(ports.TemplateVerificationRejected, ports.TemplateData{Name: "<b>x</b>", Notes: "<script>alert(1)</script>"}, "")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestMailer_Send(t *testing.T) {
	s := &captureSender{}
	m := newMailer(s, "no-reply@wholesetail.com", "Wholesetail", "", zerolog.Nop())

	err := m.Send(context.Background(), ports.Notification{
		To:       "ravi@shop.in",
		Subject:  "Your Wholesetail Account Has Been Approved",
		Template: ports.TemplateVerificationApproved,
		Data:     ports.TemplateData{Name: "Ravi"},
	})
	require.NoError(t, err)
	require.Len(t, s.msgs, 1)

	assert.Equal(t, []string{"ravi@shop.in"}, s.msgs[0].GetHeader("To"))
	assert.Equal(t, []string{"Your Wholesetail Account Has Been Approved"}, s.msgs[0].GetHeader("Subject"))
	assert.Contains(t, rendered(t, s.msgs[0]), "Dear Ravi,")
}

func TestMailer_Send_ErrorSMTP(t *testing.T) {
	m := newMailer(&captureSender{err: errors.New("535 auth failed")}, "a@b.c", "", "", zerolog.Nop())
	err := m.Send(context.Background(), ports.Notification{To: "x@y.z", Template: ports.TemplateVerificationPending})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")
}

func TestMailer_Send_RespetaContexto(t *testing.T) {
	m := newMailer(&captureSender{delay: 200 * time.Millisecond}, "a@b.c", "", "", zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := m.Send(ctx, ports.Notification{To: "x@y.z", Template: ports.TemplateVerificationPending})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	assert.ErrorIs(t, m.Send(cancelled, ports.Notification{}), context.Canceled)
}

func TestMailer_Wait_EsperaEnviosFueraDeTiempo(t *testing.T) {
	s := &captureSender{delay: 100 * time.Millisecond}
	m := newMailer(s, "a@b.c", "", "", zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := m.Send(ctx, ports.Notification{To: "x@y.z", Template: ports.TemplateVerificationApproved})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, s.sent(), "el envío sigue en curso cuando Send retorna")

	m.Wait()
	assert.Equal(t, 1, s.sent())
}

func TestLogNotifier_NuncaFalla(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))
	require.NoError(t, n.Send(context.Background(), ports.Notification{To: "x@y.z", Template: ports.TemplateVerificationApproved}))
	assert.Contains(t, buf.String(), "verification-approved")
}
