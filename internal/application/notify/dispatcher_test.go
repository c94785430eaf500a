package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/notify"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
)

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []ports.Notification
	err   error
	panic bool
	block chan struct{}
}

func (r *recordingNotifier) Send(ctx context.Context, n ports.Notification) error {
	if r.block != nil {
		<-r.block
	}
	if r.panic {
		panic("smtp roto")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return r.err
}

func TestDispatcher_EnviaEnSegundoPlano(t *testing.T) {
	rec := &recordingNotifier{block: make(chan struct{})}
	d := notify.NewDispatcher(rec, time.Second, zerolog.Nop())

	d.Dispatch(context.Background(), ports.Notification{To: "a@b.com", Template: ports.TemplateVerificationApproved})

	// Dispatch retorna sin esperar al notifier (que sigue bloqueado).
	rec.mu.Lock()
	assert.Empty(t, rec.sent)
	rec.mu.Unlock()

	close(rec.block)
	d.Wait()

	require.Len(t, rec.sent, 1)
	assert.Equal(t, "a@b.com", rec.sent[0].To)
}

func TestDispatcher_ContextoCanceladoNoCancelaEnvio(t *testing.T) {
	rec := &recordingNotifier{}
	d := notify.NewDispatcher(rec, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, ports.Notification{To: "a@b.com"})
	d.Wait()

	require.Len(t, rec.sent, 1)
}

func TestDispatcher_ErrorYPanicNoSePropagan(t *testing.T) {
	d := notify.NewDispatcher(&recordingNotifier{err: errors.New("smtp caído")}, time.Second, zerolog.Nop())
	d.Dispatch(context.Background(), ports.Notification{To: "a@b.com"})
	d.Wait()

	p := notify.NewDispatcher(&recordingNotifier{panic: true}, time.Second, zerolog.Nop())
	assert.NotPanics(t, func() {
		p.Dispatch(context.Background(), ports.Notification{To: "a@b.com"})
		p.Wait()
	})
}

// slowNotifier responde al timeout pero deja el envío real corriendo, como el Mailer SMTP.
type slowNotifier struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	finished int
}

func (s *slowNotifier) Send(ctx context.Context, _ ports.Notification) error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		time.Sleep(80 * time.Millisecond)
		s.mu.Lock()
		s.finished++
		s.mu.Unlock()
	}()
	<-ctx.Done()
	return ctx.Err()
}

func (s *slowNotifier) Wait() { s.wg.Wait() }

func TestDispatcher_Wait_DrenaEnviosDelNotifier(t *testing.T) {
	slow := &slowNotifier{}
	d := notify.NewDispatcher(slow, 10*time.Millisecond, zerolog.Nop())

	d.Dispatch(context.Background(), ports.Notification{To: "a@b.com"})
	d.Wait()

	slow.mu.Lock()
	defer slow.mu.Unlock()
	assert.Equal(t, 1, slow.finished)
}
