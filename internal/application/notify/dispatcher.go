// Package notify despacha notificaciones como tareas en segundo plano propiedad del Dispatcher.
//
// El resultado de un envío nunca vuelve al llamador: los fallos se registran y se cuentan.
// En el apagado, Wait drena los envíos en curso.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/pkg/metrics"
)

var _ ports.NotificationDispatcher = (*Dispatcher)(nil)

// Dispatcher ejecuta cada Notification en su propia goroutine con timeout.
type Dispatcher struct {
	notifier ports.Notifier
	timeout  time.Duration
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher construye el dispatcher. timeout <= 0 usa 30s.
func NewDispatcher(notifier ports.Notifier, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{notifier: notifier, timeout: timeout, log: log}
}

// Dispatch lanza el envío y retorna de inmediato.
// El contexto se desacopla de la petición: cancelar la petición no cancela el email.
func (d *Dispatcher) Dispatch(ctx context.Context, n ports.Notification) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		d.send(sendCtx, n)
	}()
}

func (d *Dispatcher) send(ctx context.Context, n ports.Notification) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordNotification(string(n.Template), "failed")
			d.log.Error().Interface("panic", r).Str("template", string(n.Template)).Msg("panic enviando notificación")
		}
	}()

	if err := d.notifier.Send(ctx, n); err != nil {
		metrics.RecordNotification(string(n.Template), "failed")
		d.log.Warn().Err(err).
			Str("to", n.To).
			Str("template", string(n.Template)).
			Msg("no se pudo enviar la notificación")
		return
	}
	metrics.RecordNotification(string(n.Template), "sent")
	d.log.Info().Str("to", n.To).Str("template", string(n.Template)).Msg("notificación enviada")
}

// drainer lo implementan los notifiers que pueden dejar trabajo en curso tras el timeout.
type drainer interface {
	Wait()
}

// Wait bloquea hasta que terminen los envíos lanzados y, si el notifier lo permite,
// los que siguieron corriendo después de su timeout.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
	if dr, ok := d.notifier.(drainer); ok {
		dr.Wait()
	}
}
