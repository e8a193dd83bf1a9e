package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher envia notificações em segundo plano, fire-and-forget: o
// resultado "agendado" já foi devolvido ao cliente e nenhuma falha de
// envio pode bloquear ou desfazer a reserva.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	log    zerolog.Logger
}

func NewDispatcher(sender Sender, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100), // buffer seguro
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.Error().
				Err(err).
				Str("recipient", msg.Recipient).
				Str("template", msg.Template).
				Msg("notification failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
		// enfileirado
	default:
		// fila cheia → descartamos a notificação (nunca quebrar a reserva)
		d.log.Warn().
			Str("template", msg.Template).
			Msg("notify queue full, dropping message")
	}
}
