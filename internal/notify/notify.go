package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Message é o contrato do disparo pós-reserva: destinatário + template +
// dados. O transporte (whatsapp, sms, e-mail) fica atrás de Sender.
type Message struct {
	Recipient string
	Template  string
	Data      map[string]any
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender é o transporte padrão em dev: só registra a mensagem.
type LogSender struct {
	Log zerolog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Log.Info().
		Str("recipient", msg.Recipient).
		Str("template", msg.Template).
		Interface("data", msg.Data).
		Msg("notification")
	return nil
}
