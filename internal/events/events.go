package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Publisher avisa os demais clientes (via pub/sub) que a disponibilidade
// de uma agenda mudou, para que recalculem o calendário. Melhor esforço:
// sem redis configurado, ou com erro de publish, a reserva segue normal.
type Publisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewPublisher(rdb *redis.Client, log zerolog.Logger) *Publisher {
	return &Publisher{rdb: rdb, log: log}
}

type availabilityChanged struct {
	BarberID uint   `json:"barber_id"`
	Date     string `json:"date"`
}

func (p *Publisher) AvailabilityChanged(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date time.Time,
) {
	if p == nil || p.rdb == nil {
		return
	}

	payload, _ := json.Marshal(availabilityChanged{
		BarberID: barberID,
		Date:     date.Format("2006-01-02"),
	})

	channel := fmt.Sprintf("availability:%d", barbershopID)
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		p.log.Warn().Err(err).Str("channel", channel).Msg("publish failed")
	}
}
