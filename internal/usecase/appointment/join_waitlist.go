package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-platform/internal/audit"
	"github.com/BruksfildServices01/booking-platform/internal/clock"
	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

type JoinWaitlistInput struct {
	BarbershopID uint
	BarberID     uint
	ProductID    uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date string // "2006-01-02"
}

// JoinWaitlist registra o cliente na lista de espera quando o dia
// preferido dele não tem nenhum horário livre. Dia com vaga não entra na
// lista: o cliente deve reservar direto.
type JoinWaitlist struct {
	repo         domain.Repository
	availability *GetAvailability
	audit        *audit.Dispatcher
}

func NewJoinWaitlist(
	repo domain.Repository,
	clk clock.Clock,
	auditor *audit.Dispatcher,
) *JoinWaitlist {
	return &JoinWaitlist{
		repo:         repo,
		availability: NewGetAvailability(repo, clk),
		audit:        auditor,
	}
}

func (uc *JoinWaitlist) Execute(
	ctx context.Context,
	in JoinWaitlistInput,
) (*models.WaitlistEntry, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	result, err := uc.availability.Execute(ctx, domain.AvailabilityInput{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ProductID:    in.ProductID,
		Date:         date,
	})
	if err != nil {
		return nil, err
	}

	if result.Valid && len(result.Slots) > 0 {
		return nil, httperr.ErrBusiness("slots_available")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	entry := &models.WaitlistEntry{
		BarbershopID:    in.BarbershopID,
		BarberID:        in.BarberID,
		BarberProductID: in.ProductID,
		ClientID:        client.ID,
		PreferredDate:   date,
		Status:          "waiting",
	}

	if err := uc.repo.CreateWaitlistEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       nil,
		Action:       "waitlist_joined",
		Entity:       "waitlist_entry",
		EntityID:     &entry.ID,
	})

	return entry, nil
}
