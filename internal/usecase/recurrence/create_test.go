package recurrence

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-platform/internal/audit"
	"github.com/BruksfildServices01/booking-platform/internal/clock"
	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/events"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	"github.com/BruksfildServices01/booking-platform/internal/notify"
)

type noopSender struct{}

func (noopSender) Send(context.Context, notify.Message) error { return nil }

type seriesDeps struct {
	repo *memRepo
	clk  clock.Fixed

	preview *PreviewSeries
	create  *CreateSeries
	update  *UpdateSeries
	cancel  *CancelSeries
}

func newSeriesDeps(t *testing.T) seriesDeps {
	t.Helper()

	repo := newMemRepo()
	clk := clock.Fixed{T: time.Date(2023, 12, 20, 8, 0, 0, 0, repo.loc())}

	nop := zerolog.Nop()
	notifier := notify.NewDispatcher(noopSender{}, nop)
	publisher := events.NewPublisher(nil, nop)
	auditor := audit.NewDispatcher(nil, nop)

	return seriesDeps{
		repo:    repo,
		clk:     clk,
		preview: NewPreviewSeries(repo, clk),
		create:  NewCreateSeries(repo, notifier, publisher, auditor, clk),
		update:  NewUpdateSeries(repo, publisher, auditor, clk),
		cancel:  NewCancelSeries(repo, publisher, auditor, clk),
	}
}

// Quatro segundas-feiras às 10:00, a partir de 01/01/2024.
func weeklySeries() SeriesInput {
	return SeriesInput{
		BarbershopID: 1,
		BarberID:     7,
		ProductID:    1,
		ClientName:   "João",
		ClientPhone:  "+5511999990000",
		StartDate:    "2024-01-01",
		Time:         "10:00",
		Rule:         schedule.RecurrenceRule{IntervalWeeks: 1, Count: 4},
	}
}

func bookSlot(t *testing.T, repo *memRepo, date, hhmm string) *models.Appointment {
	t.Helper()

	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, repo.loc())
	require.NoError(t, err)

	ap := &models.Appointment{
		BarbershopID:    1,
		BarberID:        7,
		ClientID:        99,
		BarberProductID: 1,
		DurationMin:     30,
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		Status:          string(domain.StatusConfirmed),
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), ap))
	return ap
}

func TestCreateSeriesWeekly(t *testing.T) {
	d := newSeriesDeps(t)

	result, err := d.create.Execute(context.Background(), weeklySeries())
	require.NoError(t, err)

	require.Empty(t, result.Conflicts)
	require.Empty(t, result.Failed)
	require.Len(t, result.Created, 4)

	for i, ap := range result.Created {
		require.NotNil(t, ap.SeriesID)
		assert.Equal(t, result.SeriesID, *ap.SeriesID)
		require.NotNil(t, ap.SeriesIndex)
		assert.Equal(t, i, *ap.SeriesIndex)
		assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
		assert.NotEmpty(t, ap.SeriesRule)

		want := time.Date(2024, 1, 1+7*i, 10, 0, 0, 0, d.repo.loc())
		assert.Equal(t, want, ap.StartTime)
	}
}

// Tudo-ou-nada: uma data ocupada recusa a série inteira e devolve a lista
// completa de conflitos, sem gravar nenhuma ocorrência.
func TestCreateSeriesAllOrNothing(t *testing.T) {
	d := newSeriesDeps(t)

	blocker := bookSlot(t, d.repo, "2024-01-08", "10:00")

	result, err := d.create.Execute(context.Background(), weeklySeries())
	require.NoError(t, err)

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, 1, result.Conflicts[0].Index)
	assert.Equal(t, "2024-01-08", result.Conflicts[0].Date)
	assert.Equal(t, "time_conflict", result.Conflicts[0].Reason)
	assert.Empty(t, result.Created)

	// só o agendamento pré-existente sobrou no repositório
	rows, err := d.repo.ListAppointmentsForPeriod(
		context.Background(), 7,
		time.Date(2024, 1, 1, 0, 0, 0, 0, d.repo.loc()),
		time.Date(2024, 2, 1, 0, 0, 0, 0, d.repo.loc()),
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, blocker.ID, rows[0].ID)
}

// Perder a corrida na persistência (entre a checagem e o commit) é
// relatado por ocorrência; as demais são gravadas normalmente.
func TestCreateSeriesReportsRaceLosses(t *testing.T) {
	d := newSeriesDeps(t)
	d.repo.loseRaceAt["2024-01-15 10:00"] = true

	result, err := d.create.Execute(context.Background(), weeklySeries())
	require.NoError(t, err)

	assert.Empty(t, result.Conflicts)
	require.Len(t, result.Created, 3)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 2, result.Failed[0].Index)
	assert.Equal(t, "time_conflict", result.Failed[0].Reason)
}

func TestPreviewSeriesDoesNotWrite(t *testing.T) {
	d := newSeriesDeps(t)

	bookSlot(t, d.repo, "2024-01-08", "10:00")

	checks, err := d.preview.Execute(context.Background(), weeklySeries())
	require.NoError(t, err)
	require.Len(t, checks, 4)

	assert.True(t, checks[0].Valid)
	assert.False(t, checks[1].Valid)
	assert.Equal(t, "time_conflict", checks[1].Reason)
	assert.True(t, checks[2].Valid)
	assert.True(t, checks[3].Valid)

	// prévia é leitura pura
	rows, err := d.repo.ListAppointmentsForPeriod(
		context.Background(), 7,
		time.Date(2024, 1, 1, 0, 0, 0, 0, d.repo.loc()),
		time.Date(2024, 2, 1, 0, 0, 0, 0, d.repo.loc()),
	)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreateSeriesRejectsOpenEndedRule(t *testing.T) {
	d := newSeriesDeps(t)

	in := weeklySeries()
	in.Rule = schedule.RecurrenceRule{IntervalWeeks: 1}

	_, err := d.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_recurrence_rule"))
}
