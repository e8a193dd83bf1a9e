package recurrence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

func mustCreateSeries(t *testing.T, d seriesDeps) *SeriesCreateResult {
	t.Helper()

	result, err := d.create.Execute(context.Background(), weeklySeries())
	require.NoError(t, err)
	require.Len(t, result.Created, 4)
	return result
}

func listSeries(t *testing.T, d seriesDeps, result *SeriesCreateResult) []models.Appointment {
	t.Helper()

	rows, err := d.repo.ListSeries(context.Background(), result.SeriesID, 7)
	require.NoError(t, err)
	return rows
}

func localDate(d seriesDeps, ap models.Appointment) string {
	return ap.StartTime.In(d.repo.loc()).Format("2006-01-02")
}

// Escopo future: o delta de dias do alvo (índice 2, +1 dia) é somado à
// data corrente dos índices 2 e 3; os anteriores não se movem.
func TestUpdateSeriesFutureScope(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	result, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[2].ID,
		Scope:         domain.ScopeFuture,
		NewDate:       "2024-01-16",
	})
	require.NoError(t, err)

	assert.Empty(t, result.Failed)
	assert.Len(t, result.Updated, 2)

	rows := listSeries(t, d, created)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-01-01", localDate(d, rows[0]))
	assert.Equal(t, "2024-01-08", localDate(d, rows[1]))
	assert.Equal(t, "2024-01-16", localDate(d, rows[2]))
	assert.Equal(t, "2024-01-23", localDate(d, rows[3]))

	// escopo em grupo mantém a série coerente: ninguém diverge
	for _, ap := range rows {
		assert.Nil(t, ap.OriginalDate)
	}
}

// Escopo single: só o alvo se move, e ganha OriginalDate com a data que
// a série previa para ele.
func TestUpdateSeriesSingleScope(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	result, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[1].ID,
		Scope:         domain.ScopeSingle,
		NewDate:       "2024-01-09",
	})
	require.NoError(t, err)
	require.Len(t, result.Updated, 1)

	moved := result.Updated[0]
	assert.Equal(t, "2024-01-09", localDate(d, moved))
	require.NotNil(t, moved.OriginalDate)
	assert.Equal(t, "2024-01-08", moved.OriginalDate.Format("2006-01-02"))

	rows := listSeries(t, d, created)
	assert.Equal(t, "2024-01-01", localDate(d, rows[0]))
	assert.Equal(t, "2024-01-15", localDate(d, rows[2]))
	assert.Equal(t, "2024-01-22", localDate(d, rows[3]))
}

// Mudar só o horário no mesmo dia não é divergência de data.
func TestUpdateSeriesSingleTimeOnly(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	result, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[1].ID,
		Scope:         domain.ScopeSingle,
		NewDate:       "2024-01-08",
		NewTime:       "14:00",
	})
	require.NoError(t, err)
	require.Len(t, result.Updated, 1)

	moved := result.Updated[0]
	assert.Equal(t, 14, moved.StartTime.In(d.repo.loc()).Hour())
	assert.Equal(t, "2024-01-08", localDate(d, moved))
	assert.Nil(t, moved.OriginalDate)
}

func TestUpdateSeriesAllScopeSkipsClosed(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	// última ocorrência já atendida: não se move
	last := created.Created[3]
	last.Status = string(domain.StatusCompleted)
	require.NoError(t, d.repo.UpdateAppointment(context.Background(), &last))

	result, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[0].ID,
		Scope:         domain.ScopeAll,
		NewDate:       "2024-01-02",
	})
	require.NoError(t, err)
	assert.Len(t, result.Updated, 3)

	rows := listSeries(t, d, created)
	assert.Equal(t, "2024-01-02", localDate(d, rows[0]))
	assert.Equal(t, "2024-01-09", localDate(d, rows[1]))
	assert.Equal(t, "2024-01-16", localDate(d, rows[2]))
	assert.Equal(t, "2024-01-22", localDate(d, rows[3]))
	assert.Equal(t, string(domain.StatusCompleted), rows[3].Status)
}

// O delta se aplica à data CORRENTE de cada ocorrência: quem já divergiu
// carrega a divergência junto, sem re-derivar da regra.
func TestUpdateSeriesDeltaOverDivergedOccurrence(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	_, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[1].ID,
		Scope:         domain.ScopeSingle,
		NewDate:       "2024-01-09",
	})
	require.NoError(t, err)

	// agora desloca tudo em +1 a partir do índice 0
	_, err = d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[0].ID,
		Scope:         domain.ScopeAll,
		NewDate:       "2024-01-02",
	})
	require.NoError(t, err)

	rows := listSeries(t, d, created)
	assert.Equal(t, "2024-01-02", localDate(d, rows[0]))
	assert.Equal(t, "2024-01-10", localDate(d, rows[1])) // 09 + 1, não 08 + 1
	assert.Equal(t, "2024-01-16", localDate(d, rows[2]))
	assert.Equal(t, "2024-01-23", localDate(d, rows[3]))
}

func TestUpdateSeriesConflictLeavesTargetInPlace(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	bookSlot(t, d.repo, "2024-01-16", "10:00")

	result, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[2].ID,
		Scope:         domain.ScopeSingle,
		NewDate:       "2024-01-16",
	})
	require.NoError(t, err)

	assert.Empty(t, result.Updated)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 2, result.Failed[0].Index)
	assert.Equal(t, "time_conflict", result.Failed[0].Reason)

	rows := listSeries(t, d, created)
	assert.Equal(t, "2024-01-15", localDate(d, rows[2]))
}

// Troca de serviço segue o mesmo leque de escopo da remarcação.
func TestUpdateSeriesSwapsProduct(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	result, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[0].ID,
		Scope:         domain.ScopeAll,
		NewDate:       "2024-01-01", // mesma data: só o serviço muda
		NewProductID:  2,
	})
	require.NoError(t, err)
	require.Len(t, result.Updated, 4)

	for _, ap := range result.Updated {
		assert.Equal(t, uint(2), ap.BarberProductID)
		assert.Equal(t, 60, ap.DurationMin)
		assert.Equal(t, float64(85), ap.Price)
		assert.Equal(t, 60.0, ap.EndTime.Sub(ap.StartTime).Minutes())
	}
}

func TestUpdateSeriesRejectsNonSeriesAppointment(t *testing.T) {
	d := newSeriesDeps(t)

	ap := bookSlot(t, d.repo, "2024-01-15", "10:00")

	_, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: ap.ID,
		Scope:         domain.ScopeSingle,
		NewDate:       "2024-01-16",
	})
	assert.True(t, httperr.IsBusiness(err, "not_a_series"))
}

func TestUpdateSeriesRejectsPastTarget(t *testing.T) {
	d := newSeriesDeps(t)
	created := mustCreateSeries(t, d)

	result, err := d.update.Execute(context.Background(), UpdateSeriesInput{
		BarbershopID:  1,
		BarberID:      7,
		AppointmentID: created.Created[0].ID,
		Scope:         domain.ScopeSingle,
		NewDate:       "2023-12-01",
	})
	require.NoError(t, err)

	assert.Empty(t, result.Updated)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "past_date", result.Failed[0].Reason)
}
