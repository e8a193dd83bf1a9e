package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-platform/internal/httperr"
)

// Mensagens amigáveis dos resultados de negócio. Código sem entrada aqui
// volta com a mensagem genérica (o código em si já é a informação).
var businessMessages = map[string]string{
	"time_conflict":         "Esse horário acabou de ser reservado. Escolha outro.",
	"too_soon":              "Esse horário está muito em cima da hora.",
	"past_date":             "Não é possível reservar em data passada.",
	"blocked_date":          "A agenda está bloqueada nessa data.",
	"closed_for_date":       "A barbearia não abre nessa data.",
	"shop_closed":           "A barbearia não abre nesse dia da semana.",
	"barber_day_off":        "O barbeiro não trabalha nesse dia.",
	"barber_other_unit":     "O barbeiro atende em outra unidade nesse dia.",
	"no_hours_configured":   "A barbearia ainda não configurou os horários.",
	"outside_working_hours": "Esse horário está fora do expediente.",
	"slots_available":       "Ainda há horários livres nesse dia. Reserve direto.",
	"invalid_state":         "O agendamento não permite essa operação no estado atual.",
	"not_a_series":          "Esse agendamento não faz parte de uma série.",
	"appointment_not_found": "Agendamento não encontrado.",
	"product_not_found":     "Serviço não encontrado.",
}

func businessStatus(code string) int {
	switch code {
	case "appointment_not_found", "product_not_found", "barbershop_not_found":
		return http.StatusNotFound
	case "time_conflict", "slots_available":
		return http.StatusConflict
	case "invalid_date", "invalid_time", "invalid_date_or_time",
		"invalid_scope", "invalid_recurrence_rule", "invalid_request":
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

// respondError traduz o erro de um caso de uso para HTTP: resultado de
// negócio vira o status do código; o resto é 500 sem vazar detalhe.
func respondError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg := businessMessages[be.Code]
		if msg == "" {
			msg = "Não foi possível concluir a operação."
		}
		httperr.Write(c, businessStatus(be.Code), be.Code, msg)
		return
	}

	httperr.Internal(c, "internal_error", "Algo deu errado. Tente novamente.")
}
