package httperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[string]string{
	CodeInvalidInterval:      "O horário de término deve ser posterior ao início.",
	CodeAppointmentNotFound:  "Agendamento não encontrado.",
	CodeInvalidStatus:        "Status inválido.",
	CodeTimeConflict:         "Conflito de horário.",
	CodeInvalidBusinessHours: "Horário de funcionamento inválido.",
	CodeMutationCancelled:    "Operação cancelada.",
}

// Message returns the user-facing text for a business code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Erro inesperado."
}

// From maps a use-case error onto the HTTP response.
func From(c *gin.Context, err error) {
	if code, ok := BusinessCode(err); ok {
		switch code {
		case CodeAppointmentNotFound:
			NotFound(c, code, Message(code))
		case CodeTimeConflict:
			Conflict(c, code, Message(code))
		default:
			BadRequest(c, code, Message(code))
		}
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		Write(c, http.StatusGatewayTimeout, "remote_timeout", "Tempo de resposta esgotado.")
		return
	}

	if IsRemote(err) {
		Write(c, http.StatusBadGateway, "remote_failure", "Falha ao salvar. As alterações foram desfeitas.")
		return
	}

	Internal(c, "internal_error", "Erro inesperado.")
}
