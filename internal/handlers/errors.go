package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
)

var businessMessages = map[string]string{
	"appointment_not_found":  "Agendamento não encontrado.",
	"pet_not_found":          "Pet não encontrado.",
	"client_not_found":       "Cliente não encontrado.",
	"client_profile_missing": "Usuário sem perfil de cliente.",
	"invalid_state":          "Ação não permitida no status atual.",
	"invalid_status":         "Status desconhecido.",
	"invalid_date":           "Data inválida, use AAAA-MM-DD.",
	"invalid_time":           "Horário inválido, use HH:MM.",
	"invalid_month":          "Mês inválido.",
	"invalid_range":          "Intervalo de datas inválido.",
	"invalid_weight":         "Peso deve ser um número maior que zero.",
	"invalid_photo_type":     "Tipo de foto deve ser arrival ou departure.",
	"invalid_image":          "Arquivo de imagem inválido.",
	"invalid_receipt_type":   "Comprovante deve ser PDF ou imagem.",
	"empty_file":             "Arquivo vazio.",
	"file_too_large":         "Arquivo maior que o permitido.",
	"date_in_past":           "Não é possível agendar em data passada.",
	"slot_not_in_catalog":    "Horário fora da grade de atendimento.",
	"slot_unavailable":       "Horário indisponível.",
	"owner_only":             "Apenas o dono pode executar esta ação.",
	"storage_unavailable":    "Armazenamento de arquivos não configurado.",
}

func businessStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case code == "invalid_state" || code == "slot_unavailable":
		return http.StatusConflict
	case code == "owner_only" || code == "client_profile_missing":
		return http.StatusForbidden
	case code == "file_too_large":
		return http.StatusRequestEntityTooLarge
	case code == "storage_unavailable":
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

// respondError traduz o erro de um caso de uso na resposta HTTP.
// Erros que não são de negócio vêm do banco ou do storage e saem com a
// mensagem original.
func respondError(c *gin.Context, err error) {
	var inc *domain.IncompleteError
	if errors.As(err, &inc) {
		httperr.Unprocessable(c, "completion_incomplete",
			"Faltam itens para concluir: "+strings.Join(inc.Items(), ", "), inc.Items())
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		msg, found := businessMessages[code]
		if !found {
			msg = code
		}
		httperr.Write(c, businessStatus(code), code, msg)
		return
	}

	zap.L().Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "persistence_failed", err.Error())
}

func bindError(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
