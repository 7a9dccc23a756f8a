package middleware

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/groomer-scheduler/internal/infra/guard"
)

type SubmitLocker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// SubmitGuard recusa o mesmo envio repetido dentro da janela do guard.
// Sem redis (locker nil ou fora do ar) a requisição segue normalmente.
func SubmitGuard(locker SubmitLocker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if locker == nil {
			c.Next()
			return
		}

		actor, ok := ActorFrom(c)
		if !ok {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			httperr.BadRequest(c, "invalid_body", "Corpo da requisição ilegível")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		route := c.Request.Method + " " + c.Request.URL.Path
		key := guard.Key(fmt.Sprintf("%d", actor.UserID), route, body)

		acquired, err := locker.Acquire(c.Request.Context(), key)
		if err != nil {
			zap.L().Warn("submit guard unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			httperr.Conflict(c, "duplicate_submission", "Esta ação já está sendo processada")
			c.Abort()
			return
		}

		c.Next()

		// falhou: libera para o usuário poder tentar de novo
		if c.Writer.Status() >= 400 {
			if err := locker.Release(context.Background(), key); err != nil {
				zap.L().Warn("submit guard release failed", zap.Error(err))
			}
		}
	}
}
