// Package guard evita que o mesmo envio seja processado duas vezes
// (duplo clique, reenvio do formulário).
package guard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

type SubmitGuard struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewSubmitGuard(client redis.Cmdable, ttl time.Duration) *SubmitGuard {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &SubmitGuard{
		client: client,
		ttl:    ttl,
		prefix: "submit:",
	}
}

// Key resume ator + rota + corpo em uma chave de tamanho fixo.
func Key(actor, route string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(actor))
	h.Write([]byte{0})
	h.Write([]byte(route))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Acquire devolve false quando a mesma chave já foi vista dentro do TTL.
func (g *SubmitGuard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+key, 1, g.ttl).Result()
}

// Release libera a chave quando a requisição falhou e pode ser repetida.
func (g *SubmitGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.prefix+key).Err()
}
