package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter conta tentativas por chave em janela fixa no Redis. Usado
// nos endpoints sensíveis de autenticação (cadastro, esqueci a senha).
type Limiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// New devolve nil quando o Redis não está configurado; os chamadores
// tratam nil como "sem limite" (modo de teste e dev local).
func New(redisURL string, max int64, window time.Duration) (*Limiter, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &Limiter{
		client: redis.NewClient(opts),
		max:    max,
		window: window,
	}, nil
}

// Allow incrementa o contador da chave e diz se ainda está dentro do
// limite. Erros de Redis liberam a requisição: limitador indisponível
// não pode negar serviço.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return true
	}

	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, redisKey, l.window)
	}

	return count <= l.max
}
