// Package cache guarda resultados caros de calcular, como as estatísticas do painel.
//
// Os valores são serializados em JSON nas duas implementações, então quem lê
// sempre recebe uma cópia independente do que foi gravado.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrAusente indica que a chave não está no cache ou expirou
var ErrAusente = errors.New("chave ausente no cache")

// Cache é a interface comum ao Redis e ao cache em memória
type Cache interface {
	// Get decodifica o valor da chave em dest
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// Chaves usadas pelos serviços
const (
	ChaveEstatisticas   = "dashboard:estatisticas"
	ChaveMaisUtilizadas = "ferramentas:mais_utilizadas"
)
