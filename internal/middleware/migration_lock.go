package middlewares

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// VerificadorMigracao informa quantas migrações do banco ainda faltam
type VerificadorMigracao interface {
	Pendentes(ctx context.Context) (int, error)
}

// MigrationLockMiddleware bloqueia escritas enquanto o schema estiver desatualizado
type MigrationLockMiddleware struct {
	verificador  VerificadorMigracao
	cacheLock    sync.RWMutex
	cachedLocked bool
	cacheExpiry  time.Time
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewMigrationLockMiddleware(verificador VerificadorMigracao) *MigrationLockMiddleware {
	return &MigrationLockMiddleware{
		verificador: verificador,
		cacheTTL:    5 * time.Second,
		now:         time.Now,
	}
}

// BlockCUD responde 503 a POST, PUT, PATCH e DELETE enquanto houver migração pendente
func (m *MigrationLockMiddleware) BlockCUD() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isCUDMethod(c.Request.Method) {
			c.Next()
			return
		}

		locked, err := m.isLocked(c.Request.Context())
		if err != nil {
			c.Next()
			return
		}

		if locked {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Sistema em manutenção",
				"details": "Há migrações de banco pendentes. Cadastros, empréstimos e devoluções voltam assim que forem aplicadas.",
				"code":    "MIGRATION_PENDING",
			})
			return
		}

		c.Next()
	}
}

func (m *MigrationLockMiddleware) isLocked(ctx context.Context) (bool, error) {
	m.cacheLock.RLock()
	if m.now().Before(m.cacheExpiry) {
		locked := m.cachedLocked
		m.cacheLock.RUnlock()
		return locked, nil
	}
	m.cacheLock.RUnlock()

	m.cacheLock.Lock()
	defer m.cacheLock.Unlock()

	if m.now().Before(m.cacheExpiry) {
		return m.cachedLocked, nil
	}

	pendentes, err := m.verificador.Pendentes(ctx)
	if err != nil {
		return false, err
	}

	m.cachedLocked = pendentes > 0
	m.cacheExpiry = m.now().Add(m.cacheTTL)
	return m.cachedLocked, nil
}

func isCUDMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
