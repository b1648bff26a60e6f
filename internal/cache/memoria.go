package cache

import (
	"container/list"
	"context"
	"encoding/json"
	"sync"
	"time"
)

// entrada representa uma chave no cache em memória
type entrada struct {
	key        string
	value      []byte
	expiration time.Time
}

// MemoryCache é um cache LRU thread-safe usado quando não há Redis configurado
type MemoryCache struct {
	capacity int
	mu       sync.Mutex
	items    map[string]*list.Element
	lruList  *list.List
	now      func() time.Time
}

// NewMemoryCache cria um cache LRU com a capacidade especificada
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		lruList:  list.New(),
		now:      time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	element, found := c.items[key]
	if !found {
		c.mu.Unlock()
		return ErrAusente
	}
	e := element.Value.(*entrada)
	if c.now().After(e.expiration) {
		c.removeElement(element)
		c.mu.Unlock()
		return ErrAusente
	}
	c.lruList.MoveToBack(element)
	data := e.value
	c.mu.Unlock()

	return json.Unmarshal(data, dest)
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := c.now().Add(ttl)

	if element, found := c.items[key]; found {
		c.lruList.MoveToBack(element)
		e := element.Value.(*entrada)
		e.value = data
		e.expiration = expiration
		return nil
	}

	// remove o item menos recentemente usado
	if c.lruList.Len() >= c.capacity {
		if oldest := c.lruList.Front(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	c.items[key] = c.lruList.PushBack(&entrada{key: key, value: data, expiration: expiration})
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if element, found := c.items[key]; found {
			c.removeElement(element)
		}
	}
	return nil
}

func (c *MemoryCache) Ping(context.Context) error {
	return nil
}

// Size retorna o número de itens no cache
func (c *MemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}

// removeElement deve ser chamado com o lock
func (c *MemoryCache) removeElement(element *list.Element) {
	c.lruList.Remove(element)
	delete(c.items, element.Value.(*entrada).key)
}

// CleanupExpired remove todos os itens expirados do cache
func (c *MemoryCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0

	var next *list.Element
	for element := c.lruList.Front(); element != nil; element = next {
		next = element.Next()
		if now.After(element.Value.(*entrada).expiration) {
			c.removeElement(element)
			removed++
		}
	}

	return removed
}

// StartCleanupRoutine limpa as entradas expiradas periodicamente até o contexto ser cancelado
func (c *MemoryCache) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.CleanupExpired()
			}
		}
	}()
}
