package mock

import (
	"context"
	"sync"

	"github.com/m-zajac/contribreport/internal/app"
)

// Cache mocks app.Cache.
type Cache struct {
	data    map[string]app.Hash
	reads   int
	updates int
	m       sync.Mutex

	// GetErr and SetErr are returned by Get and Set when set.
	GetErr error
	SetErr error
}

// NewCache creates new Cache instance with given data.
func NewCache(data map[string]app.Hash) *Cache {
	return &Cache{
		data: data,
	}
}

// Get returns data saved for given key.
func (c *Cache) Get(_ context.Context, key string) (app.Hash, bool, error) {
	c.m.Lock()
	defer c.m.Unlock()

	c.reads++
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}

	h := c.data[key]
	if len(h) == 0 {
		return nil, false, nil
	}

	return append(app.Hash(nil), h...), true, nil
}

// Set stores given data under given key.
func (c *Cache) Set(_ context.Context, key string, h app.Hash) error {
	if len(h) == 0 {
		return nil
	}

	c.m.Lock()
	defer c.m.Unlock()

	c.updates++
	if c.SetErr != nil {
		return c.SetErr
	}
	if c.data == nil {
		c.data = make(map[string]app.Hash)
	}
	c.data[key] = append(app.Hash(nil), h...)

	return nil
}

// Has tells if anything is stored under key.
func (c *Cache) Has(key string) bool {
	c.m.Lock()
	defer c.m.Unlock()

	_, ok := c.data[key]
	return ok
}

// Reads returns read call count.
func (c *Cache) Reads() int {
	c.m.Lock()
	defer c.m.Unlock()

	return c.reads
}

// Updates returns update call count.
func (c *Cache) Updates() int {
	c.m.Lock()
	defer c.m.Unlock()

	return c.updates
}
