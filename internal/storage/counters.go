package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
)

// Counters adapts a Store to rules.Counters. Keys are prefixed with a scope
// (the game mode) so each mode keeps its own best score. Storage failures are
// logged and read as zero; the round never sees them.
type Counters struct {
	store  *Store
	scope  string
	logger *log.Logger
}

var _ rules.Counters = (*Counters)(nil)

// NewCounters returns counters for scope. A nil logger discards failures.
func NewCounters(store *Store, scope string, logger *log.Logger) *Counters {
	return &Counters{store: store, scope: scope, logger: logger}
}

func (c *Counters) key(k string) string {
	if c.scope == "" {
		return k
	}
	return c.scope + "." + k
}

func (c *Counters) ReadInt(key string) int {
	v, err := c.store.ReadCounter(c.key(key))
	if err != nil {
		c.warn("counter read failed", key, err)
		return 0
	}
	return v
}

func (c *Counters) WriteInt(key string, value int) {
	if err := c.store.WriteCounter(c.key(key), value); err != nil {
		c.warn("counter write failed", key, err)
	}
}

func (c *Counters) warn(msg, key string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, "scope", c.scope, "key", key, "error", err)
	}
}
