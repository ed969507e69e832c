package transcriber

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/speech-coach/internal/logger"
)

type implCache struct {
	mu      sync.Mutex
	load    Loader
	current Recognizer
	variant string
	logger  logger.Logger
}

// NewCache creates an empty Cache that builds recognizers with load.
func NewCache(load Loader, log logger.Logger) Cache {
	return &implCache{load: load, logger: log}
}

// GetOrLoad holds the lock while loading, so concurrent callers asking for
// the same tier share a single load.
func (c *implCache) GetOrLoad(ctx context.Context, variant string) (Recognizer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.variant == variant {
		return c.current, nil
	}

	if c.current != nil {
		c.logger.Info(ctx, "Switching whisper model: %s -> %s", c.variant, variant)
	} else {
		c.logger.Info(ctx, "Loading whisper model: %s", variant)
	}

	rec, err := c.load(ctx, variant)
	if err != nil {
		return nil, err
	}

	old := c.current
	c.current = rec
	c.variant = variant

	if old != nil {
		if err := old.Close(); err != nil {
			c.logger.Warn(ctx, "Failed to close whisper model %s: %v", old.Variant(), err)
		}
	}

	return rec, nil
}

func (c *implCache) Variant() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.variant
}

func (c *implCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	err := c.current.Close()
	c.current = nil
	c.variant = ""
	return err
}
