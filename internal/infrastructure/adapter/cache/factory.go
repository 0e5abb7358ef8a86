package cache

import (
	"fmt"

	"github.com/rakapradana/member-gateway/internal/domain/port/core"
)

// Options selects and configures a cache backend
type Options struct {
	Backend       string // "memory" or "redis"
	MaxSize       int    // memory backend only
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New builds the configured cache backend, defaulting to memory
func New(opts Options, logger core.Logger) (core.Cache, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemoryCache(opts.MaxSize), nil
	case "redis":
		return NewRedisCache(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, logger)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
