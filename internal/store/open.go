package store

import (
	"context"
	"fmt"
)

// Backend drivers accepted by OpenKV.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a KV backend.
type Options struct {
	Driver   string
	Path     string // SQLite file path or DSN
	Redis    RedisConfig
	Postgres PostgresConfig
}

// OpenKV opens the backend named by opts.Driver. An empty driver means SQLite.
func OpenKV(ctx context.Context, opts Options) (KV, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite store: empty path")
		}
		s, err := Open(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemory(), nil
	case DriverRedis:
		r, err := OpenRedis(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return r, nil
	case DriverPostgres:
		p, err := OpenPostgres(ctx, opts.Postgres)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

var (
	_ KV = (*Memory)(nil)
	_ KV = (*SQLite)(nil)
	_ KV = (*Redis)(nil)
	_ KV = (*Postgres)(nil)
)
