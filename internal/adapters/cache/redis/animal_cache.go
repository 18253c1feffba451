package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-adoption/internal/domain/animals"

	goredis "github.com/redis/go-redis/v9"
)

type Config struct {
	// Addr acepta host:port o una URL redis://...
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AnimalCache implementa animals.Cache con claves "animal:<id>".
type AnimalCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

var _ animals.Cache = (*AnimalCache)(nil)

// Connect abre el cliente y hace ping.
func Connect(ctx context.Context, cfg Config) (*AnimalCache, error) {
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewAnimalCache(rdb, cfg.TTL), nil
}

func NewAnimalCache(rdb *goredis.Client, ttl time.Duration) *AnimalCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnimalCache{rdb: rdb, ttl: ttl}
}

func options(cfg Config) (*goredis.Options, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := goredis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	return &goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	}, nil
}

func key(id int64) string {
	return fmt.Sprintf("animal:%d", id)
}

func (c *AnimalCache) Get(ctx context.Context, id int64) (animals.Animal, bool, error) {
	b, err := c.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return animals.Animal{}, false, nil
	}
	if err != nil {
		return animals.Animal{}, false, err
	}

	var a animals.Animal
	if err := json.Unmarshal(b, &a); err != nil {
		return animals.Animal{}, false, fmt.Errorf("decode cached animal: %w", err)
	}
	return a, true, nil
}

func (c *AnimalCache) Set(ctx context.Context, a animals.Animal) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode animal: %w", err)
	}
	return c.rdb.Set(ctx, key(a.ID), b, c.ttl).Err()
}

func (c *AnimalCache) Delete(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, key(id)).Err()
}

func (c *AnimalCache) Close() error {
	return c.rdb.Close()
}
