package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"animal-adoption/internal/domain/animals"
)

func TestKey(t *testing.T) {
	if got := key(12); got != "animal:12" {
		t.Fatalf("key(12) = %q", got)
	}
}

func TestOptions(t *testing.T) {
	if _, err := options(Config{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}

	opts, err := options(Config{Addr: "redis://:pw@localhost:6380/2"})
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = options(Config{Addr: "cache:6379", DB: 3})
	if err != nil {
		t.Fatalf("plain addr: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.DB != 3 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

// Corre contra un Redis real solo si TEST_REDIS_ADDR está seteado.
func TestAnimalCache_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := Connect(ctx, Config{Addr: addr, TTL: time.Minute})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	a := animals.Animal{ID: 987654, IdentificationCode: "RD987654", Name: "Lola", Type: animals.TypeDog}
	if err := c.Set(ctx, a); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, a.ID)
	if err != nil || !ok || got.Name != "Lola" {
		t.Fatalf("get: ok=%v err=%v got=%#v", ok, err, got)
	}
	if err := c.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, a.ID); ok {
		t.Fatalf("expected miss after delete")
	}
}
