package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/Alijeyrad/carepulse_backend/config"
)

func TestFromCentralConfig_Defaults(t *testing.T) {
	cfg := FromCentralConfig(config.RedisConfig{Addr: "cache:6379", ReadTimeoutSeconds: 7})

	if cfg.Addr != "cache:6379" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.PoolSize != 10 || cfg.MinIdleConns != 2 {
		t.Errorf("pool = %d/%d, want defaults 10/2", cfg.PoolSize, cfg.MinIdleConns)
	}
	if cfg.ReadTimeout != 7*time.Second {
		t.Errorf("ReadTimeout = %v, want 7s", cfg.ReadTimeout)
	}
	if cfg.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v, want 5s", cfg.DialTimeout)
	}
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer rdb.Close()

	if err := rdb.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Errorf("stored value = %q", got)
	}
}

func TestNewRedis_EmptyAddr(t *testing.T) {
	if _, err := NewRedis(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty addr")
	}
}
