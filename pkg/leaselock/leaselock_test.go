package leaselock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRow struct {
	key string
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if p, ok := dest[0].(*string); ok {
			*p = r.key
		}
	}
	return nil
}

// stubConn grants every acquire and records the TTL each query carried.
type stubConn struct {
	mu   sync.Mutex
	ttls []int64
}

func (c *stubConn) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (c *stubConn) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(args) >= 3 {
		if ttl, ok := args[2].(int64); ok {
			c.ttls = append(c.ttls, ttl)
		}
	}
	key, _ := args[0].(string)
	return stubRow{key: key}
}

func (c *stubConn) recordedTTLs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.ttls...)
}

func TestAcquireRejectsEmptyKey(t *testing.T) {
	client := &Client{db: &stubConn{}}

	if _, err := client.Acquire(context.Background(), "", Options{}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestAcquireDefaultsDegenerateTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{name: "zero", ttl: 0},
		{name: "negative", ttl: -time.Minute},
		{name: "sub-millisecond", ttl: 100 * time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &stubConn{}
			client := &Client{db: conn}

			lease, err := client.Acquire(context.Background(), "workspace_writer", Options{TTL: tt.ttl})
			if err != nil {
				t.Fatalf("unexpected acquire error: %v", err)
			}
			defer lease.Release(context.Background())

			ttls := conn.recordedTTLs()
			if len(ttls) == 0 {
				t.Fatal("no TTL recorded")
			}
			want := (5 * time.Minute).Milliseconds()
			if ttls[0] != want {
				t.Fatalf("unexpected lease TTL: got %d ms, want %d ms", ttls[0], want)
			}
		})
	}
}

func TestAcquireUsesConfiguredTTL(t *testing.T) {
	conn := &stubConn{}
	client := &Client{db: conn}

	lease, err := client.Acquire(context.Background(), "workspace_writer", Options{TTL: time.Minute})
	if err != nil {
		t.Fatalf("unexpected acquire error: %v", err)
	}
	defer lease.Release(context.Background())

	ttls := conn.recordedTTLs()
	if len(ttls) == 0 {
		t.Fatal("no TTL recorded")
	}
	if want := time.Minute.Milliseconds(); ttls[0] != want {
		t.Fatalf("unexpected lease TTL: got %d ms, want %d ms", ttls[0], want)
	}
}
