package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestSQLiteFilePersists.
		{"busy_timeout", "5000"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

// exerciseKV runs the shared KV contract against any backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: err = %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "a", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"n":1}` {
		t.Errorf("get = %s, want {\"n\":1}", got)
	}

	// Overwrite replaces the value.
	if err := kv.Set(ctx, "a", []byte(`{"n":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = kv.Get(ctx, "a")
	if string(got) != `{"n":2}` {
		t.Errorf("after overwrite = %s", got)
	}

	if err := kv.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op.
	if err := kv.Delete(ctx, "a"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestSQLiteKV(t *testing.T) {
	exerciseKV(t, openTestStore(t))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	if err := m.Set(ctx, "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'x'
	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %s", got)
	}
}

func TestMemoryClosedIsUnavailable(t *testing.T) {
	m := NewMemory()
	m.Close()
	ctx := context.Background()

	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("get after close: %v", err)
	}
	if err := m.Set(ctx, "k", nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("set after close: %v", err)
	}
}

func TestSQLiteClosedIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if err := s.Set(context.Background(), "k", []byte("v")); !errors.Is(err, ErrUnavailable) {
		t.Errorf("set after close: err = %v, want ErrUnavailable", err)
	}
}

func TestSQLiteFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sajha.db")
	if err := EnsureDir(path); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	if err := s.Set(context.Background(), "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("reopen get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("reopen get = %q", got)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(dir, "env", "x.db")
		t.Setenv("SAJHA_DB", p)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Errorf("path = %q, want %q", got, p)
		}
		if _, err := os.Stat(filepath.Dir(p)); err != nil {
			t.Errorf("parent dir not created: %v", err)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("SAJHA_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(dir, "sajha-gyan", "sajha.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}

func TestOpenKVDrivers(t *testing.T) {
	ctx := context.Background()

	kv, err := OpenKV(ctx, Options{Driver: DriverMemory})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := kv.(*Memory); !ok {
		t.Errorf("memory driver returned %T", kv)
	}

	kv, err = OpenKV(ctx, Options{Path: filepath.Join(t.TempDir(), "kv.db")})
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()
	if _, ok := kv.(*SQLite); !ok {
		t.Errorf("default driver returned %T", kv)
	}

	if _, err := OpenKV(ctx, Options{Driver: "etcd"}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := OpenKV(ctx, Options{Driver: DriverSQLite}); err == nil {
		t.Error("expected error for empty sqlite path")
	}
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("SAJHA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SAJHA_TEST_REDIS_ADDR not set")
	}
	r, err := OpenRedis(context.Background(), RedisConfig{Addr: addr})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	exerciseKV(t, r)
}

func TestPostgresKV(t *testing.T) {
	dsn := os.Getenv("SAJHA_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("SAJHA_TEST_POSTGRES_URL not set")
	}
	p, err := OpenPostgres(context.Background(), PostgresConfig{DSN: dsn, MaxConns: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	exerciseKV(t, p)
}
