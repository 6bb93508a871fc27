package paramcache_test

import (
	"context"
	"testing"

	"github.com/goforj/paramcache"
	"github.com/goforj/paramcache/paramtest"
)

func TestMemoryStoreContract(t *testing.T) {
	store := paramcache.NewMemoryStore()
	paramtest.RunStoreContract(t, store, func(t *testing.T, name, value string) {
		t.Helper()
		store.Seed(name, value)
	}, paramtest.Options{})
}

func TestSQLiteStoreContract(t *testing.T) {
	db, err := paramcache.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := paramcache.EnsureSQLSchema(ctx, db, "parameters"); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}

	store := paramcache.NewStoreWith(ctx, paramcache.DriverSQL,
		paramcache.WithSQLDB(db),
		paramcache.WithSQLDialect(paramcache.SQLDialectSQLite),
	)
	paramtest.RunStoreContract(t, store, func(t *testing.T, name, value string) {
		t.Helper()
		if _, err := db.ExecContext(ctx,
			"INSERT OR REPLACE INTO parameters (name, value) VALUES (?, ?)", name, value); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}, paramtest.Options{})
}
