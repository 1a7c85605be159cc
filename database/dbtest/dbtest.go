// Package dbtest opens throwaway stores for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"pupils-backend/config"
	"pupils-backend/database"
)

var memoryDBSeq atomic.Int64

// Open opens a private in-memory SQLite store, migrates it and
// closes it when the test ends.
func Open(t testing.TB, seed bool) *database.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		DBDriver:     config.DriverSQLite,
		DBPath:       fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, memoryDBSeq.Add(1)),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	store, err := database.InitDB(cfg)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := database.Migrate(store.Gorm, seed); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	return store
}
