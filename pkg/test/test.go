// Package test provides testing utilities shared across packages.
package test

import (
	"context"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/flowpro/flowpro/pkg/db"
)

var (
	used = map[int]struct{}{}
	lock sync.Mutex
)

// RandomPort returns a random port number.
// This is mainly used for testing.
func RandomPort() int {
	addr, _ := net.Listen("tcp", ":0") //nolint:gosec
	_ = addr.Close()
	port := addr.Addr().(*net.TCPAddr).Port
	lock.Lock()

	if _, ok := used[port]; ok {
		lock.Unlock()
		return RandomPort()
	}

	used[port] = struct{}{}
	lock.Unlock()
	return port
}

// SqliteDSN returns a data source name for a SQLite database stored in a
// temporary directory owned by tb.
func SqliteDSN(tb testing.TB) string {
	return filepath.Join(tb.TempDir(), "test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"
}

// OpenSqlite opens a new temp SQLite database for testing.
// It closes the database when the test is done using tb.Cleanup.
// If ctx is nil, context.TODO() is used.
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	if ctx == nil {
		ctx = context.TODO()
	}
	dbx, err := db.Open(ctx, "sqlite", SqliteDSN(tb))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}
