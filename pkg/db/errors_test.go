package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestWrapErrorPassthrough(t *testing.T) {
	for _, e := range []error{
		fmt.Errorf("foo"),
		errors.New("bar"),
	} {
		if err := WrapError(e); err != e {
			t.Errorf("WrapError(%v) => %v, want %v", e, err, e)
		}
	}
	if err := WrapError(nil); err != nil {
		t.Errorf("WrapError(nil) => %v, want nil", err)
	}
}

func TestWrapErrorNoRows(t *testing.T) {
	if err := WrapError(fmt.Errorf("get: %w", sql.ErrNoRows)); err != ErrRecordNotFound {
		t.Errorf("WrapError(sql.ErrNoRows) => %v, want %v", err, ErrRecordNotFound)
	}
}

func TestWrapErrorPostgres(t *testing.T) {
	cases := []struct {
		in   error
		want error
	}{
		{&pq.Error{Code: "23505"}, ErrDuplicateKey},
		{&pq.Error{Code: "23503"}, ErrForeignKey},
		{&pgconn.PgError{Code: "23505"}, ErrDuplicateKey},
		{fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), ErrForeignKey},
	}
	for _, c := range cases {
		if err := WrapError(c.in); err != c.want {
			t.Errorf("WrapError(%v) => %v, want %v", c.in, err, c.want)
		}
	}
}
