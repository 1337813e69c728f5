package db

import (
	"database/sql"
	"errors"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT)`)
	if err != nil {
		db.Close()
		t.Fatalf("failed to create table: %v", err)
	}

	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count
}

func TestOpen_AppliesBusyTimeout(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var timeout int
	if err := db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if timeout != 2000 {
		t.Errorf("busy_timeout = %d, want 2000", timeout)
	}
}

func TestWithTx(t *testing.T) {
	abort := errors.New("abort")

	tests := []struct {
		name    string
		fn      func(tx *sql.Tx) error
		wantErr error
		want    int
	}{
		{
			name: "commit",
			fn: func(tx *sql.Tx) error {
				_, err := tx.Exec(`INSERT INTO kv VALUES ('a', '1')`)
				return err
			},
			want: 1,
		},
		{
			name: "multiple statements",
			fn: func(tx *sql.Tx) error {
				for _, k := range []string{"a", "b", "c"} {
					if _, err := tx.Exec(`INSERT INTO kv VALUES (?, 'x')`, k); err != nil {
						return err
					}
				}
				return nil
			},
			want: 3,
		},
		{
			name: "rollback on error",
			fn: func(tx *sql.Tx) error {
				if _, err := tx.Exec(`INSERT INTO kv VALUES ('a', '1')`); err != nil {
					return err
				}
				return abort
			},
			wantErr: abort,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			err := WithTx(db, tt.fn)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("WithTx() err = %v, want %v", err, tt.wantErr)
			}
			if got := countRows(t, db); got != tt.want {
				t.Errorf("rows = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNullStringValue(t *testing.T) {
	tests := []struct {
		in   sql.NullString
		want string
	}{
		{sql.NullString{String: "hello", Valid: true}, "hello"},
		{sql.NullString{String: "hello", Valid: false}, ""},
		{sql.NullString{String: "", Valid: true}, ""},
	}
	for _, tt := range tests {
		if got := NullStringValue(tt.in); got != tt.want {
			t.Errorf("NullStringValue(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
