package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestUsersFindByEmail(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := &PGXUsersRepository{pool: &stubPool{
			queryRowFn: func(context.Context, string, ...any) pgx.Row {
				return stubRow{scanFn: func(...any) error { return pgx.ErrNoRows }}
			},
		}}

		_, err := repo.FindByEmail(t.Context(), "nobody@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		repo := &PGXUsersRepository{pool: &stubPool{
			queryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				if !strings.Contains(sql, "WHERE email = $1") {
					t.Fatalf("unexpected query: %s", sql)
				}
				return stubRow{scanFn: func(dest ...any) error {
					*dest[0].(*uuid.UUID) = id
					*dest[1].(*string) = args[0].(string)
					*dest[2].(*string) = "hash"
					*dest[3].(*string) = "user"
					*dest[4].(*time.Time) = time.Now()
					*dest[5].(*time.Time) = time.Now()
					return nil
				}}
			},
		}}

		user, err := repo.FindByEmail(t.Context(), "jane@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != id || user.Email != "jane@example.com" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})
}

func TestUsersCreate(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		repo := &PGXUsersRepository{pool: &stubPool{
			queryRowFn: func(context.Context, string, ...any) pgx.Row {
				return stubRow{scanFn: func(...any) error {
					return &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "users_email_key"`}
				}}
			},
		}}

		_, err := repo.Create(t.Context(), "jane@example.com", "hash", "user")
		if !errors.Is(err, ErrEmailDuplicate) {
			t.Fatalf("expected ErrEmailDuplicate, got %v", err)
		}
	})

	t.Run("inserts role", func(t *testing.T) {
		var gotArgs []any
		repo := &PGXUsersRepository{pool: &stubPool{
			queryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return stubRow{scanFn: func(dest ...any) error {
					*dest[0].(*uuid.UUID) = uuid.New()
					*dest[1].(*string) = args[0].(string)
					*dest[2].(*string) = args[1].(string)
					*dest[3].(*string) = args[2].(string)
					*dest[4].(*time.Time) = time.Now()
					*dest[5].(*time.Time) = time.Now()
					return nil
				}}
			},
		}}

		user, err := repo.Create(t.Context(), "jane@example.com", "hash", "admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gotArgs) != 3 || gotArgs[2] != "admin" {
			t.Fatalf("unexpected insert args: %v", gotArgs)
		}
		if user.Role != "admin" {
			t.Fatalf("unexpected role: %s", user.Role)
		}
	})
}
