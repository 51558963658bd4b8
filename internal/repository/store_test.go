package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/hitoshi/officehub/internal/model"
)

// --- モック定義 ---

type mockTxBeginner struct {
	beginTxFn func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTxBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.beginTxFn(ctx, opts)
}

type mockDBTX struct {
	execFn func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (m *mockDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return m.execFn(ctx, query, args...)
}

func (m *mockDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (m *mockDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestPostgresStore_WithinTx_BeginError(t *testing.T) {
	store := &PostgresStore{
		beginner: &mockTxBeginner{
			beginTxFn: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
				return nil, errors.New("too many connections")
			},
		},
	}

	called := false
	err := store.WithinTx(context.Background(), func(repos Repos) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error when BeginTx fails")
	}
	if !strings.Contains(err.Error(), "failed to begin transaction") {
		t.Errorf("error = %v", err)
	}
	if called {
		t.Error("fn must not run without a transaction")
	}
}

func TestPostgresStore_ReposUseDB(t *testing.T) {
	db := &mockDBTX{
		execFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, errors.New("connection reset")
		},
	}
	store := &PostgresStore{db: db}

	err := store.Repos().Hangouts.Create(context.Background(), &model.Hangout{})
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("error = %v, want error from the store's DBTX", err)
	}
}

func TestPostgresProfileRepo_Create_DuplicateReportsAccountID(t *testing.T) {
	const accountID = "6f1c2f9e-3b1a-4c55-9d7e-0a4c1f2b9e11"
	db := &mockDBTX{
		execFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, &pq.Error{
				Code:       "23505",
				Constraint: "profiles_account_id_key",
				Detail:     "Key (account_id)=(" + accountID + ") already exists.",
			}
		},
	}
	repo := NewPostgresProfileRepo(db)

	err := repo.Create(context.Background(), model.NewDefaultProfile("", accountID))
	if !model.HasCode(err, model.ErrCodeProfileAlreadyExists) {
		t.Fatalf("error = %v, want PROFILE_ALREADY_EXISTS", err)
	}

	var apiErr *model.APIError
	errors.As(err, &apiErr)
	if !strings.HasSuffix(apiErr.Message, ": "+accountID) {
		t.Errorf("message = %q, want account ID only", apiErr.Message)
	}
	if strings.Contains(apiErr.Message, "Key (") {
		t.Errorf("message leaks PostgreSQL detail: %q", apiErr.Message)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "profiles_account_id_key"}
	if !isUniqueViolation(err, "profiles_account_id_key") {
		t.Error("expected unique violation")
	}
	if isUniqueViolation(err, "accounts_username_key") {
		t.Error("unexpected match for other constraint")
	}
	if isUniqueViolation(&pq.Error{Code: "23503", Constraint: "profiles_account_id_key"}, "profiles_account_id_key") {
		t.Error("foreign key violation must not match")
	}
	if isUniqueViolation(nil, "profiles_account_id_key") {
		t.Error("nil must not match")
	}
}
