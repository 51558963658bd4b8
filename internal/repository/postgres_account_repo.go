package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/officehub/internal/model"
)

const accountColumns = `id, username, email, first_name, last_name, is_active, date_joined, updated_at`

// PostgresAccountRepo はPostgreSQLを使用したアカウントリポジトリ。
type PostgresAccountRepo struct {
	db DBTX
}

// NewPostgresAccountRepo はPostgresAccountRepoを生成する。
func NewPostgresAccountRepo(db DBTX) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

func scanAccount(row *sql.Row) (*model.Account, error) {
	a := &model.Account{}
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName,
		&a.IsActive, &a.DateJoined, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
func (r *PostgresAccountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	if !isUUID(id) {
		return nil, nil
	}
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by ID: %w", err)
	}
	return a, nil
}

// FindByUsername はユーザー名でアカウントを取得する。見つからない場合はnilを返す。
func (r *PostgresAccountRepo) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by username: %w", err)
	}
	return a, nil
}

// Create はアカウントを作成する。IDが空の場合は採番する。
func (r *PostgresAccountRepo) Create(ctx context.Context, account *model.Account) error {
	if account.ID == "" {
		account.ID = newID()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID, account.Username, account.Email, account.FirstName, account.LastName,
		account.IsActive, account.DateJoined, account.UpdatedAt,
	)
	return translateError(err, "insert account")
}

// Update はアカウントを更新する。
func (r *PostgresAccountRepo) Update(ctx context.Context, account *model.Account) error {
	if !isUUID(account.ID) {
		return model.NewAccountNotFoundError(account.ID)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET username = $2, email = $3, first_name = $4, last_name = $5, is_active = $6, updated_at = $7
		 WHERE id = $1`,
		account.ID, account.Username, account.Email, account.FirstName, account.LastName,
		account.IsActive, account.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "update account")
	}
	return requireAffected(result, model.NewAccountNotFoundError(account.ID))
}

// DeleteByID は指定IDのアカウントを削除する。
// profiles、brownbags、group_members、secret_santasはCASCADE削除される。
func (r *PostgresAccountRepo) DeleteByID(ctx context.Context, id string) error {
	if !isUUID(id) {
		return model.NewAccountNotFoundError(id)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireAffected(result, model.NewAccountNotFoundError(id))
}

// requireAffected は更新行数が0の場合にnotFoundを返す。
func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// compile-time interface check
var _ AccountRepository = (*PostgresAccountRepo)(nil)
