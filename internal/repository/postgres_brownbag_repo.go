package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/officehub/internal/model"
)

const brownbagSelect = `SELECT b.id, b.date, b.status, b.account_id, a.username
	FROM brownbags b
	JOIN accounts a ON a.id = b.account_id`

// PostgresBrownbagRepo はPostgreSQLを使用したブラウンバッグリポジトリ。
type PostgresBrownbagRepo struct {
	db DBTX
}

// NewPostgresBrownbagRepo はPostgresBrownbagRepoを生成する。
func NewPostgresBrownbagRepo(db DBTX) *PostgresBrownbagRepo {
	return &PostgresBrownbagRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrownbag(row rowScanner) (*model.Brownbag, error) {
	b := &model.Brownbag{}
	var status string
	if err := row.Scan(&b.ID, &b.Date, &status, &b.AccountID, &b.Username); err != nil {
		return nil, err
	}
	b.Status = model.BrownbagStatus(status)
	return b, nil
}

// FindByID は指定IDの発表枠を取得する。見つからない場合はnilを返す。
func (r *PostgresBrownbagRepo) FindByID(ctx context.Context, id string) (*model.Brownbag, error) {
	if !isUUID(id) {
		return nil, nil
	}
	b, err := scanBrownbag(r.db.QueryRowContext(ctx, brownbagSelect+` WHERE b.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find brownbag by ID: %w", err)
	}
	return b, nil
}

// FindByAccountID はアカウントの発表枠を取得する。見つからない場合はnilを返す。
func (r *PostgresBrownbagRepo) FindByAccountID(ctx context.Context, accountID string) (*model.Brownbag, error) {
	if !isUUID(accountID) {
		return nil, nil
	}
	b, err := scanBrownbag(r.db.QueryRowContext(ctx, brownbagSelect+` WHERE b.account_id = $1`, accountID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find brownbag by account: %w", err)
	}
	return b, nil
}

// ListFrom は指定日以降の発表枠を日付の昇順で返す。
func (r *PostgresBrownbagRepo) ListFrom(ctx context.Context, from model.Date) ([]*model.Brownbag, error) {
	return r.list(ctx, brownbagSelect+` WHERE b.date >= $1 ORDER BY b.date`, from)
}

// ListByStatus は指定状態の発表枠を日付の昇順で返す。
func (r *PostgresBrownbagRepo) ListByStatus(ctx context.Context, status model.BrownbagStatus) ([]*model.Brownbag, error) {
	return r.list(ctx, brownbagSelect+` WHERE b.status = $1 ORDER BY b.date`, string(status))
}

func (r *PostgresBrownbagRepo) list(ctx context.Context, query string, arg any) ([]*model.Brownbag, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list brownbags: %w", err)
	}
	defer rows.Close()

	var brownbags []*model.Brownbag
	for rows.Next() {
		b, err := scanBrownbag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brownbag: %w", err)
		}
		brownbags = append(brownbags, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brownbags: %w", err)
	}
	return brownbags, nil
}

// Create は発表枠を作成する。IDが空の場合は採番し、状態が空の場合はnot_doneにする。
func (r *PostgresBrownbagRepo) Create(ctx context.Context, brownbag *model.Brownbag) error {
	if brownbag.ID == "" {
		brownbag.ID = newID()
	}
	if brownbag.Status == "" {
		brownbag.Status = model.DefaultBrownbagStatus
	}
	if !isUUID(brownbag.AccountID) {
		return model.NewReferenceNotFoundError(brownbag.AccountID)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO brownbags (id, date, status, account_id) VALUES ($1, $2, $3, $4)`,
		brownbag.ID, brownbag.Date, string(brownbag.Status), brownbag.AccountID,
	)
	return translateError(err, "insert brownbag")
}

// UpdateStatus は状態を更新する。
func (r *PostgresBrownbagRepo) UpdateStatus(ctx context.Context, id string, status model.BrownbagStatus) error {
	if !isUUID(id) {
		return model.NewBrownbagNotFoundError(id)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE brownbags SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return translateError(err, "update brownbag status")
	}
	return requireAffected(result, model.NewBrownbagNotFoundError(id))
}

// DeleteByID は発表枠を削除する。
func (r *PostgresBrownbagRepo) DeleteByID(ctx context.Context, id string) error {
	if !isUUID(id) {
		return model.NewBrownbagNotFoundError(id)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM brownbags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brownbag: %w", err)
	}
	return requireAffected(result, model.NewBrownbagNotFoundError(id))
}

// compile-time interface check
var _ BrownbagRepository = (*PostgresBrownbagRepo)(nil)
