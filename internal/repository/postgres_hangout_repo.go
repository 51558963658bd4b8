package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/officehub/internal/model"
)

// PostgresHangoutRepo はPostgreSQLを使用したハングアウトリポジトリ。
type PostgresHangoutRepo struct {
	db DBTX
}

// NewPostgresHangoutRepo はPostgresHangoutRepoを生成する。
func NewPostgresHangoutRepo(db DBTX) *PostgresHangoutRepo {
	return &PostgresHangoutRepo{db: db}
}

// FindByID は指定IDのハングアウトを取得する。見つからない場合はnilを返す。
func (r *PostgresHangoutRepo) FindByID(ctx context.Context, id string) (*model.Hangout, error) {
	if !isUUID(id) {
		return nil, nil
	}
	h := &model.Hangout{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date FROM hangouts WHERE id = $1`, id,
	).Scan(&h.ID, &h.Date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find hangout by ID: %w", err)
	}
	return h, nil
}

// FindByDate は日付でハングアウトを取得する。見つからない場合はnilを返す。
func (r *PostgresHangoutRepo) FindByDate(ctx context.Context, date model.Date) (*model.Hangout, error) {
	h := &model.Hangout{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date FROM hangouts WHERE date = $1`, date,
	).Scan(&h.ID, &h.Date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find hangout by date: %w", err)
	}
	return h, nil
}

// List は全ハングアウトを日付の昇順で返す。
func (r *PostgresHangoutRepo) List(ctx context.Context) ([]*model.Hangout, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, date FROM hangouts ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list hangouts: %w", err)
	}
	defer rows.Close()

	var hangouts []*model.Hangout
	for rows.Next() {
		h := &model.Hangout{}
		if err := rows.Scan(&h.ID, &h.Date); err != nil {
			return nil, fmt.Errorf("failed to scan hangout: %w", err)
		}
		hangouts = append(hangouts, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hangouts: %w", err)
	}
	return hangouts, nil
}

// Create はハングアウトを作成する。IDが空の場合は採番する。
func (r *PostgresHangoutRepo) Create(ctx context.Context, hangout *model.Hangout) error {
	if hangout.ID == "" {
		hangout.ID = newID()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hangouts (id, date) VALUES ($1, $2)`,
		hangout.ID, hangout.Date,
	)
	return translateError(err, "insert hangout")
}

// DeleteByID はハングアウトを削除する。groupsとgroup_membersはCASCADE削除される。
func (r *PostgresHangoutRepo) DeleteByID(ctx context.Context, id string) error {
	if !isUUID(id) {
		return model.NewHangoutNotFoundError(id)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM hangouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hangout: %w", err)
	}
	return requireAffected(result, model.NewHangoutNotFoundError(id))
}

// compile-time interface check
var _ HangoutRepository = (*PostgresHangoutRepo)(nil)
