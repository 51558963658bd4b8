package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/officehub/internal/model"
)

const secretSantaSelect = `SELECT s.id, s.date, s.santa_id, s.giftee_id, sa.username, ga.username
	FROM secret_santas s
	JOIN accounts sa ON sa.id = s.santa_id
	JOIN accounts ga ON ga.id = s.giftee_id`

// PostgresSecretSantaRepo はPostgreSQLを使用したシークレットサンタリポジトリ。
type PostgresSecretSantaRepo struct {
	db DBTX
}

// NewPostgresSecretSantaRepo はPostgresSecretSantaRepoを生成する。
func NewPostgresSecretSantaRepo(db DBTX) *PostgresSecretSantaRepo {
	return &PostgresSecretSantaRepo{db: db}
}

func scanSecretSanta(row rowScanner) (*model.SecretSanta, error) {
	s := &model.SecretSanta{}
	if err := row.Scan(&s.ID, &s.Date, &s.SantaID, &s.GifteeID, &s.SantaUsername, &s.GifteeUsername); err != nil {
		return nil, err
	}
	return s, nil
}

// FindByID は指定IDの組み合わせを取得する。見つからない場合はnilを返す。
func (r *PostgresSecretSantaRepo) FindByID(ctx context.Context, id string) (*model.SecretSanta, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSecretSanta(r.db.QueryRowContext(ctx, secretSantaSelect+` WHERE s.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find secret santa by ID: %w", err)
	}
	return s, nil
}

// ListByDate は指定日の組み合わせをサンタのユーザー名順に返す。
func (r *PostgresSecretSantaRepo) ListByDate(ctx context.Context, date model.Date) ([]*model.SecretSanta, error) {
	rows, err := r.db.QueryContext(ctx,
		secretSantaSelect+` WHERE s.date = $1 ORDER BY sa.username`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list secret santas: %w", err)
	}
	defer rows.Close()

	var santas []*model.SecretSanta
	for rows.Next() {
		s, err := scanSecretSanta(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan secret santa: %w", err)
		}
		santas = append(santas, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate secret santas: %w", err)
	}
	return santas, nil
}

// Create は組み合わせを作成する。IDが空の場合は採番する。
func (r *PostgresSecretSantaRepo) Create(ctx context.Context, santa *model.SecretSanta) error {
	if santa.ID == "" {
		santa.ID = newID()
	}
	if !isUUID(santa.SantaID) {
		return model.NewReferenceNotFoundError(santa.SantaID)
	}
	if !isUUID(santa.GifteeID) {
		return model.NewReferenceNotFoundError(santa.GifteeID)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO secret_santas (id, date, santa_id, giftee_id) VALUES ($1, $2, $3, $4)`,
		santa.ID, santa.Date, santa.SantaID, santa.GifteeID,
	)
	return translateError(err, "insert secret santa")
}

// DeleteByID は組み合わせを削除する。
func (r *PostgresSecretSantaRepo) DeleteByID(ctx context.Context, id string) error {
	if !isUUID(id) {
		return model.NewSecretSantaNotFoundError(id)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM secret_santas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete secret santa: %w", err)
	}
	return requireAffected(result, model.NewSecretSantaNotFoundError(id))
}

// compile-time interface check
var _ SecretSantaRepository = (*PostgresSecretSantaRepo)(nil)
