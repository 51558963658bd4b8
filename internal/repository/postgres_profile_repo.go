package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/officehub/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
type PostgresProfileRepo struct {
	db DBTX
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db DBTX) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// FindByAccountID はアカウントのプロフィールをユーザー名付きで取得する。
// 見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByAccountID(ctx context.Context, accountID string) (*model.Profile, error) {
	if !isUUID(accountID) {
		return nil, nil
	}
	p := &model.Profile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.account_id, p.avatar, p.birth_date, p.biography, p.updated_at, a.username
		 FROM profiles p
		 JOIN accounts a ON a.id = p.account_id
		 WHERE p.account_id = $1`,
		accountID,
	).Scan(&p.ID, &p.AccountID, &p.Avatar, &p.BirthDate, &p.Biography, &p.UpdatedAt, &p.Username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return p, nil
}

// Create はプロフィールを作成する。IDが空の場合は採番する。
func (r *PostgresProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = newID()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, account_id, avatar, birth_date, biography, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		profile.ID, profile.AccountID, profile.Avatar, profile.BirthDate, profile.Biography, profile.UpdatedAt,
	)
	if isUniqueViolation(err, "profiles_account_id_key") {
		return model.NewProfileAlreadyExistsError(profile.AccountID)
	}
	return translateError(err, "insert profile")
}

// Resave はプロフィールの値を変えずに再保存する。
func (r *PostgresProfileRepo) Resave(ctx context.Context, accountID string, at time.Time) error {
	if !isUUID(accountID) {
		return model.NewProfileNotFoundError(accountID)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles
		 SET avatar = avatar, birth_date = birth_date, biography = biography, updated_at = $2
		 WHERE account_id = $1`,
		accountID, at,
	)
	if err != nil {
		return fmt.Errorf("failed to resave profile: %w", err)
	}
	return requireAffected(result, model.NewProfileNotFoundError(accountID))
}

// Update はavatar、birth_date、biographyを更新する。
func (r *PostgresProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	if !isUUID(profile.AccountID) {
		return model.NewProfileNotFoundError(profile.AccountID)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles
		 SET avatar = $2, birth_date = $3, biography = $4, updated_at = $5
		 WHERE account_id = $1`,
		profile.AccountID, profile.Avatar, profile.BirthDate, profile.Biography, profile.UpdatedAt,
	)
	if err != nil {
		return translateError(err, "update profile")
	}
	return requireAffected(result, model.NewProfileNotFoundError(profile.AccountID))
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
