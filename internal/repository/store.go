package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// NewPostgresRepos は同一のDBTX上にPostgreSQLリポジトリ一式を構築する。
func NewPostgresRepos(db DBTX) Repos {
	return Repos{
		Accounts:     NewPostgresAccountRepo(db),
		Profiles:     NewPostgresProfileRepo(db),
		Hangouts:     NewPostgresHangoutRepo(db),
		Groups:       NewPostgresGroupRepo(db),
		Brownbags:    NewPostgresBrownbagRepo(db),
		SecretSantas: NewPostgresSecretSantaRepo(db),
	}
}

// PostgresStore はトランザクション境界を提供するストア。
type PostgresStore struct {
	db       DBTX
	beginner TxBeginner
}

// NewPostgresStore はPostgresStoreを生成する。
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, beginner: db}
}

// Repos はトランザクション外で使うリポジトリ一式を返す。
func (s *PostgresStore) Repos() Repos {
	return NewPostgresRepos(s.db)
}

// WithinTx はトランザクション上のリポジトリでfnを実行する。
// fnがエラーを返した場合はロールバックし、そのエラーをそのまま返す。
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(repos Repos) error) error {
	tx, err := s.beginner.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(NewPostgresRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// compile-time interface check
var _ Transactor = (*PostgresStore)(nil)
