// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hitoshi/officehub/internal/model"
)

// DBTX は*sql.DBと*sql.Txの両方が満たすクエリ実行インターフェース。
// リポジトリはどちらの上でも動作し、呼び出し側のトランザクションに参加できる。
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AccountRepository はアカウントの永続化インターフェース。
type AccountRepository interface {
	// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// FindByUsername はユーザー名でアカウントを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.Account, error)

	// Create はアカウントを作成する。
	Create(ctx context.Context, account *model.Account) error

	// Update はアカウントを更新する。存在しない場合はACCOUNT_NOT_FOUNDを返す。
	Update(ctx context.Context, account *model.Account) error

	// DeleteByID は指定IDのアカウントを削除する。
	// profiles、brownbags、group_members、secret_santasはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// ProfileRepository はプロフィールの永続化インターフェース。
type ProfileRepository interface {
	// FindByAccountID はアカウントのプロフィールを取得する。見つからない場合はnilを返す。
	FindByAccountID(ctx context.Context, accountID string) (*model.Profile, error)

	// Create はプロフィールを作成する。1アカウントにつき1件まで。
	Create(ctx context.Context, profile *model.Profile) error

	// Resave はアカウントのプロフィールを値を変えずに再保存し、updated_atのみ更新する。
	// 存在しない場合はPROFILE_NOT_FOUNDを返す。
	Resave(ctx context.Context, accountID string, at time.Time) error

	// Update はavatar、birth_date、biographyを更新する。
	// 存在しない場合はPROFILE_NOT_FOUNDを返す。
	Update(ctx context.Context, profile *model.Profile) error
}

// HangoutRepository はハングアウトの永続化インターフェース。
type HangoutRepository interface {
	// FindByID は指定IDのハングアウトを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Hangout, error)

	// FindByDate は日付でハングアウトを取得する。見つからない場合はnilを返す。
	FindByDate(ctx context.Context, date model.Date) (*model.Hangout, error)

	// List は全ハングアウトを日付の昇順で返す。
	List(ctx context.Context) ([]*model.Hangout, error)

	// Create はハングアウトを作成する。同一日付はDUPLICATE_HANGOUT_DATEになる。
	Create(ctx context.Context, hangout *model.Hangout) error

	// DeleteByID はハングアウトを削除する。groupsとgroup_membersはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// GroupRepository はグループとメンバーの永続化インターフェース。
type GroupRepository interface {
	// FindByID はメンバー付きでグループを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Group, error)

	// ListByHangoutID はハングアウトに属するグループを作成順に返す。
	ListByHangoutID(ctx context.Context, hangoutID string) ([]*model.Group, error)

	// ListByAccountID はアカウントが所属するグループを返す。
	ListByAccountID(ctx context.Context, accountID string) ([]*model.Group, error)

	// Create はグループとメンバーを作成する。原子性が必要な場合はトランザクション上で呼ぶこと。
	Create(ctx context.Context, group *model.Group) error

	// AddMember はメンバーを追加する。既に所属している場合は何もしない。
	AddMember(ctx context.Context, groupID, accountID string) error

	// RemoveMember はメンバーを外す。
	RemoveMember(ctx context.Context, groupID, accountID string) error

	// DeleteByID はグループを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// BrownbagRepository はブラウンバッグ発表枠の永続化インターフェース。
type BrownbagRepository interface {
	// FindByID は指定IDの発表枠を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Brownbag, error)

	// FindByAccountID はアカウントの発表枠を取得する。見つからない場合はnilを返す。
	FindByAccountID(ctx context.Context, accountID string) (*model.Brownbag, error)

	// ListFrom は指定日以降の発表枠を日付の昇順で返す。
	ListFrom(ctx context.Context, from model.Date) ([]*model.Brownbag, error)

	// ListByStatus は指定状態の発表枠を日付の昇順で返す。
	ListByStatus(ctx context.Context, status model.BrownbagStatus) ([]*model.Brownbag, error)

	// Create は発表枠を作成する。
	Create(ctx context.Context, brownbag *model.Brownbag) error

	// UpdateStatus は状態を更新する。存在しない場合はBROWNBAG_NOT_FOUNDを返す。
	UpdateStatus(ctx context.Context, id string, status model.BrownbagStatus) error

	// DeleteByID は発表枠を削除する。
	DeleteByID(ctx context.Context, id string) error
}

// SecretSantaRepository はシークレットサンタの永続化インターフェース。
type SecretSantaRepository interface {
	// FindByID は指定IDの組み合わせを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.SecretSanta, error)

	// ListByDate は指定日の組み合わせを返す。
	ListByDate(ctx context.Context, date model.Date) ([]*model.SecretSanta, error)

	// Create は組み合わせを作成する。
	Create(ctx context.Context, santa *model.SecretSanta) error

	// DeleteByID は組み合わせを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// Repos は同一のDBTX上に構築したリポジトリ一式。
type Repos struct {
	Accounts     AccountRepository
	Profiles     ProfileRepository
	Hangouts     HangoutRepository
	Groups       GroupRepository
	Brownbags    BrownbagRepository
	SecretSantas SecretSantaRepository
}

// Transactor はトランザクション境界を提供するインターフェース。
// fnがエラーを返した場合はロールバックし、そのエラーをそのまま返す。
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos Repos) error) error
}

// TxBeginner はPostgresStoreがトランザクションを開始するためのインターフェース。*sql.DBが満たす。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
