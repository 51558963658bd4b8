// Package account はアカウントのライフサイクル管理を提供する。
// アカウントの保存とプロフィールの同期は常に同一トランザクションで行う。
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hitoshi/officehub/internal/metrics"
	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/repository"
)

// ProfileSyncer はアカウント保存後のプロフィール同期のインターフェース。
type ProfileSyncer interface {
	OnAccountSaved(ctx context.Context, profiles repository.ProfileRepository, account *model.Account, created bool) (*model.Profile, error)
}

// NewAccount はアカウント作成時の入力。
type NewAccount struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Service はアカウント管理のサービス層。
type Service struct {
	accountRepo repository.AccountRepository
	tx          repository.Transactor
	syncer      ProfileSyncer
	recorder    metrics.Recorder
	now         func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
// accountRepoはトランザクション外の参照と削除に使う。
func NewService(
	accountRepo repository.AccountRepository,
	tx repository.Transactor,
	syncer ProfileSyncer,
	recorder metrics.Recorder,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		accountRepo: accountRepo,
		tx:          tx,
		syncer:      syncer,
		recorder:    recorder,
		now:         time.Now,
	}
}

// Create はアカウントを作成し、同じトランザクションで既定値のプロフィールを作成する。
// プロフィールの作成に失敗した場合はアカウントも作成されない。
func (s *Service) Create(ctx context.Context, in NewAccount) (*model.Account, *model.Profile, error) {
	username := strings.TrimSpace(in.Username)
	if err := validateUsername(username); err != nil {
		return nil, nil, err
	}

	now := s.now()
	a := &model.Account{
		Username:   username,
		Email:      strings.TrimSpace(in.Email),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		IsActive:   true,
		DateJoined: now,
		UpdatedAt:  now,
	}

	var p *model.Profile
	err := s.tx.WithinTx(ctx, func(repos repository.Repos) error {
		if err := repos.Accounts.Create(ctx, a); err != nil {
			return fmt.Errorf("アカウントの作成に失敗しました: %w", err)
		}
		created, err := s.syncer.OnAccountSaved(ctx, repos.Profiles, a, true)
		if err != nil {
			return err
		}
		p = created
		return nil
	})
	if err != nil {
		metrics.ObserveError(s.recorder, err)
		return nil, nil, err
	}

	s.recorder.RecordAccountCreated()
	slog.Info("アカウントを作成しました",
		slog.String("account_id", a.ID),
		slog.String("username", a.Username),
	)
	return a, p, nil
}

// Update はアカウントを更新し、同じトランザクションでプロフィールを再保存する。
// プロフィールが存在しない場合はPROFILE_NOT_FOUNDを返し、更新はロールバックされる。
func (s *Service) Update(ctx context.Context, a *model.Account) error {
	a.Username = strings.TrimSpace(a.Username)
	if err := validateUsername(a.Username); err != nil {
		return err
	}
	a.UpdatedAt = s.now()

	err := s.tx.WithinTx(ctx, func(repos repository.Repos) error {
		if err := repos.Accounts.Update(ctx, a); err != nil {
			return fmt.Errorf("アカウントの更新に失敗しました: %w", err)
		}
		_, err := s.syncer.OnAccountSaved(ctx, repos.Profiles, a, false)
		return err
	})
	if err != nil {
		metrics.ObserveError(s.recorder, err)
		return err
	}

	slog.Info("アカウントを更新しました",
		slog.String("account_id", a.ID),
	)
	return nil
}

// Get は指定IDのアカウントを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Account, error) {
	a, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("アカウントの取得に失敗しました: %w", err)
	}
	if a == nil {
		return nil, model.NewAccountNotFoundError(id)
	}
	return a, nil
}

// GetByUsername はユーザー名でアカウントを返す。
func (s *Service) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	a, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("アカウントの取得に失敗しました: %w", err)
	}
	if a == nil {
		return nil, model.NewAccountNotFoundError(username)
	}
	return a, nil
}

// Delete はアカウントを削除する。
// プロフィール、発表枠、グループ所属、シークレットサンタはストレージ側でCASCADE削除される。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.accountRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("アカウントの削除に失敗しました: %w", err)
	}

	slog.Info("アカウントを削除しました",
		slog.String("account_id", id),
	)
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return model.NewInvalidInputError("ユーザー名は必須です")
	}
	if n := utf8.RuneCountInString(username); n > model.UsernameMaxLength {
		return model.NewInvalidInputError(fmt.Sprintf("ユーザー名は%d文字以内です", model.UsernameMaxLength))
	}
	return nil
}
