// Package profile はアカウントに付随するプロフィールのドメインロジックを提供する。
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/officehub/internal/metrics"
	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/repository"
)

// Synchronizer はアカウント保存時にプロフィールを同期する。
// 呼び出し側のトランザクション上のProfileRepositoryを受け取り、同じトランザクションで動作する。
type Synchronizer struct {
	recorder metrics.Recorder
	now      func() time.Time
}

// NewSynchronizer はSynchronizerを生成する。recorderがnilの場合は記録しない。
func NewSynchronizer(recorder metrics.Recorder) *Synchronizer {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Synchronizer{
		recorder: recorder,
		now:      time.Now,
	}
}

// OnAccountSaved はアカウントの作成または更新の直後に呼ぶ。
//
// created=trueの場合は既定値のプロフィールを1件作成する。
// created=falseの場合は既存のプロフィールを値を変えずに再保存する。
// 再保存対象が存在しない場合はPROFILE_NOT_FOUNDを返し、作成はしない。
func (s *Synchronizer) OnAccountSaved(
	ctx context.Context,
	profiles repository.ProfileRepository,
	account *model.Account,
	created bool,
) (*model.Profile, error) {
	kind := metrics.SyncKindResave
	if created {
		kind = metrics.SyncKindCreate
	}

	p, err := s.sync(ctx, profiles, account, created)
	if err != nil {
		s.recorder.RecordProfileSyncFailure(kind)
		slog.Warn("プロフィールの同期に失敗しました",
			slog.String("account_id", account.ID),
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.recorder.RecordProfileSync(kind)
	return p, nil
}

func (s *Synchronizer) sync(
	ctx context.Context,
	profiles repository.ProfileRepository,
	account *model.Account,
	created bool,
) (*model.Profile, error) {
	if created {
		p := model.NewDefaultProfile("", account.ID)
		p.UpdatedAt = s.now()
		p.Username = account.Username
		if err := profiles.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("プロフィールの作成に失敗しました: %w", err)
		}
		return p, nil
	}

	p, err := profiles.FindByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: %w", err)
	}
	if p == nil {
		return nil, model.NewProfileNotFoundError(account.ID)
	}

	at := s.now()
	if err := profiles.Resave(ctx, account.ID, at); err != nil {
		return nil, fmt.Errorf("プロフィールの再保存に失敗しました: %w", err)
	}
	p.UpdatedAt = at
	p.Username = account.Username
	return p, nil
}
