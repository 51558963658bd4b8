package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/repository"
	"github.com/hitoshi/officehub/internal/security"
)

// Update はプロフィールの編集内容。指定した値で全フィールドを置き換える。
type Update struct {
	Avatar    string
	BirthDate *model.Date
	Biography string
}

// Service はプロフィールの参照と編集を提供する。
// プロフィールの作成はSynchronizerだけが行う。
type Service struct {
	profileRepo repository.ProfileRepository
	sanitizer   security.TextSanitizer
	now         func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(profileRepo repository.ProfileRepository, sanitizer security.TextSanitizer) *Service {
	return &Service{
		profileRepo: profileRepo,
		sanitizer:   sanitizer,
		now:         time.Now,
	}
}

// Get はアカウントのプロフィールを返す。
func (s *Service) Get(ctx context.Context, accountID string) (*model.Profile, error) {
	p, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: %w", err)
	}
	if p == nil {
		return nil, model.NewProfileNotFoundError(accountID)
	}
	return p, nil
}

// Update はプロフィールを編集する。
// 自己紹介はHTMLを除去した後の文字数で上限を判定する。
func (s *Service) Update(ctx context.Context, accountID string, in Update) (*model.Profile, error) {
	bio := s.sanitizer.Sanitize(in.Biography)
	if n := utf8.RuneCountInString(bio); n > model.BiographyMaxLength {
		return nil, model.NewBiographyTooLongError(n)
	}
	if n := utf8.RuneCountInString(in.Avatar); n > model.AvatarMaxLength {
		return nil, model.NewAvatarTooLongError(n)
	}

	p, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	p.Avatar = in.Avatar
	p.BirthDate = in.BirthDate
	p.Biography = bio
	p.UpdatedAt = s.now()

	if err := s.profileRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("プロフィールの更新に失敗しました: %w", err)
	}

	slog.Info("プロフィールを更新しました",
		slog.String("account_id", accountID),
	)
	return p, nil
}
