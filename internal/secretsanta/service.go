// Package secretsanta はシークレットサンタの組み合わせを管理する。
package secretsanta

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/officehub/internal/metrics"
	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/repository"
)

// Service はシークレットサンタのサービス層。
// 組み合わせは記録するだけで、抽選は行わない。
type Service struct {
	santaRepo repository.SecretSantaRepository
	recorder  metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(santaRepo repository.SecretSantaRepository, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		santaRepo: santaRepo,
		recorder:  recorder,
	}
}

// Assign は指定日のサンタとギフト相手の組み合わせを記録する。
func (s *Service) Assign(ctx context.Context, date model.Date, santaID, gifteeID string) (*model.SecretSanta, error) {
	if date.IsZero() {
		return nil, model.NewInvalidInputError("日付は必須です")
	}

	ss := &model.SecretSanta{
		Date:     date,
		SantaID:  santaID,
		GifteeID: gifteeID,
	}
	if err := s.santaRepo.Create(ctx, ss); err != nil {
		metrics.ObserveError(s.recorder, err)
		return nil, fmt.Errorf("シークレットサンタの登録に失敗しました: %w", err)
	}

	slog.Info("シークレットサンタを登録しました",
		slog.String("secret_santa_id", ss.ID),
		slog.String("date", date.String()),
	)
	return ss, nil
}

// Get は指定IDの組み合わせを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.SecretSanta, error) {
	ss, err := s.santaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("シークレットサンタの取得に失敗しました: %w", err)
	}
	if ss == nil {
		return nil, model.NewSecretSantaNotFoundError(id)
	}
	return ss, nil
}

// ListByDate は指定日の組み合わせを返す。
func (s *Service) ListByDate(ctx context.Context, date model.Date) ([]*model.SecretSanta, error) {
	list, err := s.santaRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("シークレットサンタ一覧の取得に失敗しました: %w", err)
	}
	return list, nil
}

// Delete は組み合わせを削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.santaRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("シークレットサンタの削除に失敗しました: %w", err)
	}
	return nil
}
