// Package brownbag はブラウンバッグ発表者のローテーション管理を提供する。
package brownbag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/officehub/internal/metrics"
	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/repository"
)

// Service はブラウンバッグ発表枠のサービス層。
// 1日に1枠、1アカウントにつき1枠までの制約はストレージ側で保証する。
type Service struct {
	brownbagRepo repository.BrownbagRepository
	recorder     metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(brownbagRepo repository.BrownbagRepository, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		brownbagRepo: brownbagRepo,
		recorder:     recorder,
	}
}

// Schedule はアカウントを指定日の発表者として登録する。状態はnot_doneで始まる。
func (s *Service) Schedule(ctx context.Context, accountID string, date model.Date) (*model.Brownbag, error) {
	if date.IsZero() {
		return nil, model.NewInvalidInputError("日付は必須です")
	}

	b := &model.Brownbag{
		Date:      date,
		Status:    model.DefaultBrownbagStatus,
		AccountID: accountID,
	}
	if err := s.brownbagRepo.Create(ctx, b); err != nil {
		metrics.ObserveError(s.recorder, err)
		return nil, fmt.Errorf("ブラウンバッグの登録に失敗しました: %w", err)
	}

	slog.Info("ブラウンバッグを登録しました",
		slog.String("brownbag_id", b.ID),
		slog.String("account_id", accountID),
		slog.String("date", date.String()),
	)
	return b, nil
}

// SetStatus は発表枠の状態を変更する。
// 値が定義済みの状態かどうかだけを検証し、遷移の順序は制限しない。
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	st, err := model.ParseBrownbagStatus(status)
	if err != nil {
		metrics.ObserveError(s.recorder, err)
		return err
	}

	if err := s.brownbagRepo.UpdateStatus(ctx, id, st); err != nil {
		metrics.ObserveError(s.recorder, err)
		return fmt.Errorf("ブラウンバッグの状態更新に失敗しました: %w", err)
	}

	s.recorder.RecordBrownbagStatusChange(string(st))
	slog.Info("ブラウンバッグの状態を変更しました",
		slog.String("brownbag_id", id),
		slog.String("status", string(st)),
	)
	return nil
}

// Get は指定IDの発表枠を返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Brownbag, error) {
	b, err := s.brownbagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ブラウンバッグの取得に失敗しました: %w", err)
	}
	if b == nil {
		return nil, model.NewBrownbagNotFoundError(id)
	}
	return b, nil
}

// ListFrom は指定日以降の発表枠を日付順に返す。
func (s *Service) ListFrom(ctx context.Context, from model.Date) ([]*model.Brownbag, error) {
	list, err := s.brownbagRepo.ListFrom(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("ブラウンバッグ一覧の取得に失敗しました: %w", err)
	}
	return list, nil
}

// ListByStatus は指定状態の発表枠を日付順に返す。
func (s *Service) ListByStatus(ctx context.Context, status string) ([]*model.Brownbag, error) {
	st, err := model.ParseBrownbagStatus(status)
	if err != nil {
		return nil, err
	}
	list, err := s.brownbagRepo.ListByStatus(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("ブラウンバッグ一覧の取得に失敗しました: %w", err)
	}
	return list, nil
}

// Delete は発表枠を削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.brownbagRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("ブラウンバッグの削除に失敗しました: %w", err)
	}
	return nil
}
