// Package hangout はハングアウトとそのグループ分けを管理する。
package hangout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/officehub/internal/metrics"
	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/repository"
)

// Service はハングアウトとグループのサービス層。
type Service struct {
	hangoutRepo repository.HangoutRepository
	groupRepo   repository.GroupRepository
	tx          repository.Transactor
	recorder    metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
// txはグループとメンバーをまとめて作成する際に使う。
func NewService(
	hangoutRepo repository.HangoutRepository,
	groupRepo repository.GroupRepository,
	tx repository.Transactor,
	recorder metrics.Recorder,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		hangoutRepo: hangoutRepo,
		groupRepo:   groupRepo,
		tx:          tx,
		recorder:    recorder,
	}
}

// CreateHangout は指定日のハングアウトを作成する。1日に1件まで。
func (s *Service) CreateHangout(ctx context.Context, date model.Date) (*model.Hangout, error) {
	if date.IsZero() {
		return nil, model.NewInvalidInputError("日付は必須です")
	}

	h := &model.Hangout{Date: date}
	if err := s.hangoutRepo.Create(ctx, h); err != nil {
		metrics.ObserveError(s.recorder, err)
		return nil, fmt.Errorf("ハングアウトの作成に失敗しました: %w", err)
	}

	slog.Info("ハングアウトを作成しました",
		slog.String("hangout_id", h.ID),
		slog.String("date", date.String()),
	)
	return h, nil
}

// GetHangout は指定IDのハングアウトを返す。
func (s *Service) GetHangout(ctx context.Context, id string) (*model.Hangout, error) {
	h, err := s.hangoutRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ハングアウトの取得に失敗しました: %w", err)
	}
	if h == nil {
		return nil, model.NewHangoutNotFoundError(id)
	}
	return h, nil
}

// GetHangoutByDate は指定日のハングアウトを返す。
func (s *Service) GetHangoutByDate(ctx context.Context, date model.Date) (*model.Hangout, error) {
	h, err := s.hangoutRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("ハングアウトの取得に失敗しました: %w", err)
	}
	if h == nil {
		return nil, model.NewHangoutNotFoundError(date.String())
	}
	return h, nil
}

// ListHangouts は全ハングアウトを日付順に返す。
func (s *Service) ListHangouts(ctx context.Context) ([]*model.Hangout, error) {
	list, err := s.hangoutRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ハングアウト一覧の取得に失敗しました: %w", err)
	}
	return list, nil
}

// DeleteHangout はハングアウトを削除する。所属するグループとメンバーはCASCADE削除される。
func (s *Service) DeleteHangout(ctx context.Context, id string) error {
	if err := s.hangoutRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("ハングアウトの削除に失敗しました: %w", err)
	}
	slog.Info("ハングアウトを削除しました",
		slog.String("hangout_id", id),
	)
	return nil
}

// CreateGroup はハングアウトにグループを作成し、メンバーを登録する。
// グループとメンバーは同一トランザクションで作成され、途中で失敗した場合は何も残らない。
func (s *Service) CreateGroup(ctx context.Context, hangoutID string, memberIDs []string) (*model.Group, error) {
	g := &model.Group{
		HangoutID: hangoutID,
		MemberIDs: dedupe(memberIDs),
	}

	err := s.tx.WithinTx(ctx, func(repos repository.Repos) error {
		h, err := repos.Hangouts.FindByID(ctx, hangoutID)
		if err != nil {
			return fmt.Errorf("ハングアウトの取得に失敗しました: %w", err)
		}
		if h == nil {
			return model.NewReferenceNotFoundError(hangoutID)
		}
		if err := repos.Groups.Create(ctx, g); err != nil {
			return fmt.Errorf("グループの作成に失敗しました: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.ObserveError(s.recorder, err)
		return nil, err
	}

	slog.Info("グループを作成しました",
		slog.String("group_id", g.ID),
		slog.String("hangout_id", hangoutID),
		slog.Int("members", len(g.MemberIDs)),
	)
	return g, nil
}

// AddMember はグループにメンバーを追加する。既に所属している場合は何もしない。
func (s *Service) AddMember(ctx context.Context, groupID, accountID string) error {
	if err := s.groupRepo.AddMember(ctx, groupID, accountID); err != nil {
		metrics.ObserveError(s.recorder, err)
		return fmt.Errorf("メンバーの追加に失敗しました: %w", err)
	}
	return nil
}

// RemoveMember はグループからメンバーを外す。
func (s *Service) RemoveMember(ctx context.Context, groupID, accountID string) error {
	if err := s.groupRepo.RemoveMember(ctx, groupID, accountID); err != nil {
		return fmt.Errorf("メンバーの削除に失敗しました: %w", err)
	}
	return nil
}

// GetGroup はメンバー付きでグループを返す。
func (s *Service) GetGroup(ctx context.Context, id string) (*model.Group, error) {
	g, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("グループの取得に失敗しました: %w", err)
	}
	if g == nil {
		return nil, model.NewGroupNotFoundError(id)
	}
	return g, nil
}

// ListGroups はハングアウトのグループを作成順に返す。
func (s *Service) ListGroups(ctx context.Context, hangoutID string) ([]*model.Group, error) {
	list, err := s.groupRepo.ListByHangoutID(ctx, hangoutID)
	if err != nil {
		return nil, fmt.Errorf("グループ一覧の取得に失敗しました: %w", err)
	}
	return list, nil
}

// ListGroupsForAccount はアカウントが所属するグループを返す。
func (s *Service) ListGroupsForAccount(ctx context.Context, accountID string) ([]*model.Group, error) {
	list, err := s.groupRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("グループ一覧の取得に失敗しました: %w", err)
	}
	return list, nil
}

// DeleteGroup はグループを削除する。メンバーのアカウントは削除されない。
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	if err := s.groupRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("グループの削除に失敗しました: %w", err)
	}
	return nil
}

// dedupe は順序を保ったまま重複と空文字を取り除く。
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
