package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/officehub/internal/account"
	"github.com/hitoshi/officehub/internal/brownbag"
	"github.com/hitoshi/officehub/internal/hangout"
	"github.com/hitoshi/officehub/internal/metrics"
	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/profile"
	"github.com/hitoshi/officehub/internal/repository"
	"github.com/hitoshi/officehub/internal/secretsanta"
	"github.com/hitoshi/officehub/internal/security"
)

// Services はドメインサービス一式。
type Services struct {
	Accounts     *account.Service
	Profiles     *profile.Service
	Brownbags    *brownbag.Service
	Hangouts     *hangout.Service
	SecretSantas *secretsanta.Service
}

// Store はサービスの構築に必要な永続化層。*repository.PostgresStoreが満たす。
type Store interface {
	repository.Transactor
	Repos() repository.Repos
}

// NewServices はstore上のリポジトリを使ってドメインサービスを構築する。
// アカウント保存時のプロフィール同期はprofile.Synchronizerを明示的に渡す。
func NewServices(store Store, recorder metrics.Recorder) *Services {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	repos := store.Repos()

	return &Services{
		Accounts:     account.NewService(repos.Accounts, store, profile.NewSynchronizer(recorder), recorder),
		Profiles:     profile.NewService(repos.Profiles, security.NewTextSanitizer()),
		Brownbags:    brownbag.NewService(repos.Brownbags, recorder),
		Hangouts:     hangout.NewService(repos.Hangouts, repos.Groups, store, recorder),
		SecretSantas: secretsanta.NewService(repos.SecretSantas, recorder),
	}
}

// scheduleLogTimeout は起動時のスケジュール取得の上限時間。
const scheduleLogTimeout = 5 * time.Second

// logSchedule は起動時に次のブラウンバッグ発表者を記録する。
// 取得に失敗しても、scheduleLogTimeoutを超えても起動は継続する。
func logSchedule(ctx context.Context, s *Services) {
	ctx, cancel := context.WithTimeout(ctx, scheduleLogTimeout)
	defer cancel()

	next, err := s.Brownbags.ListByStatus(ctx, string(model.BrownbagNextInLine))
	if err != nil {
		slog.Warn("failed to load brownbag schedule", slog.String("error", err.Error()))
		return
	}
	for _, b := range next {
		slog.Info("brownbag next in line",
			slog.String("date", b.Date.String()),
			slog.String("username", b.Username),
		)
	}
}
