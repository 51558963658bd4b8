// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hitoshi/officehub/internal/model"
)

// プロフィール同期の種別
const (
	SyncKindCreate = "create"
	SyncKindResave = "resave"
)

// Recorder はメトリクス記録のインターフェース。
// サービス層から利用する。
type Recorder interface {
	RecordAccountCreated()
	RecordProfileSync(kind string)
	RecordProfileSyncFailure(kind string)
	RecordConstraintViolation(code string)
	RecordBrownbagStatusChange(status string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	accountsCreated      prometheus.Counter
	profileSync          *prometheus.CounterVec
	profileSyncFailures  *prometheus.CounterVec
	constraintViolations *prometheus.CounterVec
	brownbagStatus       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "officehub_accounts_created_total",
			Help: "作成されたアカウントの合計数",
		}),
		profileSync: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "officehub_profile_sync_total",
			Help: "アカウント保存に伴うプロフィール同期の合計数",
		}, []string{"kind"}),
		profileSyncFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "officehub_profile_sync_failures_total",
			Help: "プロフィール同期失敗の合計数",
		}, []string{"kind"}),
		constraintViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "officehub_constraint_violations_total",
			Help: "エラーコード別の制約違反数",
		}, []string{"code"}),
		brownbagStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "officehub_brownbag_status_changes_total",
			Help: "変更後の状態別のブラウンバッグ状態変更数",
		}, []string{"status"}),
	}

	reg.MustRegister(
		c.accountsCreated,
		c.profileSync,
		c.profileSyncFailures,
		c.constraintViolations,
		c.brownbagStatus,
	)

	return c
}

// RecordAccountCreated はアカウント作成を記録する。
func (c *Collector) RecordAccountCreated() {
	c.accountsCreated.Inc()
}

// RecordProfileSync はプロフィール同期を記録する。
func (c *Collector) RecordProfileSync(kind string) {
	c.profileSync.WithLabelValues(kind).Inc()
}

// RecordProfileSyncFailure はプロフィール同期の失敗を記録する。
func (c *Collector) RecordProfileSyncFailure(kind string) {
	c.profileSyncFailures.WithLabelValues(kind).Inc()
}

// RecordConstraintViolation は制約違反をエラーコード別に記録する。
func (c *Collector) RecordConstraintViolation(code string) {
	c.constraintViolations.WithLabelValues(code).Inc()
}

// RecordBrownbagStatusChange はブラウンバッグの状態変更を記録する。
func (c *Collector) RecordBrownbagStatusChange(status string) {
	c.brownbagStatus.WithLabelValues(status).Inc()
}

// Nop は何も記録しないRecorder。
type Nop struct{}

func (Nop) RecordAccountCreated()             {}
func (Nop) RecordProfileSync(string)          {}
func (Nop) RecordProfileSyncFailure(string)   {}
func (Nop) RecordConstraintViolation(string)  {}
func (Nop) RecordBrownbagStatusChange(string) {}

// ObserveError はerrがドメインエラーであればそのコードを制約違反として記録する。
// ドメインエラー以外は記録しない。
func ObserveError(r Recorder, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		r.RecordConstraintViolation(apiErr.Code)
	}
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
