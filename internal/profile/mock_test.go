package profile

import (
	"context"
	"time"

	"github.com/hitoshi/officehub/internal/model"
)

// --- モック ---

type mockProfileRepo struct {
	findByAccountIDFn func(ctx context.Context, accountID string) (*model.Profile, error)
	createFn          func(ctx context.Context, p *model.Profile) error
	resaveFn          func(ctx context.Context, accountID string, at time.Time) error
	updateFn          func(ctx context.Context, p *model.Profile) error

	createCalls int
	resaveCalls int
}

func (m *mockProfileRepo) FindByAccountID(ctx context.Context, accountID string) (*model.Profile, error) {
	if m.findByAccountIDFn != nil {
		return m.findByAccountIDFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockProfileRepo) Resave(ctx context.Context, accountID string, at time.Time) error {
	m.resaveCalls++
	if m.resaveFn != nil {
		return m.resaveFn(ctx, accountID, at)
	}
	return nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

type mockRecorder struct {
	syncs    map[string]int
	failures map[string]int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{syncs: map[string]int{}, failures: map[string]int{}}
}

func (m *mockRecorder) RecordAccountCreated()                    {}
func (m *mockRecorder) RecordProfileSync(kind string)            { m.syncs[kind]++ }
func (m *mockRecorder) RecordProfileSyncFailure(kind string)     { m.failures[kind]++ }
func (m *mockRecorder) RecordConstraintViolation(code string)    {}
func (m *mockRecorder) RecordBrownbagStatusChange(status string) {}

// passthroughSanitizer は入力をそのまま返す。
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(raw string) string { return raw }
