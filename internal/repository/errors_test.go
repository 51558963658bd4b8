package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/hitoshi/officehub/internal/model"
)

func TestTranslateError_Nil(t *testing.T) {
	if err := translateError(nil, "insert account"); err != nil {
		t.Errorf("translateError(nil) = %v, want nil", err)
	}
}

func TestTranslateError_UniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		wantCode   string
	}{
		{"accounts_username_key", model.ErrCodeDuplicateUsername},
		{"hangouts_date_key", model.ErrCodeDuplicateHangoutDate},
		{"brownbags_date_key", model.ErrCodeDuplicateBrownbagDate},
		{"brownbags_account_id_key", model.ErrCodeBrownbagAlreadyAssigned},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := translateError(&pq.Error{Code: "23505", Constraint: tt.constraint}, "insert")
			if !model.HasCode(err, tt.wantCode) {
				t.Errorf("translateError(%s) = %v, want code %s", tt.constraint, err, tt.wantCode)
			}
		})
	}
}

func TestTranslateError_UnknownUniqueConstraintIsWrapped(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Constraint: "something_else_key"}
	err := translateError(pqErr, "insert thing")
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("expected plain wrapped error, got APIError %v", apiErr)
	}
	if !errors.Is(err, pqErr) {
		t.Error("expected original error to be wrapped")
	}
}

func TestTranslateError_ForeignKeyViolation(t *testing.T) {
	err := translateError(&pq.Error{Code: "23503", Constraint: "brownbags_account_id_fkey"}, "insert brownbag")
	if !model.HasCode(err, model.ErrCodeReferenceNotFound) {
		t.Errorf("error = %v, want REFERENCE_NOT_FOUND", err)
	}
}

func TestTranslateError_StatusCheckViolation(t *testing.T) {
	err := translateError(&pq.Error{Code: "23514", Constraint: "brownbags_status_check"}, "update brownbag status")
	if !model.HasCode(err, model.ErrCodeInvalidBrownbagStatus) {
		t.Errorf("error = %v, want INVALID_BROWNBAG_STATUS", err)
	}
}

func TestTranslateError_NonPostgresError(t *testing.T) {
	base := errors.New("connection reset")
	err := translateError(base, "insert account")
	if !errors.Is(err, base) {
		t.Errorf("expected wrapped error, got %v", err)
	}
	if err.Error() != "failed to insert account: connection reset" {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestIsUUID(t *testing.T) {
	if !isUUID(newID()) {
		t.Error("newID() should be a valid UUID")
	}
	for _, s := range []string{"", "abc", "1234"} {
		if isUUID(s) {
			t.Errorf("isUUID(%q) = true", s)
		}
	}
}

func TestPostgresRepos_ImplementInterfaces(t *testing.T) {
	var _ AccountRepository = (*PostgresAccountRepo)(nil)
	var _ ProfileRepository = (*PostgresProfileRepo)(nil)
	var _ HangoutRepository = (*PostgresHangoutRepo)(nil)
	var _ GroupRepository = (*PostgresGroupRepo)(nil)
	var _ BrownbagRepository = (*PostgresBrownbagRepo)(nil)
	var _ SecretSantaRepository = (*PostgresSecretSantaRepo)(nil)
	var _ Transactor = (*PostgresStore)(nil)
}

func TestNewPostgresRepos_Initializes(t *testing.T) {
	repos := NewPostgresRepos(nil)
	if repos.Accounts == nil || repos.Profiles == nil || repos.Hangouts == nil ||
		repos.Groups == nil || repos.Brownbags == nil || repos.SecretSantas == nil {
		t.Fatalf("expected all repositories to be set: %+v", repos)
	}
}

// 不正なIDはクエリを発行せずに処理されるため、DBなしで検証できる
func TestPostgresRepos_MalformedIDs(t *testing.T) {
	repos := NewPostgresRepos(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if a, err := repos.Accounts.FindByID(ctx, "not-a-uuid"); a != nil || err != nil {
		t.Errorf("Accounts.FindByID = %v, %v", a, err)
	}
	if err := repos.Accounts.DeleteByID(ctx, "not-a-uuid"); !model.HasCode(err, model.ErrCodeAccountNotFound) {
		t.Errorf("Accounts.DeleteByID error = %v", err)
	}
	if err := repos.Profiles.Resave(ctx, "not-a-uuid", time.Now()); !model.HasCode(err, model.ErrCodeProfileNotFound) {
		t.Errorf("Profiles.Resave error = %v", err)
	}
	if h, err := repos.Hangouts.FindByID(ctx, "not-a-uuid"); h != nil || err != nil {
		t.Errorf("Hangouts.FindByID = %v, %v", h, err)
	}
	if err := repos.Groups.DeleteByID(ctx, "not-a-uuid"); !model.HasCode(err, model.ErrCodeGroupNotFound) {
		t.Errorf("Groups.DeleteByID error = %v", err)
	}
	if err := repos.Brownbags.UpdateStatus(ctx, "not-a-uuid", model.BrownbagDone); !model.HasCode(err, model.ErrCodeBrownbagNotFound) {
		t.Errorf("Brownbags.UpdateStatus error = %v", err)
	}
	if err := repos.SecretSantas.DeleteByID(ctx, "not-a-uuid"); !model.HasCode(err, model.ErrCodeSecretSantaNotFound) {
		t.Errorf("SecretSantas.DeleteByID error = %v", err)
	}
}
