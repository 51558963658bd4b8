package profile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/officehub/internal/model"
	"github.com/hitoshi/officehub/internal/security"
)

func existingProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{
		findByAccountIDFn: func(ctx context.Context, accountID string) (*model.Profile, error) {
			return &model.Profile{ID: "p-1", AccountID: accountID, Username: "alice"}, nil
		},
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&mockProfileRepo{}, passthroughSanitizer{})

	_, err := svc.Get(context.Background(), "acc-1")
	if !model.HasCode(err, model.ErrCodeProfileNotFound) {
		t.Errorf("error = %v, want PROFILE_NOT_FOUND", err)
	}
}

func TestService_Update_PersistsFields(t *testing.T) {
	repo := existingProfileRepo()
	var saved *model.Profile
	repo.updateFn = func(ctx context.Context, p *model.Profile) error {
		saved = p
		return nil
	}
	svc := NewService(repo, security.NewTextSanitizer())

	birth := model.NewDate(1990, time.May, 17)
	p, err := svc.Update(context.Background(), "acc-1", Update{
		Avatar:    "avatars/alice.png",
		BirthDate: &birth,
		Biography: "<b>Coffee</b> & code",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if saved == nil {
		t.Fatal("profile was not persisted")
	}
	if p.Biography != "Coffee & code" {
		t.Errorf("Biography = %q", p.Biography)
	}
	if p.Avatar != "avatars/alice.png" || !p.BirthDate.Equal(birth) {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set")
	}
}

func TestService_Update_BiographyLimitCountsRunes(t *testing.T) {
	svc := NewService(existingProfileRepo(), passthroughSanitizer{})

	// マルチバイト文字でも文字数で判定する
	ok := strings.Repeat("あ", model.BiographyMaxLength)
	if _, err := svc.Update(context.Background(), "acc-1", Update{Biography: ok}); err != nil {
		t.Errorf("biography of %d runes should be accepted: %v", model.BiographyMaxLength, err)
	}

	tooLong := strings.Repeat("あ", model.BiographyMaxLength+1)
	_, err := svc.Update(context.Background(), "acc-1", Update{Biography: tooLong})
	if !model.HasCode(err, model.ErrCodeBiographyTooLong) {
		t.Errorf("error = %v, want BIOGRAPHY_TOO_LONG", err)
	}
}

func TestService_Update_BiographyLimitAfterSanitizing(t *testing.T) {
	svc := NewService(existingProfileRepo(), security.NewTextSanitizer())

	bio := "<p>" + strings.Repeat("a", model.BiographyMaxLength) + "</p>"
	if _, err := svc.Update(context.Background(), "acc-1", Update{Biography: bio}); err != nil {
		t.Errorf("markup should not count toward the limit: %v", err)
	}
}

func TestService_Update_AvatarTooLong(t *testing.T) {
	repo := existingProfileRepo()
	repo.updateFn = func(ctx context.Context, p *model.Profile) error {
		t.Error("Update must not be called for invalid input")
		return nil
	}
	svc := NewService(repo, passthroughSanitizer{})

	_, err := svc.Update(context.Background(), "acc-1", Update{Avatar: strings.Repeat("x", model.AvatarMaxLength+1)})
	if !model.HasCode(err, model.ErrCodeAvatarTooLong) {
		t.Errorf("error = %v, want AVATAR_TOO_LONG", err)
	}
}

func TestService_Update_MissingProfile(t *testing.T) {
	svc := NewService(&mockProfileRepo{}, passthroughSanitizer{})

	_, err := svc.Update(context.Background(), "acc-1", Update{Biography: "hi"})
	if !model.HasCode(err, model.ErrCodeProfileNotFound) {
		t.Errorf("error = %v, want PROFILE_NOT_FOUND", err)
	}
}

// TestService_Update_ResaveKeepsBiography は保存済みの自己紹介をそのまま再保存しても変化しないことを検証する。
func TestService_Update_ResaveKeepsBiography(t *testing.T) {
	svc := NewService(existingProfileRepo(), security.NewTextSanitizer())

	first, err := svc.Update(context.Background(), "acc-1", Update{
		Biography: "&lt;script&gt;alert(1)&lt;/script&gt; hi &amp; bye",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if strings.Contains(first.Biography, "<") {
		t.Fatalf("markup stored: %q", first.Biography)
	}

	second, err := svc.Update(context.Background(), "acc-1", Update{Biography: first.Biography})
	if err != nil {
		t.Fatalf("second Update returned error: %v", err)
	}
	if second.Biography != first.Biography {
		t.Errorf("re-saving changed biography: %q then %q", first.Biography, second.Biography)
	}
}
