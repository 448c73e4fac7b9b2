package user

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	profiles []Profile
}

func (f *fakeRepo) UpsertProfile(ctx context.Context, profile *Profile) error {
	f.profiles = append(f.profiles, *profile)
	return nil
}

func (f *fakeRepo) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	for i := len(f.profiles) - 1; i >= 0; i-- {
		if f.profiles[i].UserID == userID {
			profile := f.profiles[i]
			return &profile, nil
		}
	}
	return nil, ErrProfileNotFound
}

func TestUpsertProfileRejectsInvalidUserID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	for _, id := range []string{"", "user-1", "00000000-0000"} {
		if err := svc.UpsertProfile(context.Background(), id, "a@b.c", ""); !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("%q: expected ErrInvalidUserID, got %v", id, err)
		}
	}
	if len(repo.profiles) != 0 {
		t.Fatalf("expected no writes, got %d", len(repo.profiles))
	}
}

func TestUpsertProfileOmitsEmptyFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	if err := svc.UpsertProfile(context.Background(), "00000000-0000-4000-8000-000000000001", " me@example.com ", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("expected one write, got %d", len(repo.profiles))
	}
	profile := repo.profiles[0]
	if profile.Email == nil || *profile.Email != "me@example.com" {
		t.Fatalf("expected trimmed email, got %v", profile.Email)
	}
	if profile.AvatarURL != nil {
		t.Fatalf("expected avatar left unset, got %v", *profile.AvatarURL)
	}
}

func TestProfileLookup(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	id := "00000000-0000-4000-8000-000000000002"

	if _, err := svc.Profile(context.Background(), id); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.Profile(context.Background(), "nope"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for malformed id, got %v", err)
	}

	if err := svc.UpsertProfile(context.Background(), id, "me@example.com", ""); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	profile, err := svc.Profile(context.Background(), id)
	if err != nil {
		t.Fatalf("expected profile, got %v", err)
	}
	if profile.Email == nil || *profile.Email != "me@example.com" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}
