package service

import (
	"errors"
	"testing"

	"github.com/mindfulminutes/internal/db"
)

func TestProfileUpdateSettings(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewProfileService(db.DB)

	updated, err := svc.UpdateSettings(user.ID, ProfileInput{Name: "晨间冥想者", Timezone: "Asia/Shanghai"})
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}

	if updated.Name != "晨间冥想者" {
		t.Fatalf("unexpected name %q", updated.Name)
	}
	if updated.Timezone != "Asia/Shanghai" {
		t.Fatalf("unexpected timezone %q", updated.Timezone)
	}
}

func TestProfileUpdateSettingsRejectsBadTimezone(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewProfileService(db.DB)

	if _, err := svc.UpdateSettings(user.ID, ProfileInput{Timezone: "Mars/Olympus"}); !errors.Is(err, ErrTimezoneInvalid) {
		t.Fatalf("expected ErrTimezoneInvalid, got %v", err)
	}
}

func TestProfileSetAvatarURL(t *testing.T) {
	user, cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewProfileService(db.DB)

	updated, err := svc.SetAvatarURL(user.ID, "/static/uploads/avatar.png")
	if err != nil {
		t.Fatalf("SetAvatarURL returned error: %v", err)
	}
	if updated.AvatarURL != "/static/uploads/avatar.png" {
		t.Fatalf("unexpected avatar url %q", updated.AvatarURL)
	}
}

func TestProfileGetUnknownUser(t *testing.T) {
	_, cleanup := setupSessionTestDB(t)
	defer cleanup()

	svc := NewProfileService(db.DB)

	if _, err := svc.Get(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
