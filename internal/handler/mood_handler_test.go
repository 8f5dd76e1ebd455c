package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/db"
)

func TestCreateMood(t *testing.T) {
	api, user, cleanup := setupTestDB(t)
	defer cleanup()

	r := newTestEngine(user.ID, func(r *gin.Engine) {
		r.POST("/api/mood", api.CreateMood)
	})

	w := postJSON(t, r, "/api/mood", map[string]any{"mood": 4, "energy": 3, "notes": "平静"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.DB.Model(&db.MoodEntry{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 mood entry, got %d", count)
	}
}

func TestCreateMoodRejectsOutOfRange(t *testing.T) {
	api, user, cleanup := setupTestDB(t)
	defer cleanup()

	r := newTestEngine(user.ID, func(r *gin.Engine) {
		r.POST("/api/mood", api.CreateMood)
	})

	w := postJSON(t, r, "/api/mood", map[string]any{"mood": 9, "energy": 3})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
