package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/db"
)

func TestGetStats(t *testing.T) {
	api, user, cleanup := setupTestDB(t)
	defer cleanup()

	session := db.MeditationSession{
		UserID:      user.ID,
		Type:        "timer",
		Duration:    600,
		CompletedAt: time.Now(),
	}
	if err := db.DB.Create(&session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	r := newTestEngine(user.ID, func(r *gin.Engine) {
		r.GET("/api/stats", api.GetStats)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Streaks struct {
			CurrentStreak int `json:"current_streak"`
		} `json:"streaks"`
		SessionCalendar []struct {
			Date      string `json:"date"`
			Completed bool   `json:"completed"`
		} `json:"session_calendar"`
		SessionsByType map[string]int `json:"sessions_by_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.SessionCalendar) != 30 {
		t.Fatalf("expected 30 calendar entries, got %d", len(response.SessionCalendar))
	}
	if !response.SessionCalendar[29].Completed {
		t.Fatal("expected today to be marked completed")
	}
	if response.SessionsByType["timer"] != 1 {
		t.Fatalf("unexpected type breakdown: %v", response.SessionsByType)
	}
}

func TestGetStatsRequiresAuth(t *testing.T) {
	api, _, cleanup := setupTestDB(t)
	defer cleanup()

	r := newTestEngine(0, func(r *gin.Engine) {
		group := r.Group("/api")
		group.Use(APIAuthRequired())
		group.GET("/stats", api.GetStats)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
