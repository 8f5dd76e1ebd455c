package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/config"
	"github.com/mindfulminutes/internal/handler"
)

func newTestRouter(t *testing.T, cfg config.AppConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-secret"
	}
	return SetupRouter(handler.NewAPI(nil, cfg), cfg)
}

func TestSetupRouterPing(t *testing.T) {
	r := newTestRouter(t, config.AppConfig{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "pong") {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestSetupRouterRedirectsAnonymousPages(t *testing.T) {
	r := newTestRouter(t, config.AppConfig{})

	for _, path := range []string{"/dashboard", "/stats", "/settings"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusFound {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusFound, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/auth/signin" {
			t.Fatalf("%s: unexpected redirect location %q", path, loc)
		}
	}
}

func TestSetupRouterRejectsAnonymousAPI(t *testing.T) {
	r := newTestRouter(t, config.AppConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "error") {
		t.Fatalf("expected JSON error body, got %q", rr.Body.String())
	}
}

func TestSetupRouterServesUploadsAlias(t *testing.T) {
	uploadDir := t.TempDir()
	fileName := "avatar.png"
	fileContent := []byte("fake image bytes")
	if err := os.WriteFile(filepath.Join(uploadDir, fileName), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r := newTestRouter(t, config.AppConfig{
		UploadDir:     uploadDir,
		UploadURLPath: "/uploads",
	})

	req := httptest.NewRequest(http.MethodGet, "/uploads/"+fileName, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != string(fileContent) {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}
