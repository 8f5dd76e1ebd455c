package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mindfulminutes/internal/config"
)

type fakeHTTPClient struct {
	handler func(*http.Request) (*http.Response, error)
}

func (f fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if f.handler == nil {
		return nil, errors.New("no handler configured")
	}
	return f.handler(req)
}

func TestCreateCheckoutReturnsURL(t *testing.T) {
	api, user, cleanup := setupTestDB(t)
	defer cleanup()

	api.Billing().SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"id":"cs_1","url":"https://checkout.stripe.test/pay/cs_1"}`)),
		}, nil
	}})

	r := newTestEngine(user.ID, func(r *gin.Engine) {
		r.POST("/api/billing/checkout", api.CreateCheckout)
	})

	w := postJSON(t, r, "/api/billing/checkout", map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.URL != "https://checkout.stripe.test/pay/cs_1" {
		t.Fatalf("unexpected checkout url %q", response.URL)
	}
}

func TestCreateCheckoutUnavailableWithoutCredentials(t *testing.T) {
	_, user, cleanup := setupTestDB(t)
	defer cleanup()

	// 未配置 Stripe 凭据的实例只返回泛化错误
	bare := NewAPI(nil, config.AppConfig{SiteBaseURL: "https://mindful.test"})

	r := newTestEngine(user.ID, func(r *gin.Engine) {
		r.POST("/api/billing/checkout", bare.CreateCheckout)
	})

	w := postJSON(t, r, "/api/billing/checkout", map[string]any{})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}
