package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PremiumPlanName 订阅计划展示名
const PremiumPlanName = "MindfulMinutes Premium"

// PremiumPlanPrice 订阅计划展示价格
const PremiumPlanPrice = "$7.99/month"

// PremiumPlanFeatures 订阅页展示的权益列表
var PremiumPlanFeatures = []string{
	"Unlimited meditation sessions",
	"All breathing exercises",
	"Mood tracking & insights",
	"Daily AI affirmations",
	"Session history & analytics",
	"Ambient sound library",
	"Streak tracking & achievements",
}

// ErrBillingUnavailable 在未配置支付凭据或上游失败时返回，
// 对外只暴露这个泛化错误，不泄露上游细节
var ErrBillingUnavailable = errors.New("billing unavailable")

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Err struct {
		Message string `json:"message"`
	} `json:"error"`
}

// BillingService 负责创建 Stripe Checkout 会话，仅做代理不保存订阅状态
type BillingService struct {
	http      httpDoer
	baseURL   string
	secretKey string
	priceID   string
	siteURL   string
}

// NewBillingService 构造 BillingService
func NewBillingService(secretKey, priceID, siteBaseURL string) *BillingService {
	return &BillingService{
		http:      &http.Client{Timeout: 20 * time.Second},
		baseURL:   "https://api.stripe.com/v1",
		secretKey: strings.TrimSpace(secretKey),
		priceID:   strings.TrimSpace(priceID),
		siteURL:   strings.TrimRight(strings.TrimSpace(siteBaseURL), "/"),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *BillingService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 20 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL 覆盖默认的 Stripe API 地址。
func (s *BillingService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// CreateCheckout 为指定用户创建订阅结账会话并返回跳转地址
func (s *BillingService) CreateCheckout(ctx context.Context, userID uint) (string, error) {
	if s.secretKey == "" || s.priceID == "" {
		return "", ErrBillingUnavailable
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", s.priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("client_reference_id", fmt.Sprintf("user-%d-%s", userID, uuid.New().String()))
	form.Set("success_url", s.siteURL+"/subscription?status=success")
	form.Set("cancel_url", s.siteURL+"/subscription?status=cancelled")

	endpoint := fmt.Sprintf("%s/checkout/sessions", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.secretKey, "")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBillingUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrBillingUnavailable, err)
	}

	var parsed checkoutSessionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrBillingUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK || strings.TrimSpace(parsed.URL) == "" {
		if message := strings.TrimSpace(parsed.Err.Message); message != "" {
			return "", fmt.Errorf("%w: %s", ErrBillingUnavailable, message)
		}
		return "", ErrBillingUnavailable
	}

	return parsed.URL, nil
}
