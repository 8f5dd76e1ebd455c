package handler

import (
	"github.com/mindfulminutes/internal/config"
	"github.com/mindfulminutes/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	sessions     *service.SessionService
	stats        *service.StatsService
	moods        *service.MoodService
	affirmations *service.AffirmationService
	billing      *service.BillingService
	profiles     *service.ProfileService
	uploadDir    string
	uploadURL    string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, cfg config.AppConfig) *API {
	return &API{
		db:           db,
		sessions:     service.NewSessionService(db),
		stats:        service.NewStatsService(db),
		moods:        service.NewMoodService(db),
		affirmations: service.NewAffirmationService(db, cfg.OpenAIAPIKey),
		billing:      service.NewBillingService(cfg.StripeSecretKey, cfg.StripePriceID, cfg.SiteBaseURL),
		profiles:     service.NewProfileService(db),
		uploadDir:    cfg.UploadDir,
		uploadURL:    cfg.UploadURLPath,
	}
}

// Affirmations 暴露肯定语服务，便于测试替换上游客户端
func (a *API) Affirmations() *service.AffirmationService {
	return a.affirmations
}

// Billing 暴露计费服务，便于测试替换上游客户端
func (a *API) Billing() *service.BillingService {
	return a.billing
}
