package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	infraauth "github.com/crmsuite/backend/internal/infrastructure/auth"
	"github.com/crmsuite/backend/internal/infrastructure/config"
	"github.com/crmsuite/backend/internal/infrastructure/logger"
	"github.com/crmsuite/backend/internal/infrastructure/telemetry"
	"github.com/crmsuite/backend/internal/interfaces/http/handler"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// Registrar registers a handler's routes on a group
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Dependencies bundles everything the router needs to assemble the API
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	JWTService  *infraauth.JWTService
	Blacklist   infraauth.TokenBlacklist
	HTTPMetrics *telemetry.HTTPMetrics

	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Companies     *handler.CompanyHandler
	Contacts      *handler.ContactHandler
	Leads         *handler.LeadHandler
	Deals         *handler.DealHandler
	Products      *handler.ProductHandler
	Quotes        *handler.QuoteHandler
	Orders        *handler.OrderHandler
	Invoices      *handler.InvoiceHandler
	DeliveryNotes *handler.DeliveryNoteHandler
	Notifications *handler.NotificationHandler
	Vault         *handler.VaultHandler
	Scrape        *handler.ScrapeHandler
	Reports       *handler.ReportHandler
	Print         *handler.PrintHandler
}

// New builds the gin engine with the full middleware chain and all API
// routes mounted under /api/v1.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Metrics(deps.HTTPMetrics))
	engine.Use(middleware.CORS(corsConfig(cfg)))
	engine.Use(middleware.SecurityHeaders())
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	api := engine.Group("/api/v1")
	deps.Health.RegisterRoutes(api)
	deps.Auth.RegisterPublicRoutes(api)

	// Everything below requires a valid access token.
	authed := api.Group("")
	authed.Use(middleware.Auth(deps.JWTService, deps.Blacklist))

	deps.Auth.RegisterRoutes(authed)
	deps.Notifications.RegisterRoutes(authed)

	// User and company administration is not company-scoped.
	admin := authed.Group("")
	admin.Use(middleware.RequireRole("admin"))
	deps.Users.RegisterRoutes(admin)
	deps.Companies.RegisterRoutes(admin)

	// Business resources resolve a company scope per request.
	scoped := authed.Group("")
	scoped.Use(middleware.CompanyScope())
	for _, registrar := range []Registrar{
		deps.Contacts,
		deps.Leads,
		deps.Deals,
		deps.Products,
		deps.Quotes,
		deps.Orders,
		deps.Invoices,
		deps.DeliveryNotes,
		deps.Vault,
		deps.Scrape,
		deps.Reports,
		deps.Print,
	} {
		registrar.RegisterRoutes(scoped)
	}

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
