// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, tenant domain validation, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Tenant isolation enforced at the transport edge (widget domain gate)
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/smart-qa/go-widget-backend/docs" // swagger docs registration
	"github.com/smart-qa/go-widget-backend/internal/config"
	"github.com/smart-qa/go-widget-backend/internal/domain"
	"github.com/smart-qa/go-widget-backend/internal/http/handlers"
	"github.com/smart-qa/go-widget-backend/internal/http/middleware"
	"github.com/smart-qa/go-widget-backend/internal/repo"
	"github.com/smart-qa/go-widget-backend/internal/services"
)

// tenantStoreShim adapts the repository free functions to the
// services.TenantStore interface expected by the ChatService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type tenantStoreShim struct{}

// GetTenant proxies repo.GetTenant.
func (tenantStoreShim) GetTenant(ctx context.Context, db *gorm.DB, tenantID string) (*domain.Tenant, error) {
	return repo.GetTenant(ctx, db, tenantID)
}

// ListCategories proxies repo.ListCategories.
func (tenantStoreShim) ListCategories(ctx context.Context, db *gorm.DB, tenantID string) ([]domain.Category, error) {
	return repo.ListCategories(ctx, db, tenantID)
}

// ListKnowledge proxies repo.ListKnowledge.
func (tenantStoreShim) ListKnowledge(ctx context.Context, db *gorm.DB, tenantID string) ([]domain.KnowledgeEntry, error) {
	return repo.ListKnowledge(ctx, db, tenantID)
}

// ListKnowledgeByCategory proxies repo.ListKnowledgeByCategory.
func (tenantStoreShim) ListKnowledgeByCategory(ctx context.Context, db *gorm.DB, tenantID, categoryID string) ([]domain.KnowledgeEntry, error) {
	return repo.ListKnowledgeByCategory(ctx, db, tenantID, categoryID)
}

// CreateChatLog proxies repo.CreateChatLog.
func (tenantStoreShim) CreateChatLog(ctx context.Context, db *gorm.DB, tenantID, userQuery, aiResponse string, detectedCategoryIDs []string) (*domain.ChatLog, error) {
	return repo.CreateChatLog(ctx, db, tenantID, userQuery, aiResponse, detectedCategoryIDs)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, the widget domain gate, health and metrics endpoints,
// and then mounts the public API and widget routes.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per tenant/IP)
//  9. CORS and Security headers
//  10. Widget domain gate (validates Referer/Origin for the widget page)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, model services.TextGenerator, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress responses (the widget page and loader benefit most)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per tenant/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByTenantOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured; the widget
	// is embedded on arbitrary customer sites, so this is the common case)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS). The
	// widget page must stay embeddable in customer iframes.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:       cfg.Security.EnableHSTS,
		HSTSMaxAge:       cfg.Security.HSTSMaxAge,
		NoStore:          false,
		EnablePolicy:     true,
		FrameExemptPaths: []string{cfg.WidgetPath},
	}))

	// 10) Widget domain gate: the embeddable page is only served to sites on
	// the tenant's allowlist
	r.Use(middleware.WidgetGate(
		middleware.WidgetGateOptions{
			WidgetPath:     cfg.WidgetPath,
			SkipValidation: cfg.DevMode,
		},
		func(ctx context.Context, tenantID string) (*domain.Tenant, error) {
			return repo.GetTenant(ctx, db, tenantID)
		},
	))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (off by default; enabled via SWAGGER_ENABLED)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/model
	chatSvc := &services.ChatService{
		DB:      db,
		Store:   tenantStoreShim{},
		Model:   model,
		DevMode: cfg.DevMode,
	}

	tenantLookup := func(ctx context.Context, tenantID string) (*domain.Tenant, error) {
		return repo.GetTenant(ctx, db, tenantID)
	}
	h := handlers.New(chatSvc, handlers.WidgetDeps(tenantLookup, cfg.DevMode))

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api"
	api := groupWithPrefix(r, apiBase)
	{
		api.POST("/chat", h.PostChat)
	}

	// Embeddable widget surface
	r.GET(cfg.WidgetPath, h.GetWidget)
	r.GET("/widget.js", h.GetWidgetLoader)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
