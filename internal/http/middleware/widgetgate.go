// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the widget gate: the tenant-isolation boundary that
// decides whether a third-party page may be served the embeddable widget.
// The check runs before any tenant data reaches the browser context of an
// embedding site.
//
// Design notes:
//   - Applies only to the exact widget-serving path; everything else passes
//     through untouched.
//   - Tenant lookup is decoupled via a narrow TenantLookup function type, so
//     the middleware stays independent of the persistence layer.
//   - Matching is exact hostname membership: no wildcard or subdomain
//     inference, no scheme or port comparison. A tenant that wants
//     "sub.example.com" must list it. This is a deliberate policy decision;
//     integrators wanting looser matching must change it here.
//   - 403 responses never reveal the tenant's allowed-domain list.
package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/smart-qa/go-widget-backend/internal/domain"
)

// TenantLookup fetches a tenant by id. Implementations typically consult the
// tenant store; any error is treated as "unknown tenant".
type TenantLookup func(ctx context.Context, tenantID string) (*domain.Tenant, error)

// WidgetGateOptions configures the widget gate.
type WidgetGateOptions struct {
	// WidgetPath is the exact request path the gate binds to
	// (query string ignored for matching), e.g. "/widget".
	WidgetPath string
	// SkipValidation disables the gate entirely (dev mode).
	SkipValidation bool
}

// WidgetGate returns a Gin middleware enforcing the tenant's embedding
// policy on the widget-serving path.
//
// Checks, in order:
//  1. 400 when the tenant_id query parameter is absent.
//  2. 403 when the tenant cannot be found.
//  3. 403 when neither Referer nor Origin header is present.
//  4. 403 when the header's hostname is not exactly present in the
//     tenant's allowed_domains.
//
// A passing request proceeds unmodified; the gate performs no mutation
// beyond the pass/block decision.
func WidgetGate(opt WidgetGateOptions, lookup TenantLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path != opt.WidgetPath {
			c.Next()
			return
		}
		if opt.SkipValidation {
			c.Next()
			return
		}

		tenantID := c.Query("tenant_id")
		if tenantID == "" {
			gateFail(c, http.StatusBadRequest, "bad_request", "missing tenant_id")
			return
		}

		tenant, err := lookup(c.Request.Context(), tenantID)
		if err != nil || tenant == nil {
			gateFail(c, http.StatusForbidden, "forbidden", "invalid tenant")
			return
		}

		referer := c.GetHeader("Referer")
		if referer == "" {
			referer = c.GetHeader("Origin")
		}
		if referer == "" {
			gateFail(c, http.StatusForbidden, "forbidden", "missing referer/origin")
			return
		}

		u, err := url.Parse(referer)
		if err != nil || !tenant.AllowedDomains.Contains(u.Hostname()) {
			gateFail(c, http.StatusForbidden, "forbidden", "domain not allowed")
			return
		}

		c.Next()
	}
}

// gateFail aborts with the standard error envelope. The middleware package
// cannot depend on handlers, so the envelope is built inline.
func gateFail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       code,
		"message":    msg,
	})
}
