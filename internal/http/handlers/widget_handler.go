// Widget HTTP handlers.
//
// This file serves the embeddable widget surface:
//   - GET /widget      (the iframe page; the domain gate runs before this)
//   - GET /widget.js   (the loader script embedding sites include)
//
// The loader has no trust role: all enforcement happens in the widget gate
// middleware before GetWidget runs. The page is themed with the tenant's
// configured color when the tenant can be resolved, and falls back to a
// default otherwise (dev mode runs without a store).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-qa/go-widget-backend/internal/domain"
	"github.com/smart-qa/go-widget-backend/internal/web"
)

// defaultThemeColor is used when a tenant has no theme configured.
const defaultThemeColor = "#2563eb"

// widgetDeps carries what the widget page needs beyond the chat pipeline.
type widgetDeps struct {
	lookup  func(ctx context.Context, tenantID string) (*domain.Tenant, error)
	devMode bool
}

// WidgetDeps builds the widget handler dependencies. lookup may be nil in
// dev mode.
func WidgetDeps(lookup func(ctx context.Context, tenantID string) (*domain.Tenant, error), devMode bool) widgetDeps {
	return widgetDeps{lookup: lookup, devMode: devMode}
}

// GetWidget godoc
// @ID          getWidget
// @Summary     Serve the widget iframe page
// @Description Returns the chat UI page loaded inside the embedding iframe.
// @Description Access is enforced by the tenant domain gate before this
// @Description handler runs.
// @Tags        Widget
// @Produce     html
//
// @Param       tenant_id  query  string  true  "Tenant ID"  example(t1)
//
// @Success     200  {string}  string  "Widget page"
// @Failure     400  {object}  handlers.ErrorResponse "Missing tenant_id"
// @Failure     403  {object}  handlers.ErrorResponse "Embedding not allowed"
// @Router      /widget [get]
func (h *Handlers) GetWidget(c *gin.Context) {
	tenantID := c.Query("tenant_id")

	data := web.WidgetPageData{
		TenantID:   tenantID,
		TenantName: "Support",
		ThemeColor: defaultThemeColor,
	}

	// Theme from the tenant record, best effort. The gate has already
	// authorized the request; a lookup failure here only loses the theme.
	if h.widget.lookup != nil && tenantID != "" {
		if t, err := h.widget.lookup(c.Request.Context(), tenantID); err == nil && t != nil {
			if t.Name != "" {
				data.TenantName = t.Name
			}
			if t.ThemeColor != "" {
				data.ThemeColor = t.ThemeColor
			}
		}
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderWidgetPage(c.Writer, data); err != nil {
		// Headers are already written; nothing sensible left to send.
		_ = c.Error(err)
	}
}

// GetWidgetLoader godoc
// @ID          getWidgetLoader
// @Summary     Serve the embeddable loader script
// @Description Returns the script that embedding sites include to inject the
// @Description widget iframe. The loader itself is public; trust is enforced
// @Description when the iframe requests the widget page.
// @Tags        Widget
// @Produce     plain
//
// @Success     200  {string}  string  "Loader script"
// @Router      /widget.js [get]
func (h *Handlers) GetWidgetLoader(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", web.LoaderScript())
}
