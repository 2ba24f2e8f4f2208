package web

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderWidgetPage_Themed(t *testing.T) {
	var buf bytes.Buffer
	err := RenderWidgetPage(&buf, WidgetPageData{
		TenantID:   "t1",
		TenantName: "Acme Corp",
		ThemeColor: "#ff0066",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Acme Corp") {
		t.Fatalf("tenant name missing:\n%s", out)
	}
	if !strings.Contains(out, "#ff0066") {
		t.Fatalf("theme color missing")
	}
	if !strings.Contains(out, `"t1"`) {
		t.Fatalf("tenant id must reach the page script")
	}
	if !strings.Contains(out, "smart-qa:resize") {
		t.Fatalf("resize messaging missing")
	}
}

func TestRenderWidgetPage_DefaultsWhenNameEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderWidgetPage(&buf, WidgetPageData{TenantID: "t1", ThemeColor: "#2563eb"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Support") {
		t.Fatalf("expected Support fallback in page")
	}
}

func TestRenderWidgetPage_EscapesHostileTenantName(t *testing.T) {
	var buf bytes.Buffer
	err := RenderWidgetPage(&buf, WidgetPageData{
		TenantID:   "t1",
		TenantName: `<script>alert("x")</script>`,
		ThemeColor: "#2563eb",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), `<script>alert`) {
		t.Fatalf("tenant name must be HTML-escaped")
	}
}

func TestLoaderScript_EmbeddedAndStable(t *testing.T) {
	s := string(LoaderScript())
	if s == "" {
		t.Fatalf("loader script is empty")
	}
	for _, want := range []string{"data-tenant-id", "smart-qa-widget-iframe", "smart-qa:resize", "/widget?tenant_id="} {
		if !strings.Contains(s, want) {
			t.Errorf("loader missing %q", want)
		}
	}
}
