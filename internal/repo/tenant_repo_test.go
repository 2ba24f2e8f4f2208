package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smart-qa/go-widget-backend/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, name string, domains ...string) *domain.Tenant {
	t.Helper()
	tn := &domain.Tenant{
		ID:             uuid.NewString(),
		Name:           name,
		AllowedDomains: domains,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.Create(tn).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return tn
}

func seedKnowledge(t *testing.T, db *gorm.DB, tenantID, question, answer string, categoryIDs ...string) *domain.KnowledgeEntry {
	t.Helper()
	e := &domain.KnowledgeEntry{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Question:    question,
		Answer:      answer,
		CategoryIDs: categoryIDs,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("seed knowledge: %v", err)
	}
	return e
}

func TestGetTenant_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{})

	_, err := GetTenant(context.Background(), db, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetTenant_Success(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{})
	seeded := seedTenant(t, db, "Acme", "acme.com", "shop.acme.com")

	got, err := GetTenant(context.Background(), db, seeded.ID)
	if err != nil {
		t.Fatalf("GetTenant: %v", err)
	}
	if got.Name != "Acme" {
		t.Fatalf("Name = %q", got.Name)
	}
	if len(got.AllowedDomains) != 2 || !got.AllowedDomains.Contains("shop.acme.com") {
		t.Fatalf("AllowedDomains = %v", got.AllowedDomains)
	}
}

func TestListCategories_ScopedToTenant(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{}, &domain.Category{})
	t1 := seedTenant(t, db, "One")
	t2 := seedTenant(t, db, "Two")

	for i, tn := range []*domain.Tenant{t1, t1, t2} {
		c := &domain.Category{
			ID:       uuid.NewString(),
			TenantID: tn.ID,
			Name:     fmt.Sprintf("cat-%d", i),
		}
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	out, err := ListCategories(context.Background(), db, t1.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 categories for t1, got %d", len(out))
	}
	for _, c := range out {
		if c.TenantID != t1.ID {
			t.Fatalf("leaked category from another tenant: %+v", c)
		}
	}
}

func TestListCategories_EmptyTaxonomy(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{}, &domain.Category{})
	tn := seedTenant(t, db, "Empty")

	out, err := ListCategories(context.Background(), db, tn.ID)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty taxonomy, got %d", len(out))
	}
}

func TestListKnowledge_ScopedToTenant(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{}, &domain.KnowledgeEntry{})
	t1 := seedTenant(t, db, "One")
	t2 := seedTenant(t, db, "Two")

	seedKnowledge(t, db, t1.ID, "q1", "a1")
	seedKnowledge(t, db, t1.ID, "q2", "a2")
	seedKnowledge(t, db, t2.ID, "other", "other")

	out, err := ListKnowledge(context.Background(), db, t1.ID)
	if err != nil {
		t.Fatalf("ListKnowledge: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries for t1, got %d", len(out))
	}
}

func TestListKnowledgeByCategory_ExactMembership(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{}, &domain.KnowledgeEntry{})
	tn := seedTenant(t, db, "Acme")

	in := seedKnowledge(t, db, tn.ID, "billing q", "billing a", "cat1", "cat2")
	seedKnowledge(t, db, tn.ID, "other q", "other a", "cat2")
	// An id that merely contains "cat1" as a substring must not match.
	seedKnowledge(t, db, tn.ID, "lookalike q", "lookalike a", "cat10")

	out, err := ListKnowledgeByCategory(context.Background(), db, tn.ID, "cat1")
	if err != nil {
		t.Fatalf("ListKnowledgeByCategory: %v", err)
	}
	if len(out) != 1 || out[0].ID != in.ID {
		t.Fatalf("expected exactly the cat1 entry, got %+v", out)
	}
}

func TestListKnowledgeByCategory_CrossTenantIsolation(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{}, &domain.KnowledgeEntry{})
	t1 := seedTenant(t, db, "One")
	t2 := seedTenant(t, db, "Two")

	seedKnowledge(t, db, t1.ID, "mine", "a", "shared-cat")
	seedKnowledge(t, db, t2.ID, "theirs", "a", "shared-cat")

	out, err := ListKnowledgeByCategory(context.Background(), db, t1.ID, "shared-cat")
	if err != nil {
		t.Fatalf("ListKnowledgeByCategory: %v", err)
	}
	if len(out) != 1 || out[0].Question != "mine" {
		t.Fatalf("cross-tenant leak: %+v", out)
	}
}

func TestListKnowledgeByCategory_NoMatches(t *testing.T) {
	db := newRepoDB(t, &domain.Tenant{}, &domain.KnowledgeEntry{})
	tn := seedTenant(t, db, "Acme")
	seedKnowledge(t, db, tn.ID, "q", "a", "cat1")

	out, err := ListKnowledgeByCategory(context.Background(), db, tn.ID, "nope")
	if err != nil {
		t.Fatalf("ListKnowledgeByCategory: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no matches, got %+v", out)
	}
}
