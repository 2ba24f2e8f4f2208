// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read access to tenant-owned data:
// tenants themselves, their category taxonomy, and their knowledge base.
//
// Every query takes the tenant id as its first data parameter and filters on
// it before anything else. Cross-tenant reads are impossible through this
// package: there is no function that returns another tenant's rows.
//
// Error semantics:
//   - When a tenant is not found, GetTenant returns gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/smart-qa/go-widget-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetTenant fetches a single tenant by id. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetTenant(ctx context.Context, db *gorm.DB, tenantID string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := db.WithContext(ctx).
		Where("id = ?", tenantID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListCategories returns all categories owned by tenantID in the store's
// natural order. It returns an empty slice when the tenant has no taxonomy.
func ListCategories(ctx context.Context, db *gorm.DB, tenantID string) ([]domain.Category, error) {
	var out []domain.Category
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&out).Error
	return out, err
}

// ListKnowledge returns the tenant's full knowledge base in the store's
// natural order. An empty result is valid and not an error.
func ListKnowledge(ctx context.Context, db *gorm.DB, tenantID string) ([]domain.KnowledgeEntry, error) {
	var out []domain.KnowledgeEntry
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&out).Error
	return out, err
}

// ListKnowledgeByCategory returns the tenant's knowledge entries whose
// category_ids set contains categoryID.
//
// The category_ids column holds a JSON array, so the SQL filter is a
// substring match over the serialized form; candidates are then confirmed
// with an exact membership check in Go. The LIKE narrows the scan — the Go
// check is the source of truth.
func ListKnowledgeByCategory(ctx context.Context, db *gorm.DB, tenantID, categoryID string) ([]domain.KnowledgeEntry, error) {
	var candidates []domain.KnowledgeEntry
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND category_ids LIKE ?", tenantID, `%"`+categoryID+`"%`).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.KnowledgeEntry, 0, len(candidates))
	for _, e := range candidates {
		if e.CategoryIDs.Contains(categoryID) {
			out = append(out, e)
		}
	}
	return out, nil
}
