// Package domain defines the persistence models for tenants, categories,
// knowledge entries, and chat logs. These types are mapped with GORM and form
// the core data layer of the widget backend.
package domain

import (
	"time"
)

// StringList is a []string column persisted as JSON text. It backs
// set-valued fields such as a tenant's allowed embedding domains and a
// knowledge entry's category memberships.
type StringList []string

// Contains reports whether v is an exact member of the list.
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

// Tenant represents an isolated customer account. Each tenant owns its own
// categories, knowledge base, and the list of hostnames allowed to embed the
// widget. Tenants are created by provisioning and are read-only to the chat
// pipeline.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name of the customer.
//   - AllowedDomains: exact hostnames permitted to embed the widget.
//   - ThemeColor: CSS color used by the widget page.
//   - IsDeveloper: marks internal/testing tenants.
//   - CreatedAt: timestamp managed by GORM.
type Tenant struct {
	ID             string     `json:"id"              gorm:"type:char(36);primaryKey"`
	Name           string     `json:"name"            gorm:"type:varchar(255);not null"`
	AllowedDomains StringList `json:"allowed_domains" gorm:"type:text;serializer:json"`
	ThemeColor     string     `json:"theme_color"     gorm:"type:varchar(32)"`
	IsDeveloper    bool       `json:"is_developer"    gorm:"not null;default:false"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName returns the database table name for Tenant.
func (Tenant) TableName() string { return "tenants" }

// Category is a support topic owned by a tenant. The classifier maps user
// questions onto category IDs to scope knowledge retrieval.
type Category struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	TenantID    string    `json:"tenant_id"   gorm:"type:char(36);not null;index:idx_tenant_categories"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	// Tenant is the owning account. Categories are cascade-deleted
	// if their tenant is removed.
	Tenant Tenant `json:"-" gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// KnowledgeEntry is one curated Q&A pair in a tenant's knowledge base. An
// entry may belong to zero or more categories; the pipeline only ever reads
// entries, never mutates them.
type KnowledgeEntry struct {
	ID          string     `json:"id"           gorm:"type:char(36);primaryKey"`
	TenantID    string     `json:"tenant_id"    gorm:"type:char(36);not null;index:idx_tenant_knowledge"`
	Question    string     `json:"question"     gorm:"type:text;not null"`
	Answer      string     `json:"answer"       gorm:"type:text;not null"`
	CategoryIDs StringList `json:"category_ids" gorm:"type:text;serializer:json"`
	CreatedAt   time.Time  `json:"created_at"`

	// Tenant is the owning account. Knowledge entries are cascade-deleted
	// if their tenant is removed.
	Tenant Tenant `json:"-" gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for KnowledgeEntry.
func (KnowledgeEntry) TableName() string { return "knowledge_base" }

// ChatLog is one completed chat turn, recorded for audit and analytics.
// Logs live in a flat table, each row carrying its own tenant id; they are
// append-only and never read back by the pipeline.
type ChatLog struct {
	ID                  string     `json:"id"                    gorm:"type:char(36);primaryKey"`
	TenantID            string     `json:"tenant_id"             gorm:"type:char(36);not null;index:idx_tenant_logs,priority:1"`
	UserQuery           string     `json:"user_query"            gorm:"type:text;not null"`
	AIResponse          string     `json:"ai_response"           gorm:"type:text;not null"`
	DetectedCategoryIDs StringList `json:"detected_category_ids" gorm:"type:text;serializer:json"`
	CreatedAt           time.Time  `json:"created_at"            gorm:"index:idx_tenant_logs,priority:2"`
}

// TableName returns the database table name for ChatLog.
func (ChatLog) TableName() string { return "chat_logs" }
