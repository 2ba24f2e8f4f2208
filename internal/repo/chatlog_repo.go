// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the append-only chat-log repository.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smart-qa/go-widget-backend/internal/domain"
)

// CreateChatLog appends one chat-turn record with a server-assigned UTC
// timestamp. Logs are never deduplicated: identical turns produce distinct
// rows. detectedCategoryIDs may be empty but is persisted as [] rather than
// null so readers always see an array.
func CreateChatLog(ctx context.Context, db *gorm.DB, tenantID, userQuery, aiResponse string, detectedCategoryIDs []string) (*domain.ChatLog, error) {
	if detectedCategoryIDs == nil {
		detectedCategoryIDs = []string{}
	}
	l := &domain.ChatLog{
		ID:                  uuid.NewString(),
		TenantID:            tenantID,
		UserQuery:           userQuery,
		AIResponse:          aiResponse,
		DetectedCategoryIDs: detectedCategoryIDs,
		CreatedAt:           time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// CountChatLogs returns the number of log rows recorded for tenantID.
// Uses a raw COUNT so a missing table surfaces as an error.
func CountChatLogs(ctx context.Context, db *gorm.DB, tenantID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM chat_logs WHERE tenant_id = ?", tenantID).
		Scan(&total).Error
	return total, err
}
