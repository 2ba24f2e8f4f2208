// Package services – ChatService
//
// This file implements the ChatService, the orchestrator of one chat turn:
// validate the request, classify the question into a tenant category,
// retrieve the tenant's matching knowledge, generate a grounded answer, and
// record the interaction. Failure policy differs by step: classification
// degrades silently to "no category", answer generation is fatal to the
// request, and logging is fire-and-forget after the response is computed.
//
// The store and the model are injected as narrow capability interfaces so
// handlers and tests never touch concrete clients. Every store method takes
// the tenant id as its first data parameter: cross-tenant access is ruled
// out at the type level, not by convention.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/smart-qa/go-widget-backend/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DevPlaceholderCategoryID is the fixed category id echoed by dev mode.
const DevPlaceholderCategoryID = "test-category-id"

// TextGenerator is the language-model capability consumed by the pipeline.
// Generate returns free text; GenerateJSON biases the model toward a JSON
// response body. Implementations must be safe for concurrent use.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// TenantStore defines the tenant-partitioned document-store contract
// required by the pipeline. Implementations are responsible for persistence
// of tenant aggregates; every method scopes by tenantID first.
type TenantStore interface {
	// GetTenant fetches a tenant by id.
	GetTenant(ctx context.Context, db *gorm.DB, tenantID string) (*domain.Tenant, error)

	// ListCategories returns the tenant's category taxonomy.
	ListCategories(ctx context.Context, db *gorm.DB, tenantID string) ([]domain.Category, error)

	// ListKnowledge returns the tenant's full knowledge base.
	ListKnowledge(ctx context.Context, db *gorm.DB, tenantID string) ([]domain.KnowledgeEntry, error)

	// ListKnowledgeByCategory returns the entries whose category set
	// contains categoryID.
	ListKnowledgeByCategory(ctx context.Context, db *gorm.DB, tenantID, categoryID string) ([]domain.KnowledgeEntry, error)

	// CreateChatLog appends one chat-turn record.
	CreateChatLog(ctx context.Context, db *gorm.DB, tenantID, userQuery, aiResponse string, detectedCategoryIDs []string) (*domain.ChatLog, error)
}

// ChatResult is the computed outcome of one chat turn.
type ChatResult struct {
	// Response is the generated answer, returned verbatim.
	Response string `json:"response"`
	// DetectedCategoryIDs carries zero or one category id. The plural
	// shape is reserved for future multi-label classification.
	DetectedCategoryIDs []string `json:"detected_category_ids"`
}

// ChatService coordinates the chat pipeline for all tenants.
type ChatService struct {
	// DB is the GORM handle passed through to the store.
	DB *gorm.DB
	// Store is the tenant-partitioned document store.
	Store TenantStore
	// Model is the text-generation capability.
	Model TextGenerator
	// DevMode short-circuits the pipeline with a canned response,
	// touching neither the store nor the model.
	DevMode bool
}

// spawn runs the fire-and-forget logging task. Overridden in tests to run
// synchronously; same device as the seams in internal/observability.
var spawn = func(f func()) { go f() }

// Answer runs one chat turn end to end and returns the response payload.
//
// Validation failures return ErrMissingTenantID / ErrMissingMessage. A
// generation failure is returned as-is and aborts the turn; nothing is
// logged for it. Classification and logging failures never surface here.
func (s *ChatService) Answer(ctx context.Context, tenantID, message string) (*ChatResult, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Answer",
		trace.WithAttributes(attribute.String("tenant.id", tenantID)),
	)
	defer span.End()

	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrMissingTenantID
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrMissingMessage
	}

	// Dev mode keeps embedding sites functional without model cost: echo
	// the message in a templated acknowledgment plus a fixed placeholder
	// category, with zero store or model calls.
	if s.DevMode {
		return &ChatResult{
			Response:            fmt.Sprintf("[dev mode] You asked about %q. The widget is wired up and talking to the backend!", message),
			DetectedCategoryIDs: []string{DevPlaceholderCategoryID},
		}, nil
	}

	// Step 1: intent classification (best effort).
	categoryID := s.classify(ctx, tenantID, message)

	// Step 2: context retrieval, scoped to the detected category when one
	// exists. An empty result is valid: the grounding prompt handles it.
	entries, err := s.retrieve(ctx, tenantID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("retrieve knowledge: %w", err)
	}

	// Step 3: grounded answer generation. No degraded path here.
	reply, err := s.Model.Generate(ctx, BuildGroundingPrompt(message, PairsFromEntries(entries)))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	detected := []string{}
	if categoryID != "" {
		detected = append(detected, categoryID)
	}

	// Step 4: record the turn. The task is spawned after the response
	// value is final and runs on a detached context so it can neither
	// delay nor alter the response.
	s.logInteraction(tenantID, message, reply, detected)

	return &ChatResult{Response: reply, DetectedCategoryIDs: detected}, nil
}

// classify maps the question onto a category id for tenantID, or "" when
// the tenant has no taxonomy or anything along the way fails. Failures are
// logged and absorbed: a missing category only widens retrieval.
func (s *ChatService) classify(ctx context.Context, tenantID, question string) string {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "classify",
		trace.WithAttributes(attribute.String("tenant.id", tenantID)),
	)
	defer span.End()

	categories, err := s.Store.ListCategories(ctx, s.DB, tenantID)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("classification skipped: category load failed")
		return ""
	}
	if len(categories) == 0 {
		return ""
	}

	raw, err := s.Model.GenerateJSON(ctx, BuildClassificationPrompt(question, categories))
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("classification failed")
		return ""
	}

	c := parseClassification(raw)
	if c.kind == classUnparsable {
		log.Warn().Str("tenant_id", tenantID).Str("raw", raw).Msg("classification unparsable")
		return ""
	}
	return c.categoryID
}

// retrieve loads the tenant's knowledge, optionally scoped to categoryID.
func (s *ChatService) retrieve(ctx context.Context, tenantID, categoryID string) ([]domain.KnowledgeEntry, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "retrieve",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("category.id", categoryID),
		),
	)
	defer span.End()

	if categoryID != "" {
		return s.Store.ListKnowledgeByCategory(ctx, s.DB, tenantID, categoryID)
	}
	return s.Store.ListKnowledge(ctx, s.DB, tenantID)
}

// logInteraction appends the chat-turn record asynchronously. The write uses
// a fresh background context: the HTTP request may complete (and its context
// be cancelled) before the insert lands. Failures go to operational logging
// only; the response is already determined.
func (s *ChatService) logInteraction(tenantID, userQuery, aiResponse string, detected []string) {
	spawn(func() {
		ctx := context.Background()
		if _, err := s.Store.CreateChatLog(ctx, s.DB, tenantID, userQuery, aiResponse, detected); err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("chat log write failed")
		}
	})
}
