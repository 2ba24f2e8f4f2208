// Chat HTTP handlers.
//
// This file exposes the chat endpoint consumed by the embedded widget:
//   - POST /api/chat   (classify, retrieve, generate, log — one chat turn)
//
// Handlers are transport-thin:
//   - decode & validate the JSON payload
//   - delegate to the application service (ChatService)
//   - translate service errors into HTTP responses
//
// Validation errors name the missing field so widget developers can tell a
// broken embed (no tenant id) from an empty input box (no message).
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-qa/go-widget-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ChatService defines the chat-turn operation consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Answer runs one chat turn for the tenant and returns the payload.
	Answer(ctx context.Context, tenantID, message string) (*services.ChatResult, error)
}

//
// DTOs
//

// ChatRequest is the JSON payload for one chat turn.
//
// History is accepted for forward compatibility with multi-turn context and
// currently ignored by the pipeline.
type ChatRequest struct {
	// TenantID identifies the tenant whose knowledge base answers the question.
	TenantID string `json:"tenant_id" example:"t1"`
	// Message is the end-user question. It must be non-empty.
	Message string `json:"message" example:"Where is my package?"`
	// History is an opaque prior-turn payload, reserved for future use.
	History json.RawMessage `json:"history,omitempty" swaggerignore:"true"`
}

// ChatResponse is the JSON envelope for a completed chat turn.
type ChatResponse struct {
	// Response is the generated answer.
	Response string `json:"response" example:"Shipping takes 3-5 business days."`
	// DetectedCategoryIDs carries zero or one detected category id.
	DetectedCategoryIDs []string `json:"detected_category_ids" example:"cat1"`
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the widget backend. It depends on
// abstract service contracts to keep transport concerns separate from
// business logic.
type Handlers struct {
	chatSvc ChatService
	widget  widgetDeps
}

// New constructs a Handlers instance bound to the given services.
func New(chatSvc ChatService, widget widgetDeps) *Handlers {
	return &Handlers{chatSvc: chatSvc, widget: widget}
}

// PostChat godoc
// @ID          postChat
// @Summary     Answer a support question
// @Description Classifies the question into a tenant category, retrieves the
// @Description tenant's matching knowledge, and returns a grounded answer.
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ChatRequest  true  "Chat turn payload"
//
// @Success     200  {object}  handlers.ChatResponse  "Generated answer"
// @Failure     400  {object}  handlers.ErrorResponse "tenant_id or message missing"
// @Failure     500  {object}  handlers.ErrorResponse "Answer generation failed"
// @Router      /chat [post]
func (h *Handlers) PostChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	res, err := h.chatSvc.Answer(ctx, req.TenantID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingTenantID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing tenant_id")
		case errors.Is(err, services.ErrMissingMessage):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "missing message")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeAnswerFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, ChatResponse{
		Response:            res.Response,
		DetectedCategoryIDs: res.DetectedCategoryIDs,
	})
}
