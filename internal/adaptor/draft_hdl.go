package adaptor

import (
	"net/http"

	"cinebook/internal/dto/request"
	"cinebook/internal/usecase"
	"cinebook/pkg/utils"

	"go.uber.org/zap"
)

type DraftHandler struct {
	service usecase.DraftService
	log     *zap.Logger
}

func NewDraftHandler(service usecase.DraftService, log *zap.Logger) *DraftHandler {
	return &DraftHandler{
		service: service,
		log:     log.With(zap.String("handler", "draft")),
	}
}

// GetDraft handles GET /api/booking-draft
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	draft, err := h.service.GetDraft(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get draft")
		return
	}

	utils.ResponseSuccess(w, "Draft retrieved successfully", draft)
}

// ApplyAction handles POST /api/booking-draft/actions
func (h *DraftHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.DraftActionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "apply draft action")
		return
	}

	draft, err := h.service.ApplyAction(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "apply draft action")
		return
	}

	utils.ResponseSuccess(w, "Draft updated successfully", draft)
}

// Checkout handles POST /api/booking-draft/checkout
func (h *DraftHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.Checkout(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "checkout draft")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}
