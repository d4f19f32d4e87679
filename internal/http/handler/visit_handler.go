package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/reproute/crm-api/internal/service"
	"go.uber.org/zap"
)

type VisitHandler struct {
	visitService *service.VisitService
	logger       *zap.Logger
}

func NewVisitHandler(visitService *service.VisitService, logger *zap.Logger) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
		logger:       logger,
	}
}

// Create godoc
// @Summary Record a visit
// @Description Record a visit to one of the rep's clients. Visits are immutable once recorded; correct mistakes by deleting and re-creating.
// @Tags Visits
// @Accept json
// @Produce json
// @Param request body domain.CreateVisitRequest true "Visit data"
// @Success 201 {object} domain.VisitDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Client not found"
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /visits [post]
func (h *VisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	visit, err := h.visitService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
			})
			return
		}
		if errors.Is(err, service.ErrClientNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Client not found",
			})
			return
		}
		if errors.Is(err, service.ErrUnauthorized) {
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
			})
			return
		}
		h.logger.Error("failed to create visit", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create visit",
		})
		return
	}

	respondJSON(w, http.StatusCreated, visit)
}

// List godoc
// @Summary List visits for a client
// @Description List the visits recorded for one of the rep's clients, newest first
// @Tags Visits
// @Accept json
// @Produce json
// @Param client_id query string true "Client ID" format(uuid)
// @Success 200 {array} domain.VisitDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /visits [get]
func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.URL.Query().Get("client_id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Query parameter 'client_id' must be a valid UUID",
		})
		return
	}

	visits, err := h.visitService.ListByClient(r.Context(), clientID)
	if err != nil {
		h.logger.Error("failed to list visits", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list visits",
		})
		return
	}

	respondJSON(w, http.StatusOK, visits)
}

// Delete godoc
// @Summary Delete visit
// @Description Delete a recorded visit
// @Tags Visits
// @Accept json
// @Produce json
// @Param id path string true "Visit ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /visits/{id} [delete]
func (h *VisitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid visit ID format",
		})
		return
	}

	if err := h.visitService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrVisitNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Visit not found",
			})
			return
		}
		h.logger.Error("failed to delete visit", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete visit",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
