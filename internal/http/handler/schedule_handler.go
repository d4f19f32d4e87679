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

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	logger          *zap.Logger
}

func NewScheduleHandler(scheduleService *service.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// List godoc
// @Summary List weekly schedule
// @Description Get the rep's planned cities per week, newest week first
// @Tags Schedule
// @Accept json
// @Produce json
// @Success 200 {array} domain.WeeklyScheduleDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /schedule [get]
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scheduleService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list schedule", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list schedule",
		})
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// Upsert godoc
// @Summary Set planned cities for a week
// @Description Set the planned cities for the week containing weekStart (normalized to that week's Sunday), replacing any existing entry for that week
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body domain.UpsertScheduleRequest true "Schedule entry"
// @Success 200 {object} domain.WeeklyScheduleDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /schedule [put]
// @Router /schedule [post]
func (h *ScheduleHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertScheduleRequest
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

	entry, err := h.scheduleService.Upsert(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
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
		h.logger.Error("failed to save schedule entry", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to save schedule entry",
		})
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete schedule entry
// @Description Remove the planned cities for a week
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule entry ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid schedule entry ID format",
		})
		return
	}

	if err := h.scheduleService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Schedule entry not found",
			})
			return
		}
		h.logger.Error("failed to delete schedule entry", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete schedule entry",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
