package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/reproute/crm-api/internal/service"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService *service.FileService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, maxUploadMB int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// Upload godoc
// @Summary Upload visit attachment
// @Description Upload a photo or document to reference from a visit's attachments
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.FileUploadResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/upload [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	resp, err := h.fileService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h.logger.Error("failed to upload file", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Download godoc
// @Summary Download visit attachment
// @Description Stream an attachment previously uploaded by the authenticated rep
// @Tags Files
// @Produce application/octet-stream
// @Param path query string true "Attachment storage path"
// @Success 200
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /files/download [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	storagePath := r.URL.Query().Get("path")
	if storagePath == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'path' is required")
		return
	}

	reader, err := h.fileService.Download(r.Context(), storagePath)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h.logger.Error("failed to download file", zap.Error(err), zap.String("path", storagePath))
		respondWithError(w, http.StatusNotFound, "File not found")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Disposition", "attachment; filename=\""+path.Base(storagePath)+"\"")
	w.Header().Set("Content-Type", "application/octet-stream")

	_, _ = io.Copy(w, reader)
}
