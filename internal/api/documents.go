package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"gcn-backend/internal/database"
)

// maxPdfUploadBytes caps buffered uploads. The file is read fully so the
// forwarded request can be re-sent on retry.
const maxPdfUploadBytes = 50 << 20

func (s *BackendService) UploadPdf(r *http.Request) (any, error) {
	if err := r.ParseMultipartForm(maxPdfUploadBytes); err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "unable to parse multipart form")
	}

	params, err := ParseRequestQueryParams[userScopedParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPdfUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("error reading uploaded file: %w", err)
	}
	if len(data) == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "empty file received")
	}
	if len(data) > maxPdfUploadBytes {
		return nil, CodedErrorf(http.StatusBadRequest, "file exceeds maximum upload size")
	}

	slog.Info("forwarding pdf upload to ai backend", "filename", header.Filename, "size", len(data), "user_id", params.UserId)

	// Uploads get the long budget: the backend extracts and indexes the
	// document before responding.
	ctx, cancel := context.WithTimeout(r.Context(), s.queryTimeout)
	defer cancel()

	body, err := s.ai.UploadPdf(ctx, header.Filename, data, params.UserId)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error uploading pdf: %v", err)
	}
	return body, nil
}

type searchPdfParams struct {
	SearchQuery string `schema:"search_query"`
	UserId      uint   `schema:"userId"`
}

func (s *BackendService) SearchPdfs(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[searchPdfParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.proxyTimeout)
	defer cancel()

	body, err := s.ai.SearchPdfs(ctx, params.SearchQuery, params.UserId)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error searching pdfs: %v", err)
	}
	return body, nil
}

func (s *BackendService) DeletePdf(r *http.Request) (any, error) {
	pdfName, err := URLParam(r, "pdf_name")
	if err != nil {
		return nil, err
	}
	params, err := ParseRequestQueryParams[userScopedParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.proxyTimeout)
	defer cancel()

	body, err := s.ai.DeletePdf(ctx, pdfName, params.UserId)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error deleting pdf: %v", err)
	}
	return body, nil
}

type updatePdfInfoParams struct {
	NewInfo string `schema:"new_info"`
	UserId  uint   `schema:"userId"`
}

func (s *BackendService) UpdatePdfInfo(r *http.Request) (any, error) {
	pdfName, err := URLParam(r, "pdf_name")
	if err != nil {
		return nil, err
	}
	params, err := ParseRequestQueryParams[updatePdfInfoParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.proxyTimeout)
	defer cancel()

	body, err := s.ai.UpdatePdfInfo(ctx, pdfName, params.NewInfo, params.UserId)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error updating pdf info: %v", err)
	}
	return body, nil
}

func (s *BackendService) RandomProductQueries(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), s.proxyTimeout)
	defer cancel()

	body, err := s.ai.RandomProductQueries(ctx)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error fetching product queries: %v", err)
	}
	return body, nil
}

// GetPdf streams stored PDF bytes from the pdfdata table the AI backend
// writes. The page query parameter is a client-side viewer anchor and is
// accepted but ignored here.
func (s *BackendService) GetPdf(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	rawUserId := r.URL.Query().Get("userId")
	if name == "" || rawUserId == "" {
		WriteJsonError(w, http.StatusBadRequest, "name and userId query parameters are required")
		return
	}
	userId, err := strconv.ParseUint(rawUserId, 10, 64)
	if err != nil {
		WriteJsonError(w, http.StatusBadRequest, "userId must be an integer")
		return
	}

	var doc database.PdfDocument
	err = s.db.WithContext(r.Context()).
		Where("pdf_name = ? AND user_id = ?", name, uint(userId)).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		WriteJsonError(w, http.StatusNotFound, "pdf not found")
		return
	}
	if err != nil {
		slog.Error("error loading pdf bytes", "pdf_name", name, "error", err)
		WriteJsonError(w, http.StatusInternalServerError, "error loading pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.PdfFile); err != nil {
		slog.Error("error streaming pdf bytes", "pdf_name", name, "error", err)
	}
}
