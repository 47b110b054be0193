package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vivasim/viva-api/internal/api/shared"
	"github.com/vivasim/viva-api/internal/portfolio"
)

// maxPortfolioBytes caps uploaded portfolio documents at 20 MiB.
const maxPortfolioBytes = 20 << 20

// PortfolioService validates portfolio documents.
type PortfolioService interface {
	Validate(ctx context.Context, path string) (portfolio.Result, error)
}

// PortfolioHandler serves portfolio validation uploads.
type PortfolioHandler struct {
	portfolios PortfolioService
	logger     *slog.Logger
}

// NewPortfolioHandler creates a portfolio handler.
func NewPortfolioHandler(portfolios PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, logger: logger}
}

// Validate handles POST /portfolios/validate. The document arrives as the
// multipart field "file"; a rejected portfolio is still a 200 with
// valid=false, errors are reserved for failed processing.
func (h *PortfolioHandler) Validate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPortfolioBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	path, cleanup, err := h.saveUpload(file, header.Filename)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"failed to store uploaded file", err)
		return
	}
	defer cleanup()

	result, err := h.portfolios.Validate(r.Context(), path)
	if err != nil {
		status, message := mapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// saveUpload writes the uploaded document to a temp file, keeping the
// original extension so the remote validator can detect its format.
func (h *PortfolioHandler) saveUpload(file io.Reader, name string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "portfolio-upload-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			h.logger.Error("failed to remove uploaded file", "dir", dir, "error", err)
		}
	}

	path := filepath.Join(dir, filepath.Base(name))
	dst, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, cleanup, nil
}
