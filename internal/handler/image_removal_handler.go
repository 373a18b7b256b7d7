package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"pdf-tools-server/internal/domain"
	apperrors "pdf-tools-server/pkg/errors"
)

const (
	// multipartOverhead leaves room for boundaries and headers around the file
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20
)

// ImageMetrics counts images removed by the handler
type ImageMetrics interface {
	AddImagesRemoved(count int)
}

// ImageRemovalHandler strips images from uploaded PDFs
type ImageRemovalHandler struct {
	remover     domain.ImageRemover
	maxFileSize int64
	metrics     ImageMetrics
	logger      domain.Logger
}

// NewImageRemovalHandler creates the handler. metrics may be nil.
func NewImageRemovalHandler(remover domain.ImageRemover, maxFileSize int64, metrics ImageMetrics, logger domain.Logger) *ImageRemovalHandler {
	return &ImageRemovalHandler{
		remover:     remover,
		maxFileSize: maxFileSize,
		metrics:     metrics,
		logger:      logger,
	}
}

// RemoveImages handles POST /api/v1/general/remove-image-pdf.
// Input: multipart field fileInput (PDF). Output: the PDF without images.
func (h *ImageRemovalHandler) RemoveImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeAppError(w, apperrors.NewValidationError("Invalid multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("fileInput")
	if err != nil {
		writeAppError(w, apperrors.NewValidationError("File is required"))
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", err, "filename", header.Filename)
		writeAppError(w, apperrors.NewInternalError("Failed to read upload", err))
		return
	}

	var out bytes.Buffer
	result, err := h.remover.RemoveImages(r.Context(), bytes.NewReader(pdfBytes), &out)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPDF) {
			h.logger.Warn("Rejected upload that is not a readable PDF", "filename", header.Filename, "error", err)
			writeAppError(w, apperrors.NewProcessingError("Could not read PDF", err))
			return
		}
		h.logger.Error("Image removal failed", err, "filename", header.Filename)
		writeAppError(w, apperrors.NewInternalError("Image removal failed", err))
		return
	}

	if h.metrics != nil {
		h.metrics.AddImagesRemoved(result.ImagesRemoved)
	}

	filename := removedImagesFilename(header.Filename)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
	w.Header().Set("X-Images-Removed", strconv.Itoa(result.ImagesRemoved))
	w.WriteHeader(http.StatusOK)
	if _, err := out.WriteTo(w); err != nil {
		h.logger.Warn("Failed to stream response", "filename", filename, "error", err)
	}
}

// removedImagesFilename drops the final extension of the upload name and
// appends _removed_images.pdf
func removedImagesFilename(original string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(original), "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}
	if ext := path.Ext(name); len(ext) > 1 {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "" {
		name = "document"
	}
	return name + "_removed_images.pdf"
}
