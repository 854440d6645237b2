package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/erginozdemir/tools4audit/internal/adapter/http/dto"
	"github.com/erginozdemir/tools4audit/internal/adapter/spreadsheet"
	"github.com/erginozdemir/tools4audit/internal/domain"
)

// uploadField is the multipart field carrying the workbook.
const uploadField = "file"

// Renderer renders server-side pages.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeWorkbook sends an xlsx attachment.
func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", spreadsheet.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderPage renders a page, falling back to plain text when the template
// itself fails.
func renderPage(w http.ResponseWriter, renderer Renderer, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderer.Render(w, name, data); err != nil {
		_, _ = fmt.Fprintf(w, "template %s: %v", name, err)
	}
}

// renderErrorPage renders the error page for err.
func renderErrorPage(w http.ResponseWriter, renderer Renderer, err error) {
	renderPage(w, renderer, mapDomainError(err), "error.html", map[string]string{
		"Message": userMessage(err),
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingColumn):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyAccountCode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnreadableSpreadsheet):
		return http.StatusBadRequest
	case errors.Is(err, errMissingUpload):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrComputation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// userMessage phrases err for the pages, in the language of the ledger
// headers.
func userMessage(err error) string {
	var schemaErr *domain.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("'%s' sütunu eksik!", schemaErr.Column)
	case errors.Is(err, domain.ErrReportNotFound):
		return "Henüz pivot tablo oluşturulmadı!"
	case errors.Is(err, errMissingUpload):
		return "Lütfen bir Excel dosyası seçin."
	case errors.Is(err, domain.ErrUnreadableSpreadsheet):
		return "Dosya okunamadı. Lütfen geçerli bir .xlsx dosyası yükleyin."
	default:
		return err.Error()
	}
}

var errMissingUpload = errors.New("missing upload")

// openUpload returns the uploaded workbook. Multipart requests carry it in
// the "file" field; any other request body is taken as the workbook itself.
func openUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if r.ContentLength == 0 {
			return nil, errMissingUpload
		}
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errMissingUpload, err)
	}
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMissingUpload, err)
	}
	return file, nil
}

// parseBoolQuery parses a boolean query parameter with a default value.
func parseBoolQuery(r *http.Request, key string, defaultValue bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}
	return b
}
