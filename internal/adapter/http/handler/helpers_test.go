package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erginozdemir/tools4audit/internal/adapter/http/dto"
	"github.com/erginozdemir/tools4audit/internal/domain"
)

// rendererStub records the last page rendered.
type rendererStub struct {
	name string
	data any
	err  error
}

func (r *rendererStub) Render(w io.Writer, name string, data any) error {
	r.name = name
	r.data = data
	if r.err != nil {
		return r.err
	}
	_, err := fmt.Fprintf(w, "<page %s>", name)
	return err
}

// multipartRequest builds a request uploading content in the "file" field
// plus any extra form fields.
func multipartRequest(t *testing.T, target string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	fw, err := mw.CreateFormFile(uploadField, "ledger.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParseBoolQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/aging/x?detail=true", nil)
	if !parseBoolQuery(req, "detail", false) {
		t.Fatal("expected detail=true")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/aging/x?detail=maybe", nil)
	if parseBoolQuery(req, "detail", false) {
		t.Fatal("expected fallback to default")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/aging/x", nil)
	if !parseBoolQuery(req, "detail", true) {
		t.Fatal("expected default when missing")
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"report not found", domain.ErrReportNotFound, http.StatusNotFound},
		{"missing column", &domain.SchemaError{Column: "Borç"}, http.StatusBadRequest},
		{"invalid amount", fmt.Errorf("row 3: %w", domain.ErrInvalidAmount), http.StatusBadRequest},
		{"empty account code", domain.ErrEmptyAccountCode, http.StatusBadRequest},
		{"unreadable", domain.ErrUnreadableSpreadsheet, http.StatusBadRequest},
		{"missing upload", errMissingUpload, http.StatusBadRequest},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"computation", &domain.ComputationError{Account: "100", Reason: "clamp"}, http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := userMessage(&domain.SchemaError{Column: "Borç"}); got != "'Borç' sütunu eksik!" {
		t.Fatalf("unexpected schema message %q", got)
	}
	if got := userMessage(domain.ErrReportNotFound); got != "Henüz pivot tablo oluşturulmadı!" {
		t.Fatalf("unexpected not found message %q", got)
	}
	if got := userMessage(errors.New("boom")); got != "boom" {
		t.Fatalf("expected raw error text, got %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad", "details")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Error != "bad" || resp.Message != "details" {
		t.Fatalf("unexpected error response: %+v", resp)
	}
}

func TestWriteWorkbook(t *testing.T) {
	rr := httptest.NewRecorder()

	writeWorkbook(rr, "pivot_table.xlsx", []byte("xlsx"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename=pivot_table.xlsx` {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if cl := rr.Header().Get("Content-Length"); cl != "4" {
		t.Fatalf("unexpected content length %q", cl)
	}
	if rr.Body.String() != "xlsx" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestRenderPage_TemplateFailure(t *testing.T) {
	rr := httptest.NewRecorder()

	renderPage(rr, &rendererStub{err: errors.New("no such template")}, http.StatusOK, "missing.html", nil)

	if !strings.Contains(rr.Body.String(), "no such template") {
		t.Fatalf("expected template error in body, got %q", rr.Body.String())
	}
}

func TestOpenUpload_Multipart(t *testing.T) {
	req := multipartRequest(t, "/aging", []byte("workbook"), nil)
	rr := httptest.NewRecorder()

	file, err := openUpload(rr, req, 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer file.Close()

	data, _ := io.ReadAll(file)
	if string(data) != "workbook" {
		t.Fatalf("unexpected upload content %q", data)
	}
}

func TestOpenUpload_RawBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aging", strings.NewReader("workbook"))
	rr := httptest.NewRecorder()

	file, err := openUpload(rr, req, 1<<20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := io.ReadAll(file)
	if string(data) != "workbook" {
		t.Fatalf("unexpected upload content %q", data)
	}
}

func TestOpenUpload_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/aging", nil)
	rr := httptest.NewRecorder()

	if _, err := openUpload(rr, req, 1<<20); !errors.Is(err, errMissingUpload) {
		t.Fatalf("expected errMissingUpload, got %v", err)
	}

	// a form without the "file" field
	req = httptest.NewRequest(http.MethodPost, "/aging", strings.NewReader("--x\r\nContent-Disposition: form-data; name=\"other\"\r\n\r\nv\r\n--x--\r\n"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	if _, err := openUpload(rr, req, 1<<20); !errors.Is(err, errMissingUpload) {
		t.Fatalf("expected errMissingUpload for absent field, got %v", err)
	}
}

func TestOpenUpload_TooLarge(t *testing.T) {
	req := multipartRequest(t, "/aging", bytes.Repeat([]byte("x"), 4096), nil)
	rr := httptest.NewRecorder()

	_, err := openUpload(rr, req, 64)
	if got := mapDomainError(err); got != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d (%v)", got, err)
	}
}
