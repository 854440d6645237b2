package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/erginozdemir/tools4audit/internal/adapter/http/dto"
	"github.com/erginozdemir/tools4audit/internal/adapter/spreadsheet"
	"github.com/erginozdemir/tools4audit/internal/domain"
)

// AgingService defines the behavior needed by AgingHandler.
type AgingService interface {
	BuildFromWorkbook(ctx context.Context, r io.Reader) (*domain.AgingReport, error)
	GetAgingReport(ctx context.Context, id string) (*domain.AgingReport, error)
}

// AgingHandler handles aging report requests.
type AgingHandler struct {
	agingUC   AgingService
	renderer  Renderer
	maxUpload int64
	logger    zerolog.Logger
}

// NewAgingHandler creates a new AgingHandler.
func NewAgingHandler(agingUC AgingService, renderer Renderer, maxUpload int64, logger zerolog.Logger) *AgingHandler {
	return &AgingHandler{
		agingUC:   agingUC,
		renderer:  renderer,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

func downloadURL(id string) string {
	return "/aging/" + id + "/download"
}

// Upload builds a report from an uploaded workbook and renders the pivot.
func (h *AgingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	report, err := h.build(w, r)
	if err != nil {
		renderErrorPage(w, h.renderer, err)
		return
	}

	resp := dto.AgingReportFromDomain(report, false)
	resp.DownloadURL = downloadURL(report.ID)
	renderPage(w, h.renderer, http.StatusOK, "aging.html", map[string]any{"Report": resp})
}

// Download serves the pivot workbook of a stored report.
func (h *AgingHandler) Download(w http.ResponseWriter, r *http.Request) {
	report, err := h.agingUC.GetAgingReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderErrorPage(w, h.renderer, err)
		return
	}

	data, err := spreadsheet.AgingXLSX(report)
	if err != nil {
		h.logger.Error().Err(err).Str("report_id", report.ID).Msg("failed to write aging workbook")
		renderErrorPage(w, h.renderer, err)
		return
	}

	writeWorkbook(w, spreadsheet.AgingFileName, data)
}

// Sample serves the example ledger workbook.
func (h *AgingHandler) Sample(w http.ResponseWriter, r *http.Request) {
	data, err := spreadsheet.SampleXLSX()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to write sample workbook")
		writeError(w, http.StatusInternalServerError, "failed to create sample", err.Error())
		return
	}

	writeWorkbook(w, spreadsheet.SampleFileName, data)
}

// Create builds a report from an uploaded workbook and returns it as JSON.
func (h *AgingHandler) Create(w http.ResponseWriter, r *http.Request) {
	report, err := h.build(w, r)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build aging report", err.Error())
		return
	}

	resp := dto.AgingReportFromDomain(report, parseBoolQuery(r, "detail", false))
	resp.DownloadURL = downloadURL(report.ID)
	writeJSON(w, http.StatusCreated, resp)
}

// Get returns a stored report as JSON.
func (h *AgingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing report ID", "")
		return
	}

	report, err := h.agingUC.GetAgingReport(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get aging report", err.Error())
		return
	}

	resp := dto.AgingReportFromDomain(report, parseBoolQuery(r, "detail", false))
	resp.DownloadURL = downloadURL(report.ID)
	writeJSON(w, http.StatusOK, resp)
}

func (h *AgingHandler) build(w http.ResponseWriter, r *http.Request) (*domain.AgingReport, error) {
	file, err := openUpload(w, r, h.maxUpload)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	report, err := h.agingUC.BuildFromWorkbook(r.Context(), file)
	if err != nil {
		h.logger.Warn().Err(err).Msg("aging report rejected")
		return nil, err
	}
	return report, nil
}
