package handler

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/erginozdemir/tools4audit/internal/adapter/http/dto"
	"github.com/erginozdemir/tools4audit/internal/adapter/spreadsheet"
	"github.com/erginozdemir/tools4audit/internal/domain"
)

// CashService defines the behavior needed by CashHandler.
type CashService interface {
	AnalyzeWorkbook(r io.Reader, threshold *decimal.Decimal) (*domain.CashReport, error)
}

// CashHandler handles cash-risk analysis requests.
type CashHandler struct {
	cashUC    CashService
	renderer  Renderer
	maxUpload int64
	logger    zerolog.Logger
}

// NewCashHandler creates a new CashHandler.
func NewCashHandler(cashUC CashService, renderer Renderer, maxUpload int64, logger zerolog.Logger) *CashHandler {
	return &CashHandler{
		cashUC:    cashUC,
		renderer:  renderer,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Upload analyzes an uploaded workbook and renders the four sections.
func (h *CashHandler) Upload(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyze(w, r)
	if err != nil {
		renderErrorPage(w, h.renderer, err)
		return
	}

	renderPage(w, h.renderer, http.StatusOK, "cash.html", map[string]any{
		"Report": dto.CashReportFromDomain(report),
	})
}

// Analyze analyzes an uploaded workbook and returns JSON, or the report
// workbook when format=xlsx.
func (h *CashHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyze(w, r)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to analyze cash", err.Error())
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		data, err := spreadsheet.CashXLSX(report)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to write cash workbook")
			writeError(w, http.StatusInternalServerError, "failed to write workbook", err.Error())
			return
		}
		writeWorkbook(w, spreadsheet.CashFileName, data)
		return
	}

	writeJSON(w, http.StatusOK, dto.CashReportFromDomain(report))
}

func (h *CashHandler) analyze(w http.ResponseWriter, r *http.Request) (*domain.CashReport, error) {
	file, err := openUpload(w, r, h.maxUpload)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// multipart forms carry the threshold as a field, raw uploads as a query
	// parameter; FormValue reads both
	threshold, err := dto.ParseThreshold(r.FormValue("threshold"))
	if err != nil {
		return nil, err
	}

	report, err := h.cashUC.AnalyzeWorkbook(file, threshold)
	if err != nil {
		h.logger.Warn().Err(err).Msg("cash analysis rejected")
		return nil, err
	}
	return report, nil
}
