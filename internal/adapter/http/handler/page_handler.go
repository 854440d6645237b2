package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/erginozdemir/tools4audit/internal/domain"
)

// PageHandler serves the static pages.
type PageHandler struct {
	renderer  Renderer
	threshold decimal.Decimal
	keywords  []string
}

// NewPageHandler creates a new PageHandler. The threshold and keywords are
// shown on the upload form.
func NewPageHandler(renderer Renderer, threshold decimal.Decimal, keywords []string) *PageHandler {
	return &PageHandler{renderer: renderer, threshold: threshold, keywords: keywords}
}

// Home renders the upload forms.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	threshold, err := domain.FormatAmount(h.threshold)
	if err != nil {
		threshold = h.threshold.String()
	}
	renderPage(w, h.renderer, http.StatusOK, "home.html", map[string]any{
		"DefaultThreshold": threshold,
		"Keywords":         h.keywords,
	})
}
