package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formcalc/pkg/batch"
	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxUploadBytes  = 8 << 20
)

// handleReport evaluates the query values and returns the screen as a PDF.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !s.registry.Has(pdfRenderer) {
		writeError(w, http.StatusNotFound, fmt.Errorf("renderer %q is not registered", pdfRenderer))
		return
	}
	if err := s.contract.ValidateRequest(r); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	query := r.URL.Query()
	kind, err := model.ParseKind(query.Get("formula"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cfg, err := s.selector.Resolve(s.themeName, s.requestVariant(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	locale := s.resolveLocale(r, query.Get("locale"))
	state := form.EditAll(form.Select(form.New(), kind), postedValues(query.Get))
	state, _ = form.Submit(state, s.engine.ForLocale(locale))

	out, contentType, err := s.registry.Render(r.Context(), pdfRenderer, state, render.RenderOptions{
		Locale:     locale,
		Translator: s.catalog,
		Theme:      cfg,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("render report: %v", err)
		}
		writeError(w, http.StatusInternalServerError, errors.New("failed to render report"))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", kind.String()+".pdf"))
	_, _ = w.Write(out)
}

// handleBatch evaluates every row of an uploaded workbook. Rows with invalid
// fields are part of the report; only unreadable uploads are rejected.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("file required"))
		return
	}
	defer file.Close()

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format != "" && format != "json" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", format))
		return
	}

	locale := s.resolveLocale(r, r.FormValue("locale"))
	report, err := batch.Evaluate(r.Context(), s.engine.ForLocale(locale), file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if format != "xlsx" {
		writeJSON(w, http.StatusOK, report)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="results.xlsx"`)
	if err := batch.Write(w, report); err != nil && s.logger != nil {
		s.logger.Printf("write batch workbook: %v", err)
	}
}
