package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
	"github.com/goliatone/go-formcalc/pkg/validation"
)

// Form post actions.
const (
	actionSelect    = "select"
	actionCalculate = "calculate"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	state := form.New()
	if raw := r.URL.Query().Get("formula"); raw != "" {
		kind, err := model.ParseKind(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		state = form.Select(state, kind)
	}
	s.renderPage(w, r, state, s.resolveLocale(r, r.URL.Query().Get("locale")))
}

// handlePagePost applies a submitted form. Choosing another formula resets
// the fields; otherwise the posted values go through the keystroke filter and
// the formula is evaluated.
func (s *Server) handlePagePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	kind, err := model.ParseKind(r.PostFormValue("formula"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	locale := s.resolveLocale(r, r.PostFormValue("locale"))

	state := form.Select(form.New(), kind)
	current := strings.TrimSpace(r.PostFormValue("current"))
	action := strings.TrimSpace(r.PostFormValue("action"))
	if action == actionSelect || (current != "" && current != kind.String()) {
		s.renderPage(w, r, state, locale)
		return
	}
	if action != "" && action != actionCalculate {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	state = form.EditAll(state, postedValues(r.PostForm.Get))
	state, _ = form.Submit(state, s.engine.ForLocale(locale))
	s.renderPage(w, r, state, locale)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, state model.FormState, locale string) {
	cfg, err := s.selector.Resolve(s.themeName, s.requestVariant(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, contentType, err := s.registry.Render(r.Context(), htmlRenderer, state, render.RenderOptions{
		Locale:     locale,
		Translator: s.catalog,
		Theme:      cfg,
		Action:     "/",
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("render page: %v", err)
		}
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(out)
}

type formulaField struct {
	Slot  string `json:"slot"`
	Label string `json:"label"`
}

type formulaInfo struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	AllowNegative bool           `json:"allowNegative"`
	Fields        []formulaField `json:"fields"`
}

func (s *Server) handleFormulas(w http.ResponseWriter, r *http.Request) {
	l := s.localizer(s.resolveLocale(r, r.URL.Query().Get("locale")))

	var out []formulaInfo
	for _, kind := range model.Kinds() {
		info := formulaInfo{
			ID:            kind.String(),
			Title:         l.Title(kind),
			AllowNegative: validation.AllowsNegative(kind),
		}
		for _, entry := range form.Labels(form.Select(form.New(), kind), l) {
			info.Fields = append(info.Fields, formulaField{Slot: entry.Slot.String(), Label: entry.Label})
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

type evaluateRequest struct {
	Formula string `json:"formula"`
	A       string `json:"a"`
	B       string `json:"b"`
	C       string `json:"c"`
	Locale  string `json:"locale"`
}

type fieldState struct {
	Slot     string `json:"slot"`
	Value    string `json:"value"`
	HasError bool   `json:"hasError"`
}

type evaluateResponse struct {
	Formula string                  `json:"formula"`
	Valid   bool                    `json:"valid"`
	Result  string                  `json:"result,omitempty"`
	Fields  []fieldState            `json:"fields"`
	Issues  []validation.FieldIssue `json:"issues,omitempty"`
}

// handleEvaluate answers 200 for both valid and invalid outcomes; only
// payloads that break the contract are rejected.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if err := s.contract.ValidateRequest(r); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid payload"))
		return
	}
	kind, err := model.ParseKind(req.Formula)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	locale := s.resolveLocale(r, req.Locale)
	state := form.Select(form.New(), kind)
	state = form.EditAll(state, map[model.Slot]string{
		model.SlotA: req.A,
		model.SlotB: req.B,
		model.SlotC: req.C,
	})
	state, outcome := form.Submit(state, s.engine.ForLocale(locale))

	resp := evaluateResponse{
		Formula: kind.String(),
		Valid:   outcome.Valid(),
		Result:  state.Result,
	}
	for _, slot := range form.ActiveSlots(state) {
		field := state.Fields.Get(slot)
		resp.Fields = append(resp.Fields, fieldState{Slot: slot.String(), Value: field.Value, HasError: field.HasError})
	}
	if !outcome.Valid() {
		l := s.localizer(locale)
		message := l.Text(i18n.KeyInvalidNumber, nil)
		for _, slot := range outcome.FlaggedSlots() {
			resp.Issues = append(resp.Issues, validation.FieldIssue{
				Slot:    slot.String(),
				Label:   l.Label(kind, slot),
				Message: message,
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContract(w http.ResponseWriter, _ *http.Request) {
	raw, err := s.contract.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (s *Server) localizer(locale string) *i18n.Localizer {
	return i18n.NewLocalizer(s.catalog, locale)
}

// resolveLocale picks the explicit locale when the catalog carries it, then
// the first supported Accept-Language tag, then the server default.
func (s *Server) resolveLocale(r *http.Request, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" && s.catalog.Has(explicit) {
		return explicit
	}
	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag != "" && tag != "*" && s.catalog.Has(tag) {
			return tag
		}
	}
	return s.defaultLocale
}

func (s *Server) requestVariant(r *http.Request) string {
	if variant := strings.TrimSpace(r.URL.Query().Get("variant")); variant != "" {
		return variant
	}
	return s.themeVariant
}

func postedValues(get func(string) string) map[model.Slot]string {
	values := make(map[model.Slot]string, model.SlotCount)
	for _, slot := range model.Slots() {
		values[slot] = get(slot.String())
	}
	return values
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
