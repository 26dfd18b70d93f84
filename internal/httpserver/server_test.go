package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestServer(t *testing.T, options ...Option) *Server {
	t.Helper()
	options = append([]Option{WithLogger(nil)}, options...)
	s, err := New(context.Background(), options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(s, req)
}

func TestEvaluate_Valid(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(s, `{"formula":"pythagoras","a":"3","b":"4"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got evaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := evaluateResponse{
		Formula: "pythagoras",
		Valid:   true,
		Result:  "c = 5.0",
		Fields: []fieldState{
			{Slot: "a", Value: "3"},
			{Slot: "b", Value: "4"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_InvalidFieldsAreNotErrors(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(s, `{"formula":"cylinder-area","a":"-2","b":"abc","locale":"es"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got evaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Valid || got.Result != "" {
		t.Fatalf("expected invalid outcome, got %+v", got)
	}
	wantIssues := []string{"a:Radio", "b:Altura"}
	var gotIssues []string
	for _, issue := range got.Issues {
		gotIssues = append(gotIssues, issue.Slot+":"+issue.Label)
		if issue.Message == "" {
			t.Errorf("issue %s has no message", issue.Slot)
		}
	}
	if diff := cmp.Diff(wantIssues, gotIssues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	for _, field := range got.Fields {
		if field.Value != "" || !field.HasError {
			t.Fatalf("rejected input must leave a blank flagged field, got %+v", field)
		}
	}
}

func TestEvaluate_Localized(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(s, `{"formula":"quadratic","a":"1","b":"0","c":"1","locale":"es-MX"}`)
	var got evaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Result != "No hay solución real" {
		t.Fatalf("unexpected result %q", got.Result)
	}
}

func TestEvaluate_RejectsMalformedPayloads(t *testing.T) {
	s := newTestServer(t)

	for name, body := range map[string]string{
		"unknown formula": `{"formula":"volume"}`,
		"not json":        `formula=pythagoras`,
		"wrong type":      `{"formula":"pythagoras","a":3}`,
		"missing formula": `{"a":"1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(s, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			var payload map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil || payload["error"] == "" {
				t.Fatalf("expected JSON error payload, got %s", rec.Body.String())
			}
		})
	}
}

func TestFormulas(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/formulas", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []formulaInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []formulaInfo{
		{ID: "quadratic", Title: "Quadratic formula", AllowNegative: true, Fields: []formulaField{
			{Slot: "a", Label: "Value A"}, {Slot: "b", Label: "Value B"}, {Slot: "c", Label: "Value C"},
		}},
		{ID: "pythagoras", Title: "Pythagoras", Fields: []formulaField{
			{Slot: "a", Label: "Value A"}, {Slot: "b", Label: "Value B"},
		}},
		{ID: "cylinder-area", Title: "Cylinder area", Fields: []formulaField{
			{Slot: "a", Label: "Radius"}, {Slot: "b", Label: "Height"},
		}},
		{ID: "gravitation", Title: "Law of gravitation", Fields: []formulaField{
			{Slot: "a", Label: "Mass 1"}, {Slot: "b", Label: "Mass 2"}, {Slot: "c", Label: "Distance"},
		}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("formulas mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_Get(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/?formula=gravitation&variant=dark", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"Mass 1", `<option value="gravitation" selected>`, "formcalc.dark.css"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}

	if rec := serve(s, httptest.NewRequest(http.MethodGet, "/?formula=volume", nil)); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown formula status = %d", rec.Code)
	}
}

func TestPage_PostCalculateAndSelect(t *testing.T) {
	s := newTestServer(t)

	post := func(values url.Values, header ...string) string {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if len(header) == 2 {
			req.Header.Set(header[0], header[1])
		}
		rec := serve(s, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		return rec.Body.String()
	}

	body := post(url.Values{"formula": {"cylinder-area"}, "current": {"cylinder-area"}, "action": {"calculate"}, "a": {"1"}, "b": {"1"}})
	if !strings.Contains(body, `<output class="result">Area = 12.5664</output>`) {
		t.Fatalf("expected result in page:\n%s", body)
	}

	body = post(url.Values{"formula": {"pythagoras"}, "current": {"pythagoras"}, "a": {"3"}, "b": {"x"}}, "Accept-Language", "es-ES,es;q=0.9")
	if !strings.Contains(body, `id="formcalc-b-error"`) || strings.Contains(body, `class="result"`) {
		t.Fatalf("expected flagged field without result:\n%s", body)
	}
	if !strings.Contains(body, `lang="es-ES"`) {
		t.Fatalf("expected Accept-Language to select spanish")
	}

	body = post(url.Values{"formula": {"gravitation"}, "current": {"pythagoras"}, "action": {"calculate"}, "a": {"3"}, "b": {"4"}})
	if strings.Contains(body, "aria-invalid") || strings.Contains(body, `value="3"`) {
		t.Fatalf("switching formula must reset the form:\n%s", body)
	}
}

func TestContractAndAssets(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("contract status = %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("contract is not JSON: %v", err)
	}
	if _, ok := doc["paths"]; !ok {
		t.Fatalf("contract has no paths")
	}

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/assets/themes/formcalc/formcalc.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("asset status = %d", rec.Code)
	}
	css, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(css), "var(--color-accent)") {
		t.Fatalf("unexpected stylesheet body")
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, WithRateLimit(1, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/formulas", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		codes = append(codes, serve(s, req).Code)
	}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Fatalf("status codes mismatch (-want +got):\n%s", diff)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/formulas", nil)
	other.RemoteAddr = "198.51.100.2:1234"
	if code := serve(s, other).Code; code != http.StatusOK {
		t.Fatalf("other clients must keep their own budget, got %d", code)
	}
}

func TestNew_RejectsUnknownTheme(t *testing.T) {
	if _, err := New(context.Background(), WithLogger(nil), WithTheme("", "sepia")); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.ListenAndServe(ctx, "127.0.0.1:0"); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}
