package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formcalc/pkg/batch"
	"github.com/goliatone/go-formcalc/pkg/render"
	"github.com/goliatone/go-formcalc/pkg/renderers/vanilla"
)

func uploadRequest(t *testing.T, target string, rows [][]any, fields map[string]string) *http.Request {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()
	sheet := book.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := row
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "input.xlsx")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := book.WriteTo(part); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestBatch_JSON(t *testing.T) {
	s := newTestServer(t)

	req := uploadRequest(t, "/api/batch", [][]any{
		{"formula", "a", "b", "c"},
		{"quadratic", "1", "0", "1"},
		{"pythagoras", "3", ""},
	}, map[string]string{"locale": "es"})
	rec := serve(s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got batch.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Count != 2 || got.Valid != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.Results[0].Result != "No hay solución real" {
		t.Fatalf("expected localized result, got %q", got.Results[0].Result)
	}
	if got.Results[1].Valid || len(got.Results[1].Flagged) != 1 {
		t.Fatalf("expected flagged second row: %+v", got.Results[1])
	}
}

func TestBatch_Workbook(t *testing.T) {
	s := newTestServer(t)

	req := uploadRequest(t, "/api/batch?format=xlsx", [][]any{
		{"cylinder-area", "1", "1"},
	}, nil)
	rec := serve(s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("unexpected content type %q", got)
	}

	book, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	defer book.Close()
	rows, err := book.GetRows(batch.SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if diff := cmp.Diff([]string{"cylinder-area", "1", "1", "", "Area = 12.5664"}, rows[1]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestBatch_Rejections(t *testing.T) {
	s := newTestServer(t)

	missing := httptest.NewRequest(http.MethodPost, "/api/batch", strings.NewReader(""))
	if rec := serve(s, missing); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing file: status = %d", rec.Code)
	}

	empty := uploadRequest(t, "/api/batch", [][]any{{"formula", "a"}}, nil)
	if rec := serve(s, empty); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty sheet: status = %d", rec.Code)
	}

	format := uploadRequest(t, "/api/batch?format=csv", [][]any{{"pythagoras", "3", "4"}}, nil)
	if rec := serve(s, format); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format: status = %d", rec.Code)
	}
}

func TestReport(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/report?formula=pythagoras&a=3&b=4&variant=dark", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf document")
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "pythagoras.pdf") {
		t.Fatalf("unexpected disposition %q", got)
	}

	for _, query := range []string{"a=3", "formula=volume", "formula=pythagoras&variant=sepia"} {
		if rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/report?"+query, nil)); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", query, rec.Code)
		}
	}
}

func TestReport_WithoutPDFRenderer(t *testing.T) {
	html, err := vanilla.New()
	if err != nil {
		t.Fatalf("html renderer: %v", err)
	}
	registry, err := render.NewRegistry(html)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	s := newTestServer(t, WithRegistry(registry))

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/report?formula=pythagoras", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
