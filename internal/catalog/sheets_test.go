package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func testSource(t *testing.T, ts *httptest.Server) *SheetSource {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	source := NewSheetSource("sheet-123", "Groceries", logrus.NewEntry(logger))
	source.client.SetBaseURL(ts.URL)
	return source
}

func TestRows(t *testing.T) {
	var gotPath, gotSheet string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSheet = r.URL.Query().Get("sheet")
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, "\"item\",\"URL\"\n"+
			"\"Milo 1kg\",\"https://store.example/milo\"\n"+
			"\"Eggs Grade A\",\"https://store.example/eggs\"\n")
	}))
	defer ts.Close()

	rows, err := testSource(t, ts).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	if gotPath != "/spreadsheets/d/sheet-123/gviz/tq" {
		t.Errorf("path = %q, want csv export path", gotPath)
	}
	if gotSheet != "Groceries" {
		t.Errorf("sheet param = %q, want %q", gotSheet, "Groceries")
	}

	want := []Row{
		{Name: "Milo 1kg", URL: "https://store.example/milo"},
		{Name: "Eggs Grade A", URL: "https://store.example/eggs"},
	}
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(want))
	}
	for i, row := range want {
		if rows[i] != row {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], row)
		}
	}
}

func TestRowsHeaderAliasing(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"lowercase headers", "item,url\nMilo,https://s.example/milo\n"},
		{"uppercase URL header", "item,URL\nMilo,https://s.example/milo\n"},
		{"extra column between", "item,note,URL\nMilo,cheap,https://s.example/milo\n"},
		{"padded headers", " Item , Url \nMilo,https://s.example/milo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.csv)
			}))
			defer ts.Close()

			rows, err := testSource(t, ts).Rows(context.Background())
			if err != nil {
				t.Fatalf("Rows: %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("len(rows) = %d, want 1", len(rows))
			}
			if rows[0].Name != "Milo" || rows[0].URL != "https://s.example/milo" {
				t.Errorf("rows[0] = %+v", rows[0])
			}
		})
	}
}

func TestRowsShortRecordKeepsEmptyFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "item,url\nMilo\n")
	}))
	defer ts.Close()

	rows, err := testSource(t, ts).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Name != "Milo" || rows[0].URL != "" {
		t.Errorf("rows[0] = %+v, want name kept and empty url", rows[0])
	}
}

func TestRowsMissingHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "name,link\nMilo,https://s.example/milo\n")
	}))
	defer ts.Close()

	if _, err := testSource(t, ts).Rows(context.Background()); err == nil {
		t.Fatal("Rows returned nil error for sheet without item/url headers")
	}
}

func TestRowsErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not shared", http.StatusForbidden)
	}))
	defer ts.Close()

	if _, err := testSource(t, ts).Rows(context.Background()); err == nil {
		t.Fatal("Rows returned nil error for 403 response")
	}
}
