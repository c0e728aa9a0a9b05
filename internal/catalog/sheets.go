// Package catalog reads the spreadsheet of products the sentinel tracks.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Row is one catalog entry: a product name and the page its price is
// scraped from. Fields are raw cell values; validation happens in sync.
type Row struct {
	Name string
	URL  string
}

// Source lists the catalog rows to reconcile into the product store.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

const (
	defaultBaseURL = "https://docs.google.com"
	fetchTimeout   = 30 * time.Second
)

// SheetSource reads the catalog from a Google Sheets tab through the
// spreadsheet's CSV export endpoint. The tab must carry `item` and `url`
// header columns; header matching is case-insensitive.
type SheetSource struct {
	client  *resty.Client
	sheetID string
	tab     string
	log     *logrus.Entry
}

// NewSheetSource returns a Source for one spreadsheet tab.
func NewSheetSource(sheetID, tab string, log *logrus.Entry) *SheetSource {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(fetchTimeout)

	return &SheetSource{
		client:  client,
		sheetID: sheetID,
		tab:     tab,
		log:     log,
	}
}

// Rows downloads the tab as CSV and maps every data row to a Row. Rows
// shorter than the header keep empty fields so the sync step can count
// them as skipped.
func (s *SheetSource) Rows(ctx context.Context) ([]Row, error) {
	s.log.Debugf("fetching catalog sheet %s tab %q", s.sheetID, s.tab)

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("sheetID", s.sheetID).
		SetQueryParams(map[string]string{
			"tqx":   "out:csv",
			"sheet": s.tab,
		}).
		Get("/spreadsheets/d/{sheetID}/gviz/tq")
	if err != nil {
		return nil, fmt.Errorf("fetch catalog sheet: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog sheet: status %d", resp.StatusCode())
	}

	return parseCSV(resp.String())
}

// parseCSV reads the export, locates the item and url columns from the
// header row and maps the remaining records.
func parseCSV(data string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	nameIdx, urlIdx := -1, -1
	for i, header := range records[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "item":
			nameIdx = i
		case "url":
			urlIdx = i
		}
	}
	if nameIdx < 0 || urlIdx < 0 {
		return nil, fmt.Errorf("parse catalog csv: missing item/url header in %v", records[0])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			Name: field(record, nameIdx),
			URL:  field(record, urlIdx),
		})
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}
