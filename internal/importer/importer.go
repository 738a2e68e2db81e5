// Package importer loads provider records from CSV files exported by the
// previous listing spreadsheet. Rows fail independently; one bad row
// never aborts the run.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	catalogtransport "modtok/internal/catalog/transport"
	"modtok/internal/shared/kinds"
	"modtok/platform/logger"
)

// expected CSV header, in order.
var expectedHeader = []string{
	"name", "email", "phone", "region", "comuna", "website", "price_from_clp", "tier", "description",
}

// EntityCreator is the catalog surface the importer writes through.
type EntityCreator interface {
	CreateEntity(ctx context.Context, entityType string, req catalogtransport.CreateEntityRequest) (*catalogtransport.EntityResponse, error)
}

// RowError describes one rejected row.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report is the outcome of an import run.
type Report struct {
	SuccessCount int        `json:"successCount"`
	FailedRows   []RowError `json:"failedRows"`
}

// Importer reads provider CSVs into the catalog.
type Importer struct {
	catalog EntityCreator
	log     *logger.Logger
}

// New creates an importer.
func New(catalog EntityCreator, log *logger.Logger) *Importer {
	return &Importer{catalog: catalog, log: log}
}

// Run imports providers from r. A malformed header fails the whole run;
// after that every row succeeds or fails on its own.
func (i *Importer) Run(ctx context.Context, r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	report := &Report{FailedRows: []RowError{}}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.FailedRows = append(report.FailedRows, RowError{Line: line, Message: err.Error()})
			continue
		}

		req, err := rowToRequest(record)
		if err != nil {
			report.FailedRows = append(report.FailedRows, RowError{Line: line, Message: err.Error()})
			continue
		}

		if _, err := i.catalog.CreateEntity(ctx, string(kinds.EntityProvider), req); err != nil {
			report.FailedRows = append(report.FailedRows, RowError{Line: line, Message: err.Error()})
			continue
		}
		report.SuccessCount++
	}

	i.log.ImportSummary("csv", report.SuccessCount, len(report.FailedRows))
	return report, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(expectedHeader), len(header))
	}
	for idx, name := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(header[idx])) != name {
			return fmt.Errorf("column %d must be %q, got %q", idx+1, name, header[idx])
		}
	}
	return nil
}

func rowToRequest(record []string) (catalogtransport.CreateEntityRequest, error) {
	if len(record) != len(expectedHeader) {
		return catalogtransport.CreateEntityRequest{}, fmt.Errorf("expected %d fields, got %d", len(expectedHeader), len(record))
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return catalogtransport.CreateEntityRequest{}, fmt.Errorf("name is required")
	}

	req := catalogtransport.CreateEntityRequest{
		Name:   name,
		Status: "draft",
	}

	if email := strings.TrimSpace(record[1]); email != "" {
		req.Email = &email
	}
	if phone := strings.TrimSpace(record[2]); phone != "" {
		req.Phone = &phone
	}
	if region := strings.TrimSpace(record[3]); region != "" {
		req.Region = &region
	}
	if comuna := strings.TrimSpace(record[4]); comuna != "" {
		req.Comuna = &comuna
	}
	if website := strings.TrimSpace(record[5]); website != "" {
		req.Website = &website
	}
	if rawPrice := strings.TrimSpace(record[6]); rawPrice != "" {
		price, err := strconv.ParseInt(rawPrice, 10, 64)
		if err != nil || price < 0 {
			return catalogtransport.CreateEntityRequest{}, fmt.Errorf("invalid price_from_clp %q", rawPrice)
		}
		req.PriceFromCLP = &price
	}
	if tier := strings.TrimSpace(record[7]); tier != "" {
		if _, err := kinds.ParseTier(tier); err != nil {
			return catalogtransport.CreateEntityRequest{}, fmt.Errorf("invalid tier %q", tier)
		}
		req.Tier = tier
	}
	if description := strings.TrimSpace(record[8]); description != "" {
		req.Description = &description
	}

	return req, nil
}
