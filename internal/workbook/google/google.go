// Package google reads the Sharp Token workbook through the Google Sheets
// API. The service holds no workbook handle between calls; every table is
// fetched once at pipeline load and the aggregation never re-touches the
// source.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"sharptoken/internal/core"
	"sharptoken/internal/workbook"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ workbook.TableReader = (*Client)(nil)

// New creates a Sheets-backed workbook reader for the given spreadsheet.
// Credentials come from the environment: GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// newSheetsService initializes a read-only Sheets Service using Service
// Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadTable implements workbook.TableReader. The first non-empty row is the
// header; cells come back as strings regardless of the sheet's cell types.
func (c *Client) ReadTable(ctx context.Context, sheet string) (core.Table, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && (gerr.Code == 400 || gerr.Code == 404) {
			// The API reports an unknown sheet as an unparsable range.
			return core.Table{}, fmt.Errorf("read sheet %q: %w", sheet, workbook.ErrTableNotFound)
		}
		return core.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if len(resp.Values) == 0 {
		slog.InfoContext(ctx, "Sheet is empty", "sheet", sheet)
		return core.Table{Name: sheet}, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = strings.TrimSpace(cellString(cell))
	}
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = cellString(cell)
		}
		rows = append(rows, row)
	}
	return core.Table{Name: sheet, Fields: header, Rows: rows}, nil
}

// cellString renders one API cell value as its sheet text. Numbers are
// formatted without exponents so the pipeline's numeric parsing sees what
// the sheet shows.
func cellString(v interface{}) string {
	switch cell := v.(type) {
	case string:
		return cell
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(cell)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", cell)
	}
}
