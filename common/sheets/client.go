package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dnk-music/intake/common/config"
	"github.com/dnk-music/intake/common/logger"
)

// Client appends rows to the delivery and docs spreadsheets.
// Rows land at the first free row, preserving input order.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	log           *logger.Logger
}

// NewClient creates a Google Sheets client from service account credentials
func NewClient(ctx context.Context, cfg config.SheetsConfig, log *logger.Logger) (*Client, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		log:           log,
	}, nil
}

// AppendRows appends rows to the named worksheet at the first free row
func (c *Client) AppendRows(ctx context.Context, sheetName string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	valueRange := &sheets.ValueRange{Values: values}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, sheetName, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %d rows to sheet %s: %w", len(rows), sheetName, err)
	}

	c.log.Info("rows appended to sheet", "sheet", sheetName, "rows", len(rows))
	return nil
}
