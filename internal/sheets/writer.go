package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/report"
	"github.com/Veraticus/spend/internal/service"
)

var _ service.ReportWriter = (*Writer)(nil)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a Google Sheets report writer authenticated from config.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewWriterWithService(srv, config, logger), nil
}

// NewWriterWithService creates a writer around an existing Sheets service.
func NewWriterWithService(srv *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		service: srv,
		config:  config,
		logger:  logger,
	}
}

// Write replaces the contents of every report tab with the ledger.
func (w *Writer) Write(ctx context.Context, ledger report.Ledger) error {
	tabs := BuildTabs(ledger)

	w.logger.Info("starting report export",
		"expenses", len(ledger.Expenses),
		"categories", len(ledger.Categories),
		"budgets", len(ledger.Budgets))

	spreadsheetID, sheetIDs, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  max(w.config.RetryAttempts, 1),
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	rows := 0
	for _, tab := range tabs {
		writeErr := common.WithRetry(ctx, func() error {
			if clearErr := w.clearSheet(ctx, spreadsheetID, tab.Title); clearErr != nil {
				return classify(clearErr)
			}
			return classify(w.writeData(ctx, spreadsheetID, tab))
		}, retryOpts)
		if writeErr != nil {
			return fmt.Errorf("failed to write %s tab: %w", tab.Title, writeErr)
		}
		rows += len(tab.Rows)
	}

	if w.config.EnableFormatting {
		symbol := ledger.Settings.Currency.Info().Symbol
		err = common.WithRetry(ctx, func() error {
			return classify(w.applyFormatting(ctx, spreadsheetID, sheetIDs, tabs, symbol))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", rows)

	return nil
}

// classify marks client errors other than rate limiting as permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
		}
		if apiErr.Code >= 400 && apiErr.Code < 500 {
			return common.Permanent(err)
		}
	}
	return err
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the configured spreadsheet, creating it when
// no id is set, and makes sure every report tab exists. The returned map
// holds the sheet id of each tab.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, map[string]int64, error) {
	if w.config.SpreadsheetID == "" {
		return w.createSpreadsheet(ctx)
	}

	existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
	}

	sheetIDs := make(map[string]int64, len(TabTitles))
	for _, sh := range existing.Sheets {
		if sh.Properties != nil {
			sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	var requests []*sheets.Request
	for _, title := range TabTitles {
		if _, ok := sheetIDs[title]; ok {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		})
	}
	if len(requests) == 0 {
		return w.config.SpreadsheetID, sheetIDs, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(w.config.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to add report tabs: %w", err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			props := reply.AddSheet.Properties
			sheetIDs[props.Title] = props.SheetId
		}
	}

	w.logger.Debug("added report tabs", "count", len(requests))
	return w.config.SpreadsheetID, sheetIDs, nil
}

func (w *Writer) createSpreadsheet(ctx context.Context) (string, map[string]int64, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}
	for i, title := range TabTitles {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{
				SheetId: int64(i),
				Title:   title,
				Index:   int64(i),
			},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	sheetIDs := make(map[string]int64, len(created.Sheets))
	for _, sh := range created.Sheets {
		if sh.Properties != nil {
			sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, sheetIDs, nil
}

// clearSheet clears all values from one tab.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID, title string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, title+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes a tab's rows in batches to stay under API limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, tab Tab) error {
	batchSize := w.config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultConfig().BatchSize
	}

	for i := 0; i < len(tab.Rows); i += batchSize {
		end := min(i+batchSize, len(tab.Rows))
		batch := tab.Rows[i:end]

		rangeStr := fmt.Sprintf("%s!A%d", tab.Title, i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab.Title, "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds and freezes header rows, formats money columns in
// the ledger currency and resizes columns.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetIDs map[string]int64, tabs []Tab, symbol string) error {
	pattern := fmt.Sprintf(`"%s"#,##0.00`, symbol)

	var requests []*sheets.Request
	for _, tab := range tabs {
		sheetID, ok := sheetIDs[tab.Title]
		if !ok {
			continue
		}
		requests = append(requests, formatRequests(sheetID, tab, pattern)...)
	}
	if len(requests) == 0 {
		return nil
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func formatRequests(sheetID int64, tab Tab, currencyPattern string) []*sheets.Request {
	totalRows := int64(len(tab.Rows))
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      tab.HeaderRows,
					StartColumnIndex: 0,
					EndColumnIndex:   tab.Columns,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: tab.HeaderRows,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	for _, col := range tab.MoneyColumns {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    tab.HeaderRows,
					EndRowIndex:      totalRows,
					StartColumnIndex: col,
					EndColumnIndex:   col + 1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "CURRENCY",
							Pattern: currencyPattern,
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		})
	}

	return append(requests, &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: 0,
				EndIndex:   tab.Columns,
			},
		},
	})
}
