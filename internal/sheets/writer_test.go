package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/report"
)

// fakeSheets serves the subset of the Sheets v4 API the writer uses.
type fakeSheets struct {
	values       map[string][][]any
	existing     []string
	cleared      []string
	batchUpdates []sheets.BatchUpdateSpreadsheetRequest
	created      *sheets.Spreadsheet
	failUpdates  int
	failStatus   int
	mu           sync.Mutex
}

func newFakeSheets(existing ...string) *fakeSheets {
	return &fakeSheets{
		values:     make(map[string][][]any),
		existing:   existing,
		failStatus: http.StatusInternalServerError,
	}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets")
	switch {
	case r.Method == http.MethodPost && path == "":
		var req sheets.Spreadsheet
		_ = json.NewDecoder(r.Body).Decode(&req)
		req.SpreadsheetId = "created-id"
		f.created = &req
		writeJSON(w, req)

	case r.Method == http.MethodGet:
		resp := sheets.Spreadsheet{SpreadsheetId: strings.TrimPrefix(path, "/")}
		for i, title := range f.existing {
			resp.Sheets = append(resp.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{SheetId: int64(100 + i), Title: title},
			})
		}
		writeJSON(w, resp)

	case strings.HasSuffix(path, ":batchUpdate"):
		var req sheets.BatchUpdateSpreadsheetRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.batchUpdates = append(f.batchUpdates, req)

		resp := sheets.BatchUpdateSpreadsheetResponse{}
		for i, sub := range req.Requests {
			reply := &sheets.Response{}
			if sub.AddSheet != nil {
				reply.AddSheet = &sheets.AddSheetResponse{Properties: &sheets.SheetProperties{
					SheetId: int64(200 + i),
					Title:   sub.AddSheet.Properties.Title,
				}}
			}
			resp.Replies = append(resp.Replies, reply)
		}
		writeJSON(w, resp)

	case strings.HasSuffix(path, ":clear"):
		rng := path[strings.Index(path, "/values/")+len("/values/") : len(path)-len(":clear")]
		f.cleared = append(f.cleared, rng)
		writeJSON(w, sheets.ClearValuesResponse{ClearedRange: rng})

	case r.Method == http.MethodPut:
		if f.failUpdates > 0 {
			f.failUpdates--
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.failStatus)
			_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"injected failure"}}`, f.failStatus)
			return
		}
		if r.URL.Query().Get("valueInputOption") != "USER_ENTERED" {
			http.Error(w, "missing valueInputOption", http.StatusBadRequest)
			return
		}
		var req sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&req)
		rng := path[strings.Index(path, "/values/")+len("/values/"):]
		f.values[rng] = req.Values
		writeJSON(w, sheets.UpdateValuesResponse{UpdatedRange: rng})

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestWriter(t *testing.T, fake *fakeSheets, mod func(*Config)) *Writer {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	config := DefaultConfig()
	config.SpreadsheetID = "sheet-1"
	config.RetryDelay = time.Millisecond
	if mod != nil {
		mod(&config)
	}
	return NewWriterWithService(srv, config, nil)
}

func TestWriter_Write(t *testing.T) {
	fake := newFakeSheets(TabSummary, TabExpenses)
	w := newTestWriter(t, fake, nil)

	require.NoError(t, w.Write(context.Background(), seedLedger()))

	fake.mu.Lock()
	defer fake.mu.Unlock()

	require.GreaterOrEqual(t, len(fake.batchUpdates), 2)
	var added []string
	for _, req := range fake.batchUpdates[0].Requests {
		require.NotNil(t, req.AddSheet)
		added = append(added, req.AddSheet.Properties.Title)
	}
	assert.Equal(t, []string{TabCategories, TabMonths, TabBudgets}, added)

	assert.Len(t, fake.cleared, len(TabTitles))
	for _, title := range TabTitles {
		assert.Contains(t, fake.values, title+"!A1")
	}

	expenses := fake.values[TabExpenses+"!A1"]
	require.Len(t, expenses, 16)
	assert.Equal(t, []any{"2023-05-29", "Coffee and cake", "Coffee", 18.99, "No"}, expenses[1])

	summary := fake.values[TabSummary+"!A1"]
	assert.Contains(t, summary, []any{"Total Spent", "RM2667.09"})

	formatting := fake.batchUpdates[len(fake.batchUpdates)-1]
	var patterns []string
	for _, req := range formatting.Requests {
		if req.RepeatCell != nil && req.RepeatCell.Cell.UserEnteredFormat.NumberFormat != nil {
			patterns = append(patterns, req.RepeatCell.Cell.UserEnteredFormat.NumberFormat.Pattern)
		}
	}
	require.NotEmpty(t, patterns)
	assert.Equal(t, `"RM"#,##0.00`, patterns[0])
}

func TestWriter_WriteBatches(t *testing.T) {
	fake := newFakeSheets(TabTitles...)
	w := newTestWriter(t, fake, func(c *Config) {
		c.BatchSize = 5
		c.EnableFormatting = false
	})

	require.NoError(t, w.Write(context.Background(), seedLedger()))

	fake.mu.Lock()
	defer fake.mu.Unlock()

	for _, rng := range []string{"A1", "A6", "A11", "A16"} {
		assert.Contains(t, fake.values, TabExpenses+"!"+rng)
	}
	assert.Len(t, fake.values[TabExpenses+"!A16"], 1)
	assert.Empty(t, fake.batchUpdates, "no tabs to add and formatting disabled")
}

func TestWriter_CreatesSpreadsheet(t *testing.T) {
	fake := newFakeSheets()
	w := newTestWriter(t, fake, func(c *Config) {
		c.SpreadsheetID = ""
		c.SpreadsheetName = "Household"
	})

	require.NoError(t, w.Write(context.Background(), seedLedger()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.NotNil(t, fake.created)
	assert.Equal(t, "Household", fake.created.Properties.Title)
	require.Len(t, fake.created.Sheets, len(TabTitles))
	assert.Equal(t, TabSummary, fake.created.Sheets[0].Properties.Title)
}

func TestWriter_RetriesServerErrors(t *testing.T) {
	fake := newFakeSheets(TabTitles...)
	fake.failUpdates = 2
	w := newTestWriter(t, fake, func(c *Config) { c.EnableFormatting = false })

	require.NoError(t, w.Write(context.Background(), seedLedger()))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, fake.values, TabSummary+"!A1")
	// The failed attempts cleared the summary tab again before each retry.
	assert.Len(t, fake.cleared, len(TabTitles)+2)
}

func TestWriter_ClientErrorsAreNotRetried(t *testing.T) {
	fake := newFakeSheets(TabTitles...)
	fake.failUpdates = 1
	fake.failStatus = http.StatusForbidden
	w := newTestWriter(t, fake, func(c *Config) { c.EnableFormatting = false })

	err := w.Write(context.Background(), seedLedger())
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
	assert.NotErrorIs(t, err, common.ErrMaxRetries)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Len(t, fake.cleared, 1)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	plain := errors.New("boom")
	assert.Equal(t, plain, classify(plain))

	limited := classify(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, limited, common.ErrRateLimit)

	var retryable *common.RetryableError
	require.ErrorAs(t, classify(&googleapi.Error{Code: http.StatusNotFound}), &retryable)
	assert.False(t, retryable.Retryable)

	assert.False(t, errors.As(classify(&googleapi.Error{Code: http.StatusBadGateway}), &retryable))
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	ctx := context.Background()
	l := seedLedger()

	require.NoError(t, m.Write(ctx, l))
	require.NotNil(t, m.LastLedger)
	assert.Len(t, m.LastLedger.Expenses, 15)

	boom := errors.New("quota")
	m.SetWriteError(boom)
	assert.ErrorIs(t, m.Write(ctx, report.Ledger{}), boom)

	calls := m.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.ErrorIs(t, calls[1].Error, boom)

	m.Reset()
	assert.Empty(t, m.GetWriteCalls())
	assert.Nil(t, m.LastLedger)
}
