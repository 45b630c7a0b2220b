package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/placemap/internal/connectors/google"
	"github.com/custodia-labs/placemap/internal/core/domain"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return NewSource(svc, google.NewRateLimiterWithConfig(google.RateLimitConfig{}))
}

func TestSource_Table(t *testing.T) {
	var gotPath string
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(&sheets.Spreadsheet{
			Sheets: []*sheets.Sheet{
				{Properties: &sheets.SheetProperties{Title: "Outro", Index: 1}},
				testSheet(),
			},
		})
	})

	table, err := source.Table(context.Background(), "doc-1", 0, 0)

	require.NoError(t, err)
	assert.Equal(t, "/v4/spreadsheets/doc-1", gotPath)
	assert.Equal(t, "Lugares", table.SheetTitle)
	assert.Equal(t, "B2:G20", table.A1())
}

func TestSource_Table_MissingSheet(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(&sheets.Spreadsheet{})
	})

	_, err := source.Table(context.Background(), "doc-1", 2, 0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSource_Table_DocumentNotFound(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
	})

	_, err := source.Table(context.Background(), "missing", 0, 0)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Requested entity was not found.")
}

func TestSource_Rows(t *testing.T) {
	var gotRanges []string
	var includeGrid string
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotRanges = r.URL.Query()["ranges"]
		includeGrid = r.URL.Query().Get("includeGridData")
		_ = json.NewEncoder(w).Encode(&sheets.Spreadsheet{
			Sheets: []*sheets.Sheet{{Data: []*sheets.GridData{{RowData: []*sheets.RowData{
				{Values: []*sheets.CellData{{FormattedValue: "Tipo"}}},
				{Values: []*sheets.CellData{{FormattedValue: "Bar"}}},
			}}}}},
		})
	})
	table := domain.TableLocation{SheetTitle: "Lugares", EndColumn: 6, EndRow: 10}

	rows, err := source.Rows(context.Background(), "doc-1", table)

	require.NoError(t, err)
	assert.Equal(t, []string{"'Lugares'!A1:F10"}, gotRanges)
	assert.Equal(t, "true", includeGrid)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bar", rows[0].Cells[0].Text)
}

func TestSource_Rows_RateLimited(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded"}}`))
	})

	_, err := source.Rows(context.Background(), "doc-1", domain.TableLocation{EndColumn: 1, EndRow: 2})

	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.True(t, strings.Contains(err.Error(), "Quota exceeded"))
	assert.False(t, source.limiter.Allow())
}
