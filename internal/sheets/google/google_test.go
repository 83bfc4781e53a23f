package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type recordedCall struct {
	method string
	path   string
	body   []byte
}

func fakeSheets(t *testing.T, status int) (*Client, *[]recordedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		raw, _ := json.Marshal(body)
		mu.Lock()
		calls = append(calls, recordedCall{method: r.Method, path: r.URL.Path, body: raw})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication())
	require.NoError(t, err)
	return NewWithService(svc, "sheet-id", ""), &calls
}

func TestReplaceRowsClearsThenWrites(t *testing.T) {
	c, calls := fakeSheets(t, http.StatusOK)

	header := []string{"id", "date", "type", "category", "amount", "description"}
	rows := [][]string{{"1", "2024-01-15", "Expense", "Food", "250.00", "Lunch"}}
	require.NoError(t, c.ReplaceRows(context.Background(), header, rows))

	require.Len(t, *calls, 2)
	clear, update := (*calls)[0], (*calls)[1]
	assert.Equal(t, http.MethodPost, clear.method)
	assert.True(t, strings.HasSuffix(clear.path, "Transactions!A:F:clear"), clear.path)
	assert.Equal(t, http.MethodPut, update.method)
	assert.True(t, strings.HasSuffix(update.path, "Transactions!A1"), update.path)

	var vr struct {
		Values [][]string `json:"values"`
	}
	require.NoError(t, json.Unmarshal(update.body, &vr))
	require.Len(t, vr.Values, 2)
	assert.Equal(t, header, vr.Values[0])
	assert.Equal(t, rows[0], vr.Values[1])
}

func TestReplaceRowsQuotesFormulaText(t *testing.T) {
	c, calls := fakeSheets(t, http.StatusOK)

	rows := [][]string{{"2", "2024-01-16", "Expense", "+Other", "-5.00", "=HYPERLINK(\"http://x\")"}}
	require.NoError(t, c.ReplaceRows(context.Background(), []string{"id"}, rows))
	require.Len(t, *calls, 2)

	var vr struct {
		Values [][]string `json:"values"`
	}
	require.NoError(t, json.Unmarshal((*calls)[1].body, &vr))
	require.Len(t, vr.Values, 2)
	assert.Equal(t, []string{"2", "2024-01-16", "Expense", "'+Other", "-5.00", "'=HYPERLINK(\"http://x\")"}, vr.Values[1])
}

func TestLiteral(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"Lunch":    "Lunch",
		"=1+1":     "'=1+1",
		"@home":    "'@home",
		"-12.50":   "-12.50",
		"+3":       "+3",
		"- dinner": "'- dinner",
	}
	for in, want := range cases {
		assert.Equal(t, want, literal(in), "in=%q", in)
	}
}

func TestReplaceRowsSurfacesAPIErrors(t *testing.T) {
	c, _ := fakeSheets(t, http.StatusForbidden)
	err := c.ReplaceRows(context.Background(), []string{"id"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear")
}

func TestReplaceRowsWithoutService(t *testing.T) {
	c := &Client{}
	assert.Error(t, c.ReplaceRows(context.Background(), []string{"id"}, nil))
}

func TestNewRequiresSpreadsheetAndCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.EqualError(t, err, "missing spreadsheet id")

	_, err = New(context.Background(), Config{SpreadsheetID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing service account credentials")

	_, err = New(context.Background(), Config{SpreadsheetID: "x", ServiceAccountFile: "/does/not/exist.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read service account file")
}

func TestColumnName(t *testing.T) {
	cases := map[int]string{0: "A", 1: "A", 6: "F", 26: "Z", 27: "AA", 52: "AZ", 53: "BA"}
	for in, want := range cases {
		assert.Equal(t, want, columnName(in), "n=%d", in)
	}
}
