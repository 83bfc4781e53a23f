// Package export renders transaction snapshots as flat tabular data.
//
// The same row layout feeds the CSV download and the spreadsheet mirror, so
// both stay column-compatible with the persisted transactions table.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"expenses/internal/core"

	"github.com/shopspring/decimal"
)

// Header lists the exported columns in order.
var Header = []string{"id", "date", "type", "category", "amount", "description"}

var ErrBadHeader = errors.New("unexpected csv header")

// Filename returns the download name for an export taken at now.
func Filename(now time.Time) string {
	return "expenses_" + now.Format("20060102") + ".csv"
}

// Row flattens one transaction into export columns.
func Row(t core.Transaction) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Date.String(),
		t.Kind.String(),
		t.Category,
		amountText(t.Amount),
		t.Description,
	}
}

// amountText renders two decimals, or every stored decimal when there are more.
func amountText(d decimal.Decimal) string {
	places := int32(2)
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return d.StringFixed(places)
}

// Rows flattens txs in the order given; the header is not included.
func Rows(txs []core.Transaction) [][]string {
	out := make([][]string, 0, len(txs))
	for _, t := range txs {
		out = append(out, Row(t))
	}
	return out
}

// WriteCSV writes the header followed by one record per transaction.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(Rows(txs)); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// ToCSV is WriteCSV into a string.
func ToCSV(txs []core.Transaction) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseCSV reads a document produced by WriteCSV back into transactions.
func ParseCSV(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, ErrBadHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.Join(head, ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, head)
	}

	var out []core.Transaction
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		t, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, t)
	}
}

func parseRecord(rec []string) (core.Transaction, error) {
	var id int64
	if rec[0] != "" {
		v, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("parse id %q: %w", rec[0], err)
		}
		id = v
	}
	date, err := core.ParseDate(rec[1])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", rec[1], err)
	}
	kind, err := core.ParseKind(rec[2])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse type %q: %w", rec[2], err)
	}
	amount, err := decimal.NewFromString(rec[4])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", rec[4], err)
	}
	return core.Transaction{
		ID:          id,
		Date:        date,
		Kind:        kind,
		Category:    rec[3],
		Amount:      amount,
		Description: rec[5],
	}, nil
}
