package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/alanpramil7/underdog/internal/yt"
)

const maxTitleWidth = 60

var recordHeaders = []string{"Title", "Views", "Subs", "URL"}

// Table provides table rendering utilities
type Table struct {
	table  *tablewriter.Table
	header []string
	rows   [][]string
}

// NewTable creates a new borderless table writing to w
func NewTable(w io.Writer, headers []string) *Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	return &Table{table: table, header: headers}
}

// AddRow adds a row to the table
func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

// Render outputs the table
func (t *Table) Render() error {
	t.table.Header(t.header)
	if err := t.table.Bulk(t.rows); err != nil {
		return fmt.Errorf("rendering rows: %w", err)
	}
	return t.table.Render()
}

// WriteRecordsTable renders qualifying records as a table
func WriteRecordsTable(w io.Writer, records []yt.QualifyingRecord) error {
	table := NewTable(w, recordHeaders)
	for _, r := range records {
		table.AddRow([]string{
			Truncate(r.Title, maxTitleWidth),
			strconv.FormatUint(r.ViewCount, 10),
			strconv.FormatUint(r.SubscriberCount, 10),
			r.URL,
		})
	}
	return table.Render()
}

// SearchReport is the JSON document printed by `search --format json`
type SearchReport struct {
	Query  string                `json:"query"`
	Count  int                   `json:"count"`
	Videos []yt.QualifyingRecord `json:"videos"`
}

// WriteRecordsJSON renders qualifying records as indented JSON
func WriteRecordsJSON(w io.Writer, query string, records []yt.QualifyingRecord) error {
	if records == nil {
		records = []yt.QualifyingRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(SearchReport{Query: query, Count: len(records), Videos: records})
}

// Truncate shortens s to at most max runes, marking the cut with "..."
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
