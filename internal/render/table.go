package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

// EmptyMessage is shown instead of a table with no rows.
const EmptyMessage = "No records found."

// Table is a rendered grid: every cell is already a display string.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Empty   bool       `json:"empty"`
}

// Build renders rows of flat records under the given columns. When columns
// is empty the keys of the first record are used in sorted order.
func Build(records []map[string]interface{}, columns []string) Table {
	if len(columns) == 0 && len(records) > 0 {
		for k := range records[0] {
			columns = append(columns, k)
		}
		sort.Strings(columns)
	}
	t := Table{
		Columns: append([]string{}, columns...),
		Rows:    make([][]string, 0, len(records)),
		Empty:   len(records) == 0,
	}
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = RenderCell(rec[col], col)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FromRecords converts typed records to their JSON field maps and builds the
// table from them.
func FromRecords[T any](records []*T, columns []string) (Table, error) {
	maps := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		m, err := toMap(rec)
		if err != nil {
			return Table{}, err
		}
		maps = append(maps, m)
	}
	return Build(maps, columns), nil
}

func toMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return m, nil
}

// Select keeps only the named columns that exist in the table, in the order
// given. Unknown names are ignored; an empty selection keeps everything.
func (t Table) Select(columns []string) Table {
	if len(columns) == 0 {
		return t
	}
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		index[c] = i
	}
	var keep []int
	var names []string
	for _, c := range columns {
		if i, ok := index[c]; ok {
			keep = append(keep, i)
			names = append(names, c)
		}
	}
	if len(keep) == 0 {
		return t
	}
	out := Table{Columns: names, Rows: make([][]string, len(t.Rows)), Empty: t.Empty}
	for r, row := range t.Rows {
		sel := make([]string, len(keep))
		for j, i := range keep {
			sel[j] = row[i]
		}
		out.Rows[r] = sel
	}
	return out
}

// WriteText prints the table as aligned text, or EmptyMessage.
func (t Table) WriteText(w io.Writer) error {
	if t.Empty {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	tw.AppendBulk(t.Rows)
	tw.Render()
	return nil
}
