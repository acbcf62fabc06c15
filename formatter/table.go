package formatter

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Column headers shared by every table
const (
	IndexHeader  = "(index)"
	ValuesHeader = "Values"
	ValueHeader  = "Value"
)

// Table is a render-agnostic grid: one header row and data rows of equal width
type Table struct {
	Headers []string
	Rows    [][]string
}

// BuildTable lays out data the way console.table does.
// Sequences are indexed by position and mappings by key. A row whose value is
// itself a map or struct contributes one column per key; any other row value
// lands in the Values column. When columns is given it selects and orders the
// key columns. A scalar becomes a single (index)/Value row.
func BuildTable(data any, columns ...string) Table {
	rv := deref(reflect.ValueOf(data))

	var indexes []string
	var values []reflect.Value

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return scalarTable(data)
		}
		for i := 0; i < rv.Len(); i++ {
			indexes = append(indexes, strconv.Itoa(i))
			values = append(values, rv.Index(i))
		}
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			indexes = append(indexes, Inspect(k.Interface()))
			values = append(values, rv.MapIndex(k))
		}
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			indexes = append(indexes, t.Field(i).Name)
			values = append(values, rv.Field(i))
		}
	default:
		return scalarTable(data)
	}

	keyColumns := columns
	discover := len(columns) == 0
	seen := make(map[string]bool)
	hasValues := false

	cells := make([]map[string]string, len(values))
	scalars := make([]string, len(values))
	for i, v := range values {
		keys, fields, ok := rowFields(v)
		if !ok {
			hasValues = true
			scalars[i] = inspectValue(v)
			continue
		}
		cells[i] = fields
		if discover {
			for _, k := range keys {
				if !seen[k] {
					seen[k] = true
					keyColumns = append(keyColumns, k)
				}
			}
		}
	}

	t := Table{Headers: append([]string{IndexHeader}, keyColumns...)}
	if hasValues {
		t.Headers = append(t.Headers, ValuesHeader)
	}

	for i, index := range indexes {
		row := make([]string, 0, len(t.Headers))
		row = append(row, index)
		for _, k := range keyColumns {
			row = append(row, cells[i][k])
		}
		if hasValues {
			row = append(row, scalars[i])
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// Render draws the table as an aligned markdown grid
func (t Table) Render() string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(t.Headers...)

	for _, row := range t.Rows {
		padded := make([]string, len(t.Headers))
		copy(padded, row)
		tbl.Row(padded...)
	}

	return tbl.Render()
}

func scalarTable(v any) Table {
	return Table{
		Headers: []string{IndexHeader, ValueHeader},
		Rows:    [][]string{{"0", Inspect(v)}},
	}
}

// rowFields extracts ordered keys and rendered values from a map or struct row
func rowFields(v reflect.Value) ([]string, map[string]string, bool) {
	v = deref(v)
	switch v.Kind() {
	case reflect.Map:
		mk := v.MapKeys()
		sort.Slice(mk, func(i, j int) bool {
			return fmt.Sprint(mk[i].Interface()) < fmt.Sprint(mk[j].Interface())
		})
		keys := make([]string, 0, len(mk))
		fields := make(map[string]string, len(mk))
		for _, k := range mk {
			name := Inspect(k.Interface())
			keys = append(keys, name)
			fields[name] = inspectValue(v.MapIndex(k))
		}
		return keys, fields, true
	case reflect.Struct:
		if !v.CanInterface() {
			return nil, nil, false
		}
		if _, isStringer := v.Interface().(fmt.Stringer); isStringer {
			return nil, nil, false
		}
		t := v.Type()
		keys := make([]string, 0, t.NumField())
		fields := make(map[string]string, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			name := t.Field(i).Name
			keys = append(keys, name)
			fields[name] = inspectValue(v.Field(i))
		}
		return keys, fields, true
	}
	return nil, nil, false
}

func inspectValue(v reflect.Value) string {
	if !v.IsValid() || !v.CanInterface() {
		return ""
	}
	return Inspect(v.Interface())
}

func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}
