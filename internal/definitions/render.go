package definitions

import "strings"

// Render serializes records as the two-column Markdown table embedded in the
// prompt. Store order is preserved. An empty record set renders as the empty
// string; the prompt assembler then omits the definitions section entirely.
func Render(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{rec.Column, rec.Definition}
	}
	return RenderTable([]string{"column", "definition"}, rows)
}

// RenderTable builds a Markdown table from arbitrary column names and rows.
// Pipes are escaped and newlines flattened to spaces so a definition can
// never break the table. Short rows are padded with empty cells; extra cells
// are ignored. No columns means no table: the empty string.
func RenderTable(cols []string, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteByte('|')
	for _, c := range cols {
		b.WriteByte(' ')
		b.WriteString(escapeCell(c))
		b.WriteString(" |")
	}
	b.WriteByte('\n')

	b.WriteByte('|')
	for range cols {
		b.WriteString(" --- |")
	}
	b.WriteByte('\n')

	for _, row := range rows {
		b.WriteByte('|')
		for i := range cols {
			var v string
			if i < len(row) {
				v = row[i]
			}
			b.WriteByte(' ')
			b.WriteString(escapeCell(v))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
