package ingest

import "strings"

// ParseRows splits raw CSV text into rows of fields using a single forward
// scan. Quoted fields may contain commas and line breaks, a doubled quote
// inside a quoted field yields one literal quote, and CRLF, LF and CR are
// all accepted as row terminators. Rows whose fields are all blank after
// trimming are discarded. Malformed quoting never fails; the scan just
// keeps accumulating.
func ParseRows(text string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if rowHasContent(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inQuotes {
			if ch != '"' {
				field.WriteByte(ch)
				continue
			}
			if i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
			continue
		}
		switch ch {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		case '\n':
			endRow()
		default:
			field.WriteByte(ch)
		}
	}

	// End of input flushes pending content exactly like a row terminator,
	// but only when a field or row is actually in progress.
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}
	return rows
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
