package stats

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Columns is the fixed column order of the tournament time control report.
var Columns = []string{
	"lib", "variant",
	"num_tournaments", "games_count",
	"bot_count", "bot_rate", "human_count",
	"avg_t", "std_t",
	"timeout_count", "timeout_rate",
	"berserk_count", "berserk_rate",
}

type Record map[string]any

func ReadRecords(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding stats: %w", err)
	}
	return records, nil
}

// Row projects a record onto Columns. Missing and null fields become empty
// cells.
func (r Record) Row() ([]string, error) {
	row := make([]string, len(Columns))
	for i, col := range Columns {
		cell, err := formatCell(r[col])
		if err != nil {
			return nil, fmt.Errorf("column %v: %w", col, err)
		}
		row[i] = cell
	}
	return row, nil
}

func formatCell(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return "", err
		}
		return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
	}
}

// WriteRecords writes a header row followed by one row per record, with
// CRLF line endings like the spreadsheets that consume the report expect.
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for i, rec := range records {
		row, err := rec.Row()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func Convert(r io.Reader, w io.Writer) (int, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return 0, err
	}
	if err := WriteRecords(w, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ConvertFile only creates output once input has been read and parsed.
func ConvertFile(input, output string) (int, error) {
	in, err := os.Open(input)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	records, err := ReadRecords(in)
	if err != nil {
		return 0, err
	}
	out, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	if err := WriteRecords(out, records); err != nil {
		out.Close()
		return 0, err
	}
	return len(records), out.Close()
}
