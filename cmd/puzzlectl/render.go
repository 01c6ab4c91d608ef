package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"
	"playstrategy.org/puzzletools/internal/blob"
	"playstrategy.org/puzzletools/pkg/manifests"
)

// renderTable draws rows in a borderless light table. Header and footer text
// is kept as given so batch keys and generator names stay readable.
func renderTable(header table.Row, rows []table.Row, footer table.Row, configs ...table.ColumnConfig) string {
	style := table.StyleLight
	style.Options.DrawBorder = false
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	if footer != nil {
		tw.AppendFooter(footer)
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func renderManifest(m manifests.ImportManifest, format string) (string, error) {
	switch format {
	case "", "text":
		entries := m.Entries()
		if len(entries) == 0 {
			return "No batches imported", nil
		}
		rows := make([]table.Row, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, table.Row{e.Variant, e.Month, strings.Join(e.Generators, ", ")})
		}
		return renderTable(table.Row{"Variant", "Month", "Generators"}, rows, nil,
			table.ColumnConfig{Number: 1, AutoMerge: true}), nil
	case "json":
		data, err := m.Marshal()
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	case "yaml":
		data, err := yaml.Marshal(map[string]map[string][]string(m))
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	case "toml":
		data, err := toml.Marshal(map[string]map[string][]string(m))
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

func renderObjects(objects []blob.Object) string {
	rows := make([]table.Row, 0, len(objects))
	var total uint64
	for _, o := range objects {
		rows = append(rows, table.Row{o.Key, humanize.Bytes(uint64(o.Size))})
		total += uint64(o.Size)
	}
	footer := table.Row{fmt.Sprintf("%v objects", len(objects)), humanize.Bytes(total)}
	return renderTable(table.Row{"Key", "Size"}, rows, footer,
		table.ColumnConfig{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight})
}

func renderManifestDiff(before, after manifests.ImportManifest) (string, bool, error) {
	old, err := before.Marshal()
	if err != nil {
		return "", false, err
	}
	updated, err := after.Marshal()
	if err != nil {
		return "", false, err
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(old), string(updated), false)
	changed := len(diffs) > 1 || (len(diffs) == 1 && diffs[0].Type != diffmatchpatch.DiffEqual)
	return dmp.DiffPrettyText(diffs), changed, nil
}
