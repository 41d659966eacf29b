// Package report exports run results as a spreadsheet.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
)

const (
	itemsSheet   = "Items"
	summarySheet = "Summary"
)

var itemsHeader = []string{"#", "Kind", "Stem", "Input", "Audio", "Text", "Status", "Stage", "Error", "Duration (s)"}

// WriteXLSX saves r to path with one row per item and a totals sheet.
// An existing file at path is replaced.
func WriteXLSX(path string, r pipeline.Report, layout media.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range itemsHeader {
		if err := setCell(f, itemsSheet, col+1, 1, h); err != nil {
			return err
		}
	}

	for i, o := range r.Results {
		out := layout.Outputs(o.Item)
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		row := []interface{}{
			i + 1,
			string(o.Item.Kind),
			o.Item.Stem,
			o.Item.Path,
			out.Audio,
			out.Text,
			string(o.Status),
			string(o.Stage),
			errText,
			o.Duration.Round(time.Millisecond).Seconds(),
		}
		for col, v := range row {
			if err := setCell(f, itemsSheet, col+1, i+2, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Run ID", r.RunID},
		{"Started", r.Started.Format(time.RFC3339)},
		{"Finished", r.Finished.Format(time.RFC3339)},
		{"Converted", r.Stats.Converted},
		{"Skipped", r.Stats.Skipped},
		{"Failed", r.Stats.Failed},
		{"Total", r.Stats.Total},
		{"Audio output", layout.AudioDir},
		{"Text output", layout.TextDir},
	}
	for i, kv := range summary {
		for col, v := range kv {
			if err := setCell(f, summarySheet, col+1, i+1, v); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
