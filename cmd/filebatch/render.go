package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/filebatch/fileproc"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

// renderReport prints a per-file table followed by a one-line summary.
func renderReport(w io.Writer, report *fileproc.Report, processor string) {
	table := tablewriter.NewWriter(w)
	switch processor {
	case "checksum":
		table.Header("File", "Bytes", "SHA-256", "Status")
	case "words":
		table.Header("File", "Lines", "Words", "Bytes", "Status")
	default:
		table.Header("File", "Lines", "Bytes", "Status")
	}

	for i, out := range report.Outcomes {
		base := filepath.Base(report.Items[i].Path)
		res := out.Value

		switch processor {
		case "checksum":
			_ = table.Append(base, strconv.FormatInt(res.Bytes, 10), res.Checksum, statusCell(report, i))
		case "words":
			_ = table.Append(base, strconv.Itoa(res.Lines), strconv.Itoa(res.Words),
				strconv.FormatInt(res.Bytes, 10), statusCell(report, i))
		default:
			_ = table.Append(base, strconv.Itoa(res.Lines), strconv.FormatInt(res.Bytes, 10), statusCell(report, i))
		}
	}

	if err := table.Render(); err != nil {
		red.Fprintln(w, "error rendering result table")
	}

	bold.Fprintf(w, "%d succeeded, %d failed, %d cancelled in %v\n",
		report.Succeeded, report.Failed, report.Cancelled,
		report.Elapsed.Round(time.Millisecond))
}

func statusCell(report *fileproc.Report, i int) string {
	out := report.Outcomes[i]
	switch {
	case out.Cancelled():
		return yellow.Sprint("cancelled")
	case out.Failed():
		return red.Sprintf("failed: %v", out.Err)
	default:
		return green.Sprint("ok")
	}
}

type jsonRow struct {
	Path     string `json:"path"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Lines    int    `json:"lines,omitempty"`
	Words    int    `json:"words,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
	Checksum string `json:"checksum,omitempty"`
}

type jsonReport struct {
	Files     []jsonRow `json:"files"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Cancelled int       `json:"cancelled"`
	ElapsedMS int64     `json:"elapsed_ms"`
}

// renderJSON emits the full report as a single JSON document.
func renderJSON(w io.Writer, report *fileproc.Report) error {
	doc := jsonReport{
		Files:     make([]jsonRow, 0, len(report.Outcomes)),
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Cancelled: report.Cancelled,
		ElapsedMS: report.Elapsed.Milliseconds(),
	}

	for i, out := range report.Outcomes {
		row := jsonRow{Path: report.Items[i].Path}
		switch {
		case out.Cancelled():
			row.Status = "cancelled"
		case out.Failed():
			row.Status = "failed"
			row.Error = out.Err.Error()
		default:
			row.Status = "ok"
			row.Lines = out.Value.Lines
			row.Words = out.Value.Words
			row.Bytes = out.Value.Bytes
			row.Checksum = out.Value.Checksum
		}
		doc.Files = append(doc.Files, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
