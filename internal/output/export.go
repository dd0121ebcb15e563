package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ltodo/internal/task"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Export writes tasks to w in the given format.
// json is the storage wire format, so an export can be copied back into a slot.
func Export(w io.Writer, format string, tasks []task.Task, loc *time.Location) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		data, err := task.Encode(tasks)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatCSV:
		return exportCSV(w, tasks, loc)
	case FormatPDF:
		return exportPDF(w, tasks, loc)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

func exportCSV(w io.Writer, tasks []task.Task, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "completed", "due"}); err != nil {
		return err
	}
	for _, t := range tasks {
		due := ""
		if t.HasDue() {
			due = task.FormatDue(t.DueDate, loc)
		}
		record := []string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed), due}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportPDF(w io.Writer, tasks []task.Task, loc *time.Location) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tasks", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)

	if len(tasks) == 0 {
		pdf.Cell(40, 6, EmptyList)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for i, t := range tasks {
		var line bytes.Buffer
		FormatTask(&line, i+1, t, loc)
		pdf.MultiCell(0, 6, tr(strings.TrimRight(line.String(), "\n")), "0", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
