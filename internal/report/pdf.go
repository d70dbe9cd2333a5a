// Package report renders the agency's PDF summary report. The report
// contract is deliberately small: it takes the three aggregate record
// counts and returns a PDF byte stream or an error. Rendering failures
// surface as ErrGeneration instead of leaking partial output.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ErrGeneration is returned when the PDF backend fails to produce a
// document.
var ErrGeneration = errors.New("report generation failed")

// Summary carries the aggregate counts populated into the report.
type Summary struct {
	PolicyHolders int
	Policies      int
	Events        int
}

// Render produces the summary report as a PDF document: a heading,
// the generation date and one table row per aggregate count.
func Render(s Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Souhrnný report pojišťovny"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Vygenerováno: %s", time.Now().Format("02.01.2006 15:04"))), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	rows := []struct {
		label string
		count int
	}{
		{"Počet pojistníků", s.PolicyHolders},
		{"Počet pojistných smluv", s.Policies},
		{"Počet pojistných událostí", s.Events},
	}
	for _, row := range rows {
		pdf.CellFormat(120, 10, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 10, fmt.Sprintf("%d", row.count), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return buf.Bytes(), nil
}
