package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/cutplan/rebarcut/internal/model"
)

// Page layout constants (A4 portrait, mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// ReportSection is one (diameter, execution group) sub-problem's result,
// as the driver produces it, shaped for rendering without the export
// package depending on the driver package.
type ReportSection struct {
	Diameter       string
	ExecutionGroup int
	Patterns       []model.Pattern
	NewOffcuts     []float64
	UsedFallback   bool
	Skipped        bool
	SkipReason     string
}

// ExportCuttingReport generates a PDF cutting report: one table per
// sub-problem listing every pattern's source bar, cuts, and waste,
// followed by an overall summary page.
func ExportCuttingReport(path string, sections []ReportSection) error {
	if len(sections) == 0 {
		return fmt.Errorf("no sub-problems to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)

	for _, s := range sections {
		pdf.AddPage()
		renderSectionPage(pdf, s)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, sections)

	return pdf.OutputFileAndClose(path)
}

func renderSectionPage(pdf *fpdf.Fpdf, s ReportSection) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Diameter %s, group %d", s.Diameter, s.ExecutionGroup)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 8, title, "", 0, "L", false, 0, "")

	y := marginTop + 12

	if s.Skipped {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(150, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, "Skipped: "+s.SkipReason, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		return
	}

	if s.UsedFallback {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(150, 100, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, "Produced by deterministic fallback packer", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 7
	}

	colWidths := []float64{15, 28, 25, 80, 27}
	headers := []string{"Bundle", "Source", "Kind", "Cuts", "Waste"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	totalWaste := 0.0
	for i, p := range s.Patterns {
		x = marginLeft
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f m", p.SourceLength),
			p.SourceKind.String(),
			formatCuts(p.Cuts),
			fmt.Sprintf("%.3f m", p.Waste),
		}
		fill := i%2 == 0
		if fill {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "L", true, 0, "")
			x += colWidths[j]
		}
		y += 6
		totalWaste += p.Waste
	}

	y += 4
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(80, 6, fmt.Sprintf("Bundles: %d  Total waste: %.3f m", len(s.Patterns), totalWaste), "", 0, "L", false, 0, "")

	if len(s.NewOffcuts) > 0 {
		y += 7
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, fmt.Sprintf("New reusable off-cuts: %s", formatLengths(s.NewOffcuts)), "", 0, "L", false, 0, "")
	}
}

func formatCuts(cuts []model.Cut) string {
	out := ""
	for i, c := range cuts {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s x%d @ %.2fm", c.OrderID, c.CountInPattern, c.PieceLength)
	}
	return out
}

func formatLengths(lengths []float64) string {
	out := ""
	for i, l := range lengths {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%.2fm", l)
	}
	return out
}

func renderSummaryPage(pdf *fpdf.Fpdf, sections []ReportSection) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	colWidths := []float64{20, 20, 25, 25, 25, 30, 35}
	headers := []string{"Diameter", "Group", "Bundles", "Waste (m)", "Status", "New Off-cuts", "Engine"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, s := range sections {
		x = marginLeft
		status := "OK"
		if s.Skipped {
			status = "SKIPPED"
		}
		enginePath := "GA"
		if s.UsedFallback {
			enginePath = "FALLBACK"
		}
		totalWaste := 0.0
		for _, p := range s.Patterns {
			totalWaste += p.Waste
		}
		row := []string{
			s.Diameter,
			fmt.Sprintf("%d", s.ExecutionGroup),
			fmt.Sprintf("%d", len(s.Patterns)),
			fmt.Sprintf("%.3f", totalWaste),
			status,
			fmt.Sprintf("%d", len(s.NewOffcuts)),
			enginePath,
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by rebarcut", "", 0, "C", false, 0, "")
}
