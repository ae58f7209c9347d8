// Package export renders driver output to PDF cutting reports and QR
// bundle tags for the shop floor.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/cutplan/rebarcut/internal/model"
)

// TagInfo holds the data encoded into each bundle's QR code: everything a
// shop-floor scanner needs to confirm a cut bundle against the plan
// without round-tripping to the report. BundleID is an opaque short uuid
// minted per tag, the same way the teacher tags a StockSheet/Part at
// construction, so a scanner can key off it instead of the
// (diameter, group, bundle index) triple.
type TagInfo struct {
	BundleID       string  `json:"bundle_id"`
	Diameter       string  `json:"diameter"`
	ExecutionGroup int     `json:"execution_group"`
	BundleIndex    int     `json:"bundle"`
	SourceLength   float64 `json:"source_length_m"`
	SourceKind     string  `json:"source_kind"`
	Waste          float64 `json:"waste_m"`
	PieceCount     int     `json:"piece_count"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page, US Letter).
const (
	labelPageWidth  = 215.9
	labelPageHeight = 279.4
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportBundleTags generates a PDF of QR-coded tags, one per pattern
// (bundle) in patterns, for the given diameter and execution group. Each
// tag encodes the bundle's source bar and cut manifest as JSON so a
// scanner on the shop floor can confirm it against the plan.
func ExportBundleTags(path string, diameter string, group int, patterns []model.Pattern) error {
	if len(patterns) == 0 {
		return fmt.Errorf("no patterns to tag for diameter %s group %d", diameter, group)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, p := range patterns {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		info := TagInfo{
			BundleID:       uuid.New().String()[:8],
			Diameter:       diameter,
			ExecutionGroup: group,
			BundleIndex:    i + 1,
			SourceLength:   p.SourceLength,
			SourceKind:     p.SourceKind.String(),
			Waste:          p.Waste,
			PieceCount:     p.PieceCount(),
		}
		if err := renderTag(pdf, x, y, info); err != nil {
			return fmt.Errorf("failed to render tag %d: %w", i+1, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderTag(pdf *fpdf.Fpdf, x, y float64, info TagInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d_%d", info.Diameter, info.ExecutionGroup, info.BundleIndex)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("%s bundle %d", info.Diameter, info.BundleIndex), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s %.2fm, %d pcs", info.SourceKind, info.SourceLength, info.PieceCount), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("group %d, waste %.2fm", info.ExecutionGroup, info.Waste), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectTagInfos extracts tag information for patterns without rendering
// a PDF, used by tests and alternative export formats.
func CollectTagInfos(diameter string, group int, patterns []model.Pattern) []TagInfo {
	tags := make([]TagInfo, len(patterns))
	for i, p := range patterns {
		tags[i] = TagInfo{
			BundleID:       uuid.New().String()[:8],
			Diameter:       diameter,
			ExecutionGroup: group,
			BundleIndex:    i + 1,
			SourceLength:   p.SourceLength,
			SourceKind:     p.SourceKind.String(),
			Waste:          p.Waste,
			PieceCount:     p.PieceCount(),
		}
	}
	return tags
}
