// Package importer provides CSV and Excel ingestion of the cartilla (the
// ordered demand list) described in spec.md §6: order_id, diameter,
// piece_length, required_count, execution_group. It supports automatic
// delimiter detection and case-insensitive header recognition, so a
// cartilla exported from whatever spreadsheet tool produced it need not
// match any fixed column order.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cutplan/rebarcut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []model.DemandRow
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	OrderID        int
	Diameter       int
	PieceLength    int
	RequiredCount  int
	ExecutionGroup int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"order_id":        {"order_id", "order", "order id", "pedido", "orden"},
	"diameter":        {"diameter", "diametro", "diámetro", "dia", "d"},
	"piece_length":    {"piece_length", "length", "largo", "longitud", "len", "l"},
	"required_count":  {"required_count", "count", "qty", "quantity", "cantidad", "pcs"},
	"execution_group": {"execution_group", "group", "grupo", "etapa", "stage"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter among comma, semicolon, tab, and pipe, by scoring column
// count consistency across rows.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each
// column role, falling back to the fixed positional order
// order_id, diameter, piece_length, required_count, execution_group when
// no header is recognized.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{OrderID: -1, Diameter: -1, PieceLength: -1, RequiredCount: -1, ExecutionGroup: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "order_id":
					if mapping.OrderID == -1 {
						mapping.OrderID = i
					}
				case "diameter":
					if mapping.Diameter == -1 {
						mapping.Diameter = i
					}
				case "piece_length":
					if mapping.PieceLength == -1 {
						mapping.PieceLength = i
					}
				case "required_count":
					if mapping.RequiredCount == -1 {
						mapping.RequiredCount = i
					}
				case "execution_group":
					if mapping.ExecutionGroup == -1 {
						mapping.ExecutionGroup = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{OrderID: 0, Diameter: 1, PieceLength: 2, RequiredCount: 3, ExecutionGroup: 4}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow extracts a DemandRow from a raw row using the given column
// mapping. Returns the row and an empty message on success, or an empty
// row and an error message on failure.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.DemandRow, string) {
	orderID := getCell(row, mapping.OrderID)
	if orderID == "" {
		return model.DemandRow{}, fmt.Sprintf("%s: missing order_id", rowLabel)
	}

	diameter := getCell(row, mapping.Diameter)
	if diameter == "" {
		return model.DemandRow{}, fmt.Sprintf("%s: missing diameter", rowLabel)
	}

	lengthStr := getCell(row, mapping.PieceLength)
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return model.DemandRow{}, fmt.Sprintf("%s: invalid piece_length %q", rowLabel, lengthStr)
	}

	countStr := getCell(row, mapping.RequiredCount)
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return model.DemandRow{}, fmt.Sprintf("%s: invalid required_count %q", rowLabel, countStr)
	}

	group := 1
	if groupStr := getCell(row, mapping.ExecutionGroup); groupStr != "" {
		group, err = strconv.Atoi(groupStr)
		if err != nil {
			return model.DemandRow{}, fmt.Sprintf("%s: invalid execution_group %q", rowLabel, groupStr)
		}
	}

	return model.DemandRow{
		OrderID:        orderID,
		Diameter:       diameter,
		PieceLength:    length,
		RequiredCount:  count,
		ExecutionGroup: group,
	}, ""
}

// ImportCSV imports a cartilla from a CSV file, auto-detecting the
// delimiter and mapping columns by header name.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"file is empty"}}
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports a cartilla from a CSV reader with a known
// delimiter, useful for tests or pre-detected input.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a cartilla from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read Excel data: %v", err)}}
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared parsing logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "detected header row, skipping")

		var missing []string
		if mapping.Diameter == -1 {
			missing = append(missing, "diameter")
		}
		if mapping.PieceLength == -1 {
			missing = append(missing, "piece_length")
		}
		if mapping.RequiredCount == -1 {
			missing = append(missing, "required_count")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		demandRow, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Rows = append(result.Rows, demandRow)
	}

	return result
}
