package importer

import (
	"strings"
	"testing"
)

func TestDetectCSVDelimiterSemicolon(t *testing.T) {
	data := []byte("order_id;diameter;piece_length;required_count;execution_group\nO1;#4;2.5;10;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Fatalf("expected semicolon, got %q", got)
	}
}

func TestDetectColumnsByHeaderAliases(t *testing.T) {
	mapping, ok := DetectColumns([]string{"Orden", "Diametro", "Longitud", "Cantidad", "Etapa"})
	if !ok {
		t.Fatalf("expected header to be detected")
	}
	if mapping.OrderID != 0 || mapping.Diameter != 1 || mapping.PieceLength != 2 || mapping.RequiredCount != 3 || mapping.ExecutionGroup != 4 {
		t.Fatalf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumnsFallsBackToPositional(t *testing.T) {
	mapping, ok := DetectColumns([]string{"O1", "#4", "2.5", "10", "1"})
	if ok {
		t.Fatalf("expected no header detected for data row")
	}
	if mapping.OrderID != 0 || mapping.RequiredCount != 3 {
		t.Fatalf("unexpected positional mapping: %+v", mapping)
	}
}

func TestImportCSVFromReaderParsesRows(t *testing.T) {
	csvData := "order_id,diameter,piece_length,required_count,execution_group\n" +
		"O1,#4,2.5,10,1\n" +
		"O2,#4,1.2,7,2\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].OrderID != "O1" || result.Rows[0].Diameter != "#4" || result.Rows[0].PieceLength != 2.5 || result.Rows[0].RequiredCount != 10 || result.Rows[0].ExecutionGroup != 1 {
		t.Fatalf("unexpected first row: %+v", result.Rows[0])
	}
}

func TestImportCSVFromReaderDefaultsExecutionGroup(t *testing.T) {
	csvData := "order_id,diameter,piece_length,required_count\nO1,#4,2.5,10\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].ExecutionGroup != 1 {
		t.Fatalf("expected default execution group 1, got %d", result.Rows[0].ExecutionGroup)
	}
}

func TestImportCSVFromReaderReportsInvalidLength(t *testing.T) {
	csvData := "order_id,diameter,piece_length,required_count\nO1,#4,not-a-number,10\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	if len(result.Errors) == 0 {
		t.Fatalf("expected an error for invalid piece_length")
	}
}

func TestImportCSVFromReaderSkipsBlankRows(t *testing.T) {
	csvData := "order_id,diameter,piece_length,required_count\nO1,#4,2.5,10\n\n,,,\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row after skipping blanks, got %d", len(result.Rows))
	}
}
