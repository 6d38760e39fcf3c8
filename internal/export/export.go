// Package export serializes the reconciliation output table. Both formats
// are straight renderings of the PostingLine rows; the internal provenance
// tag is dropped here and never reaches the user.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Gms006/Drogarias/internal/model"
)

// Header columns of the exported table, in order.
var columns = []string{
	"Data",
	"Cod Conta Débito",
	"Cod Conta Crédito",
	"Valor",
	"Cod Histórico",
	"Complemento",
	"Inicia Lote",
}

// utf8BOM keeps the accented headers readable when the CSV lands in Excel.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the posting table as semicolon-delimited CSV with a
// UTF-8 byte-order mark.
func WriteCSV(w io.Writer, lines []model.PostingLine) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	defer cw.Flush()

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, l := range lines {
		if err := cw.Write(marshalLine(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteXLSX writes the posting table as a single-sheet workbook.
func WriteXLSX(w io.Writer, lines []model.PostingLine) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, columns); err != nil {
		return err
	}
	for i, l := range lines {
		if err := setRow(f, sheet, i+2, marshalLine(l)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

// marshalLine renders one PostingLine. Zero account codes render empty;
// the batch-start flag renders as "1" or empty.
func marshalLine(l model.PostingLine) []string {
	row := make([]string, len(columns))
	row[0] = l.Date
	if l.DebitAccount != 0 {
		row[1] = strconv.Itoa(l.DebitAccount)
	}
	if l.CreditAccount != 0 {
		row[2] = strconv.Itoa(l.CreditAccount)
	}
	row[3] = l.Value
	row[4] = strconv.Itoa(l.HistCode)
	row[5] = l.Complement
	if l.BatchStart {
		row[6] = "1"
	}
	return row
}
