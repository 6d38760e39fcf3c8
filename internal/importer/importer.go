// Package importer reads the bank statement and accounts-payable extract
// from .xlsx workbooks into raw table rows. Column headers are matched
// accent- and case-insensitively; cell values are passed through untouched
// for the engine's normalizer to parse.
package importer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Statement column headers as exported by the banks.
const (
	colStmtDate  = "Data"
	colStmtDesc  = "Histórico"
	colStmtValue = "Valor"
)

// Ledger column headers as exported by the internal system.
const (
	colLedgerDate     = "Data pagamento"
	colLedgerSupplier = "Nome do fornecedor"
	colLedgerInvoice  = "Nota fiscal"
	colLedgerGross    = "Valor"
	colLedgerDiscount = "Descontos"
	colLedgerFine     = "Multa e juros"
	colLedgerPayable  = "Valor a pagar"
	colLedgerFee      = "Tarifas de Boleto"
)

// table is a located header row plus the data rows beneath it.
type table struct {
	cols map[string]int
	rows [][]string
}

// readTable loads the first sheet of an xlsx workbook and locates the
// header row carrying all wanted columns.
func readTable(r io.Reader, wanted []string) (*table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	for i, row := range rows {
		cols := matchHeader(row, wanted)
		if cols != nil {
			return &table{cols: cols, rows: rows[i+1:]}, nil
		}
	}
	return nil, fmt.Errorf("missing columns %v", wanted)
}

// matchHeader returns a column index map when row carries every wanted
// header, or nil.
func matchHeader(row []string, wanted []string) map[string]int {
	byName := make(map[string]int, len(row))
	for i, cell := range row {
		byName[foldHeader(cell)] = i
	}
	cols := make(map[string]int, len(wanted))
	for _, w := range wanted {
		i, ok := byName[foldHeader(w)]
		if !ok {
			return nil
		}
		cols[w] = i
	}
	return cols
}

var headerFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldHeader strips accents and upper-cases for tolerant header matching
// ("Histórico" == "HISTORICO").
func foldHeader(s string) string {
	folded, _, err := transform.String(headerFold, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(strings.TrimSpace(folded))
}

// cell returns the trimmed value at column idx, tolerating the short rows
// excelize produces when trailing cells are empty.
func (t *table) cell(row []string, name string) string {
	idx := t.cols[name]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// empty reports whether the named cells are all blank.
func (t *table) empty(row []string, names ...string) bool {
	for _, n := range names {
		if t.cell(row, n) != "" {
			return false
		}
	}
	return true
}
