package importer

import (
	"io"

	"github.com/Gms006/Drogarias/internal/model"
)

// ReadStatement reads a bank statement workbook into raw entries.
func ReadStatement(r io.Reader) ([]model.StatementEntry, error) {
	t, err := readTable(r, []string{colStmtDate, colStmtDesc, colStmtValue})
	if err != nil {
		return nil, err
	}

	var entries []model.StatementEntry
	for _, row := range t.rows {
		if t.empty(row, colStmtDate, colStmtValue) {
			continue
		}
		entries = append(entries, model.StatementEntry{
			Date:        t.cell(row, colStmtDate),
			Description: t.cell(row, colStmtDesc),
			Value:       t.cell(row, colStmtValue),
		})
	}
	return entries, nil
}

// ReadLedger reads an accounts-payable extract workbook into raw entries.
func ReadLedger(r io.Reader) ([]model.LedgerEntry, error) {
	t, err := readTable(r, []string{
		colLedgerDate,
		colLedgerSupplier,
		colLedgerInvoice,
		colLedgerGross,
		colLedgerDiscount,
		colLedgerFine,
		colLedgerPayable,
		colLedgerFee,
	})
	if err != nil {
		return nil, err
	}

	var entries []model.LedgerEntry
	for _, row := range t.rows {
		if t.empty(row, colLedgerDate, colLedgerSupplier, colLedgerPayable) {
			continue
		}
		entries = append(entries, model.LedgerEntry{
			PaymentDate: t.cell(row, colLedgerDate),
			Supplier:    t.cell(row, colLedgerSupplier),
			Invoice:     t.cell(row, colLedgerInvoice),
			Gross:       t.cell(row, colLedgerGross),
			Discount:    t.cell(row, colLedgerDiscount),
			Fine:        t.cell(row, colLedgerFine),
			Payable:     t.cell(row, colLedgerPayable),
			BoletoFee:   t.cell(row, colLedgerFee),
		})
	}
	return entries, nil
}
