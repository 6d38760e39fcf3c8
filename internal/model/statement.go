package model

// StatementEntry is one raw row of the bank statement table (extrato).
// Values stay as the spreadsheet gave them; internal/brl owns all parsing.
type StatementEntry struct {
	Date        string // day-first date, e.g. "01/01/2024"
	Description string
	Value       string // amount with trailing D/C suffix, e.g. "123,45D"
}

// LedgerEntry is one raw row of the accounts-payable extract (lançamentos).
// All monetary fields are Brazilian-locale strings; blank and "nan" cells
// are valid and mean zero.
type LedgerEntry struct {
	PaymentDate string
	Supplier    string
	Invoice     string
	Gross       string
	Discount    string
	Fine        string
	Payable     string
	BoletoFee   string
}
