package recon

import "github.com/shopspring/decimal"

// findMatch scans the ledger in input order for the first row with the
// given canonical date and payable amount that is not in the consumed
// set. First match wins; there is no backtracking, so when duplicate
// (date, amount) pairs exist the pairing follows input order rather than
// any globally optimal assignment.
func findMatch(ledger []ledgerRow, date string, amount decimal.Decimal, consumed map[int]struct{}) (int, bool) {
	for i, row := range ledger {
		if _, taken := consumed[i]; taken {
			continue
		}
		if row.date == date && row.payable.Equal(amount) {
			return i, true
		}
	}
	return 0, false
}
