package recon

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Gms006/Drogarias/internal/brl"
	"github.com/Gms006/Drogarias/internal/model"
)

// UnbalancedBatchError reports a posting batch whose debit and credit
// sides disagree. It is fatal to the run: the caller must never receive
// an internally inconsistent accounting result.
type UnbalancedBatchError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Date    string
}

func (e *UnbalancedBatchError) Error() string {
	return fmt.Sprintf("unbalanced batch on %s: debits (%s) != credits (%s)",
		e.Date, brl.FormatValue(e.Debits), brl.FormatValue(e.Credits))
}

// validateBatch checks one completed batch before it is appended to the
// output: amounts are parsed back from their rendered strings, summed per
// side, and must agree to the cent. A two-sided line counts on both sides.
func validateBatch(lines []model.PostingLine) error {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, l := range lines {
		v, err := brl.ParseValue(l.Value)
		if err != nil {
			return fmt.Errorf("validating batch: %w", err)
		}
		if l.DebitAccount != 0 {
			totalDebit = totalDebit.Add(v)
		}
		if l.CreditAccount != 0 {
			totalCredit = totalCredit.Add(v)
		}
	}

	if !totalDebit.Equal(totalCredit) {
		date := ""
		if len(lines) > 0 {
			date = lines[0].Date
		}
		return &UnbalancedBatchError{Debits: totalDebit, Credits: totalCredit, Date: date}
	}
	return nil
}
