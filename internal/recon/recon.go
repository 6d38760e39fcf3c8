// Package recon pairs bank-statement debits with accounts-payable ledger
// rows and emits balanced double-entry posting batches.
package recon

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Gms006/Drogarias/internal/brl"
	"github.com/Gms006/Drogarias/internal/config"
	"github.com/Gms006/Drogarias/internal/model"
)

// Engine account and historical-code constants. Only the bank, fine,
// discount, and fee accounts are configurable; cash and the default
// supplier account are fixed.
const (
	defaultSupplierAccount = 5
	cashAccount            = 5
	histBankPayment        = 34
	histCashPayment        = 1
	histDeposit            = 9 // reserved for client deposits
)

// Params holds one reconciliation run's inputs. The engine never mutates
// them; matching state lives in a consumed-index set internal to the run.
type Params struct {
	Statement []model.StatementEntry
	Ledger    []model.LedgerEntry
	Config    *config.Company

	// BankAccount overrides the bank account credited on matched batches.
	// Zero means the first configured payment account.
	BankAccount int
}

// Result is the output table plus run counters for logging.
type Result struct {
	Lines []model.PostingLine

	Matched        int // statement debits paired with a ledger row
	StatementOnly  int // statement debits with no ledger counterpart
	CashSettled    int // ledger rows left unmatched, assumed paid in cash
	SkippedCredits int // credit-suffixed statement rows (not posted)
}

// stmtRow is a statement entry after normalization.
type stmtRow struct {
	date   string
	desc   string
	amount decimal.Decimal
	kind   brl.Kind
}

// ledgerRow is a ledger entry after normalization.
type ledgerRow struct {
	date     string
	supplier string
	invoice  string
	gross    decimal.Decimal
	discount decimal.Decimal
	fine     decimal.Decimal
	payable  decimal.Decimal
	fee      decimal.Decimal
}

// Reconcile runs the matching-and-posting engine over one statement and
// one ledger extract. Every emitted batch is balance-checked before it is
// appended; the first unbalanced batch aborts the run with no output.
func Reconcile(p Params) (*Result, error) {
	stmt, err := normalizeStatement(p.Statement)
	if err != nil {
		return nil, err
	}
	ledger, err := normalizeLedger(p.Ledger)
	if err != nil {
		return nil, err
	}

	bank := p.BankAccount
	if bank == 0 {
		bank = p.Config.BankAccount()
	}

	res := &Result{}
	consumed := make(map[int]struct{}, len(ledger))

	for _, row := range stmt {
		if row.kind != brl.Debit {
			res.SkippedCredits++
			continue
		}

		var batch []model.PostingLine
		if idx, ok := findMatch(ledger, row.date, row.amount, consumed); ok {
			consumed[idx] = struct{}{}
			batch = buildMatched(row, ledger[idx], p.Config, bank)
			res.Matched++
		} else {
			batch = buildStatementOnly(row, bank)
			res.StatementOnly++
		}

		if err := validateBatch(batch); err != nil {
			return nil, err
		}
		res.Lines = append(res.Lines, batch...)
	}

	for i, row := range ledger {
		if _, ok := consumed[i]; ok {
			continue
		}
		batch := buildCashSettled(row, p.Config)
		if err := validateBatch(batch); err != nil {
			return nil, err
		}
		res.Lines = append(res.Lines, batch...)
		res.CashSettled++
	}

	return res, nil
}

func normalizeStatement(entries []model.StatementEntry) ([]stmtRow, error) {
	rows := make([]stmtRow, 0, len(entries))
	for i, e := range entries {
		amount, kind, err := brl.ParseStatementValue(e.Value)
		if err != nil {
			return nil, fmt.Errorf("statement row %d: %w", i+1, err)
		}
		date, err := brl.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("statement row %d: %w", i+1, err)
		}
		rows = append(rows, stmtRow{date: date, desc: e.Description, amount: amount, kind: kind})
	}
	return rows, nil
}

func normalizeLedger(entries []model.LedgerEntry) ([]ledgerRow, error) {
	rows := make([]ledgerRow, 0, len(entries))
	for i, e := range entries {
		row := ledgerRow{supplier: e.Supplier, invoice: e.Invoice}

		var err error
		if row.date, err = brl.ParseDate(e.PaymentDate); err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+1, err)
		}
		fields := []struct {
			dst  *decimal.Decimal
			name string
			raw  string
		}{
			{&row.gross, "gross", e.Gross},
			{&row.discount, "discount", e.Discount},
			{&row.fine, "fine", e.Fine},
			{&row.payable, "payable", e.Payable},
			{&row.fee, "fee", e.BoletoFee},
		}
		for _, f := range fields {
			if *f.dst, err = brl.ParseValue(f.raw); err != nil {
				return nil, fmt.Errorf("ledger row %d: %s: %w", i+1, f.name, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
