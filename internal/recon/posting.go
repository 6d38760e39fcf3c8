package recon

import (
	"strings"

	"github.com/Gms006/Drogarias/internal/brl"
	"github.com/Gms006/Drogarias/internal/config"
	"github.com/Gms006/Drogarias/internal/model"
)

// buildMatched emits the batch for a statement debit paired with a ledger
// row. With no fine, discount, or fee the whole payment is one two-sided
// line; otherwise the gross, fine, and fee are debited separately, the
// discount credited, and the bank credited for the statement amount.
func buildMatched(stmt stmtRow, lr ledgerRow, cfg *config.Company, bank int) []model.PostingLine {
	comp := complement(lr.invoice, lr.supplier)
	supplier := supplierAccount(cfg, lr.supplier)

	if lr.fine.IsZero() && lr.discount.IsZero() && lr.fee.IsZero() {
		return []model.PostingLine{{
			Date:          stmt.date,
			DebitAccount:  supplier,
			CreditAccount: bank,
			Value:         brl.FormatValue(stmt.amount),
			HistCode:      histBankPayment,
			Complement:    comp,
			Source:        model.SourceBank,
		}}
	}

	lines := []model.PostingLine{{
		Date:         stmt.date,
		DebitAccount: supplier,
		Value:        brl.FormatValue(lr.gross),
		HistCode:     histBankPayment,
		Complement:   comp,
		Source:       model.SourceBank,
	}}
	if lr.fine.IsPositive() {
		lines = append(lines, model.PostingLine{
			Date:         stmt.date,
			DebitAccount: cfg.FineAccount(),
			Value:        brl.FormatValue(lr.fine),
			HistCode:     histBankPayment,
			Complement:   comp,
			Source:       model.SourceBank,
		})
	}
	if lr.fee.IsPositive() {
		lines = append(lines, model.PostingLine{
			Date:         stmt.date,
			DebitAccount: cfg.FeeAccount(),
			Value:        brl.FormatValue(lr.fee),
			HistCode:     histBankPayment,
			Complement:   comp,
			Source:       model.SourceBank,
		})
	}
	if lr.discount.IsPositive() {
		lines = append(lines, model.PostingLine{
			Date:          stmt.date,
			CreditAccount: cfg.DiscountAccount(),
			Value:         brl.FormatValue(lr.discount),
			HistCode:      histBankPayment,
			Complement:    comp,
			Source:        model.SourceBank,
		})
	}
	lines = append(lines, model.PostingLine{
		Date:          stmt.date,
		CreditAccount: bank,
		Value:         brl.FormatValue(stmt.amount),
		HistCode:      histBankPayment,
		Complement:    comp,
		Source:        model.SourceBank,
	})

	markBatchStart(lines)
	return lines
}

// buildStatementOnly emits the single-line batch for a statement debit
// with no ledger counterpart: default supplier account against the bank,
// no complement.
func buildStatementOnly(stmt stmtRow, bank int) []model.PostingLine {
	return []model.PostingLine{{
		Date:          stmt.date,
		DebitAccount:  defaultSupplierAccount,
		CreditAccount: bank,
		Value:         brl.FormatValue(stmt.amount),
		HistCode:      histBankPayment,
		Source:        model.SourceStatement,
	}}
}

// buildCashSettled emits the batch for a ledger row that never appeared
// on the statement, assumed paid in cash. It mirrors buildMatched with
// the cash account on the credit side, except the composite case credits
// cash for payable + fee: cash settlement absorbs the boleto fee into the
// cash credit.
func buildCashSettled(lr ledgerRow, cfg *config.Company) []model.PostingLine {
	comp := complement(lr.invoice, lr.supplier)
	supplier := supplierAccount(cfg, lr.supplier)

	if lr.fine.IsZero() && lr.discount.IsZero() && lr.fee.IsZero() {
		return []model.PostingLine{{
			Date:          lr.date,
			DebitAccount:  supplier,
			CreditAccount: cashAccount,
			Value:         brl.FormatValue(lr.payable),
			HistCode:      histCashPayment,
			Complement:    comp,
			Source:        model.SourceCash,
		}}
	}

	lines := []model.PostingLine{{
		Date:         lr.date,
		DebitAccount: supplier,
		Value:        brl.FormatValue(lr.gross),
		HistCode:     histCashPayment,
		Complement:   comp,
		Source:       model.SourceCash,
	}}
	if lr.fine.IsPositive() {
		lines = append(lines, model.PostingLine{
			Date:         lr.date,
			DebitAccount: cfg.FineAccount(),
			Value:        brl.FormatValue(lr.fine),
			HistCode:     histBankPayment,
			Complement:   comp,
			Source:       model.SourceCash,
		})
	}
	if lr.fee.IsPositive() {
		lines = append(lines, model.PostingLine{
			Date:         lr.date,
			DebitAccount: cfg.FeeAccount(),
			Value:        brl.FormatValue(lr.fee),
			HistCode:     histBankPayment,
			Complement:   comp,
			Source:       model.SourceCash,
		})
	}
	if lr.discount.IsPositive() {
		lines = append(lines, model.PostingLine{
			Date:          lr.date,
			CreditAccount: cfg.DiscountAccount(),
			Value:         brl.FormatValue(lr.discount),
			HistCode:      histBankPayment,
			Complement:    comp,
			Source:        model.SourceCash,
		})
	}
	lines = append(lines, model.PostingLine{
		Date:          lr.date,
		CreditAccount: cashAccount,
		Value:         brl.FormatValue(lr.payable.Add(lr.fee)),
		HistCode:      histCashPayment,
		Complement:    comp,
		Source:        model.SourceCash,
	})

	markBatchStart(lines)
	return lines
}

func supplierAccount(cfg *config.Company, name string) int {
	if code, ok := cfg.SupplierAccount(name); ok {
		return code
	}
	return defaultSupplierAccount
}

// complement builds the posting complement: the digits of the invoice
// reference followed by the supplier name.
func complement(invoice, supplier string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, invoice)
	return strings.TrimSpace(digits + " " + supplier)
}

// markBatchStart flags the first line of a multi-line batch. Single-line
// batches are never flagged.
func markBatchStart(lines []model.PostingLine) {
	if len(lines) > 1 {
		lines[0].BatchStart = true
	}
}
