package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/Gms006/Drogarias/internal/cnpj"
	"github.com/Gms006/Drogarias/internal/export"
	"github.com/Gms006/Drogarias/internal/importer"
	"github.com/Gms006/Drogarias/internal/model"
	"github.com/Gms006/Drogarias/internal/recon"
	"github.com/Gms006/Drogarias/internal/registry"
	"github.com/Gms006/Drogarias/internal/runlog"
)

func newReconcileCommand() *cobra.Command {
	var dataDir, company, stmtPath, ledgerPath, outPath, format string
	var bankAccount int

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a bank statement against the payables extract",
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := resolveDataDir(dataDir)
			if err != nil {
				return err
			}
			return runReconcile(absDir, company, stmtPath, ledgerPath, outPath, format, bankAccount)
		},
	}

	addDataFlag(cmd, &dataDir)
	cmd.Flags().StringVar(&company, "company", "", "company CNPJ (required)")
	cmd.Flags().StringVar(&stmtPath, "statement", "", "bank statement .xlsx (required)")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "payables extract .xlsx (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default exports/conciliacao_<cnpj>.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv or xlsx (default from settings)")
	cmd.Flags().IntVar(&bankAccount, "bank-account", 0, "bank account code override (default first payment account)")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("statement")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

func runReconcile(dataDir, company, stmtPath, ledgerPath, outPath, format string, bankAccount int) error {
	settings := loadSettings(dataDir)
	store := registry.NewStore(dataDir, settings.Git)

	cfg, err := store.Load(company)
	if err != nil {
		return err
	}

	stmt, err := readStatementFile(stmtPath)
	if err != nil {
		return err
	}
	ledger, err := readLedgerFile(ledgerPath)
	if err != nil {
		return err
	}

	log.Infof("reconciling %s: %d statement rows, %d ledger rows",
		cnpj.Format(company), len(stmt), len(ledger))

	res, err := recon.Reconcile(recon.Params{
		Statement:   stmt,
		Ledger:      ledger,
		Config:      cfg,
		BankAccount: bankAccount,
	})
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if format == "" {
		format = settings.Export.Format
	}
	if format == "" {
		format = "csv"
	}
	if outPath == "" {
		outPath = filepath.Join(dataDir, "exports", fmt.Sprintf("conciliacao_%s.%s", cnpj.Normalize(company), format))
	}
	if err := writeOutput(outPath, format, res); err != nil {
		return err
	}

	entry := runlog.Entry{
		Timestamp:      time.Now(),
		Company:        cnpj.Normalize(company),
		StatementRows:  len(stmt),
		LedgerRows:     len(ledger),
		Matched:        res.Matched,
		StatementOnly:  res.StatementOnly,
		CashSettled:    res.CashSettled,
		SkippedCredits: res.SkippedCredits,
		Lines:          len(res.Lines),
		Output:         outPath,
	}
	if err := runlog.Append(dataDir, []runlog.Entry{entry}); err != nil {
		log.Warnf("failed to write run log: %v", err)
	}

	log.Infof("wrote %d lines to %s (%d matched, %d statement-only, %d cash-settled, %d credits skipped)",
		len(res.Lines), outPath, res.Matched, res.StatementOnly, res.CashSettled, res.SkippedCredits)
	return nil
}

func readStatementFile(path string) ([]model.StatementEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	stmt, err := importer.ReadStatement(f)
	if err != nil {
		return nil, fmt.Errorf("reading statement %s: %w", path, err)
	}
	return stmt, nil
}

func readLedgerFile(path string) ([]model.LedgerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	ledger, err := importer.ReadLedger(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return ledger, nil
}

func writeOutput(path, format string, res *recon.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	switch format {
	case "csv":
		return export.WriteCSV(f, res.Lines)
	case "xlsx":
		return export.WriteXLSX(f, res.Lines)
	default:
		return fmt.Errorf("unknown format %q (want csv or xlsx)", format)
	}
}
