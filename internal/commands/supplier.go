package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newSupplierCommand() *cobra.Command {
	var dataDir, company string

	supplierCmd := &cobra.Command{
		Use:   "supplier",
		Short: "Manage supplier account mappings",
	}
	supplierCmd.PersistentFlags().StringVar(&company, "company", "", "company CNPJ (required)")
	_ = supplierCmd.MarkPersistentFlagRequired("company")
	supplierCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $CONCILIAR_DATA_DIR or .)")

	supplierCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <account-code>",
			Short: "Map a supplier to a debit account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(dataDir, func(dir string) error {
					code, err := parseCode(args[1])
					if err != nil {
						return err
					}
					return openStore(dir).AddSupplier(company, args[0], code)
				})
			},
		},
		&cobra.Command{
			Use:   "edit <name> <account-code>",
			Short: "Change a supplier's account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(dataDir, func(dir string) error {
					code, err := parseCode(args[1])
					if err != nil {
						return err
					}
					return openStore(dir).EditSupplier(company, args[0], code)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a supplier mapping",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(dataDir, func(dir string) error {
					return openStore(dir).DeleteSupplier(company, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List supplier mappings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(dataDir, func(dir string) error {
					c, err := openStore(dir).Load(company)
					if err != nil {
						return err
					}
					names := make([]string, 0, len(c.Fornecedores))
					for name := range c.Fornecedores {
						names = append(names, name)
					}
					sort.Strings(names)
					for _, name := range names {
						fmt.Printf("%d\t%s\n", c.Fornecedores[name], name)
					}
					return nil
				})
			},
		},
	)

	return supplierCmd
}

// withStore resolves the data dir and runs fn with it.
func withStore(dataDir string, fn func(dir string) error) error {
	dir, err := resolveDataDir(dataDir)
	if err != nil {
		return err
	}
	return fn(dir)
}

func parseCode(s string) (int, error) {
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid account code %q", s)
	}
	return code, nil
}
