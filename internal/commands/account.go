package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gms006/Drogarias/internal/registry"
)

func newAccountCommand() *cobra.Command {
	var dataDir, company string

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage payment and special accounts",
	}
	accountCmd.PersistentFlags().StringVar(&company, "company", "", "company CNPJ (required)")
	_ = accountCmd.MarkPersistentFlagRequired("company")
	accountCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $CONCILIAR_DATA_DIR or .)")

	accountCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <account-code>",
			Short: "Add a payment account (the first becomes the default bank account)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(dataDir, func(dir string) error {
					code, err := parseCode(args[1])
					if err != nil {
						return err
					}
					return openStore(dir).AddPaymentAccount(company, args[0], code)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a payment account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(dataDir, func(dir string) error {
					return openStore(dir).DeletePaymentAccount(company, args[0])
				})
			},
		},
		newAccountSetCommand(&dataDir, &company),
		&cobra.Command{
			Use:   "list",
			Short: "List payment and special accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(dataDir, func(dir string) error {
					c, err := openStore(dir).Load(company)
					if err != nil {
						return err
					}
					for _, name := range c.ContasPagamento.Names() {
						code, _ := c.ContasPagamento.Get(name)
						fmt.Printf("%d\t%s\n", code, name)
					}
					fmt.Printf("%d\t(%s)\n", c.FineAccount(), registry.FieldFines)
					fmt.Printf("%d\t(%s)\n", c.DiscountAccount(), registry.FieldDiscounts)
					fmt.Printf("%d\t(%s)\n", c.FeeAccount(), registry.FieldFees)
					return nil
				})
			},
		},
	)

	return accountCmd
}

func newAccountSetCommand(dataDir, company *string) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "set <account-code>",
		Short: "Set a special account (fines, discounts, or fees)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(*dataDir, func(dir string) error {
				code, err := parseCode(args[0])
				if err != nil {
					return err
				}
				return openStore(dir).SetSpecialAccount(*company, field, code)
			})
		},
	}
	cmd.Flags().StringVar(&field, "field", "", fmt.Sprintf("one of %s, %s, %s (required)",
		registry.FieldFines, registry.FieldDiscounts, registry.FieldFees))
	_ = cmd.MarkFlagRequired("field")

	return cmd
}
