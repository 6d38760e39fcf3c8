package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gms006/Drogarias/internal/cnpj"
)

func newCompaniesCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List companies with a registry in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dataDir, func(dir string) error {
				ids, err := openStore(dir).Companies()
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Println(cnpj.Format(id))
				}
				return nil
			})
		},
	}
	addDataFlag(cmd, &dataDir)

	return cmd
}
