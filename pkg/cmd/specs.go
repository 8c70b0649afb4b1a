package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/specs"
	"github.com/spf13/cobra"
)

var (
	specsListBrand  string
	specsExportPath string
)

func init() {
	SpecsListCmd.Flags().StringVar(&specsListBrand, "brand", "", "only list the models of this brand")
	SpecsExportCmd.Flags().StringVarP(&specsExportPath, "output", "o", "", "output file, stdout when empty")

	SpecsCmd.AddCommand(SpecsListCmd)
	SpecsCmd.AddCommand(SpecsExportCmd)
}

var (
	SpecsCmd = &cobra.Command{
		Use:   SpecsCmdName,
		Short: SpecsCmdShort,
		Long:  SpecsCmdLong,
	}

	SpecsListCmd = &cobra.Command{
		Use:   SpecsListCmdName,
		Short: SpecsListCmdShort,
		RunE:  specsListCmdFunc(),
	}

	SpecsExportCmd = &cobra.Command{
		Use:   SpecsExportCmdName,
		Short: SpecsExportCmdShort,
		RunE:  specsExportCmdFunc(),
	}
)

func loadSpecsTable(cmd *cobra.Command) (*dal.SpecsTable, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	provider, err := newSpecsProvider(cfg, newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	return provider.Table()
}

func specsListCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		table, err := loadSpecsTable(cmd)
		if err != nil {
			return err
		}
		if specsListBrand != "" && !table.HasBrand(specsListBrand) {
			return fmt.Errorf("unknown brand: %s", specsListBrand)
		}
		return writeSpecsTable(cmd.OutOrStdout(), table, specsListBrand)
	}
}

func writeSpecsTable(out io.Writer, table *dal.SpecsTable, brand string) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BRAND\tMODEL\tENGINE CC\tPOWER BHP\tSEATS\tBRAND SCORE")
	table.Each(func(b, m string, s dal.Specs) {
		if brand != "" && b != dal.NormalizeName(brand) {
			return
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n", b, m, s.EngineCC, s.MaxPowerBHP, s.Seats, s.BrandScore)
	})
	return tw.Flush()
}

func specsExportCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		table, err := loadSpecsTable(cmd)
		if err != nil {
			return err
		}

		if specsExportPath == "" {
			return specs.WriteAggregated(cmd.OutOrStdout(), table)
		}

		f, err := os.Create(filepath.Clean(specsExportPath))
		if err != nil {
			return err
		}
		if err := specs.WriteAggregated(f, table); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
