package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jex/internal/pager"
	"github.com/oakwood-commons/jex/pkg/core"
)

var (
	transformOut    string
	transformPage   int
	transformPageLn int
)

var transformCmd = &cobra.Command{
	Use:   "transform <intermediate-file>",
	Short: "Re-key an intermediate product into the final sequence map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadMergedConfig(resolveConfigPath(configFile))
		if err != nil {
			return err
		}
		pg := pager.Config{Page: transformPage, Lines: pageLines(transformPageLn, cfg)}
		if err := pg.Validate(); err != nil {
			return err
		}

		out, err := core.Transform(string(data))
		if err != nil {
			return err
		}
		if transformOut != "" {
			return writeOutput(out, transformOut)
		}
		return writeOutput(pg.Apply(out), "")
	},
}

func init() {
	transformCmd.Flags().StringVar(&transformOut, "out", "", "write the final product here instead of stdout")
	transformCmd.Flags().IntVar(&transformPage, "page", 0, "show only this page of the output (0 = all)")
	transformCmd.Flags().IntVar(&transformPageLn, "page-lines", 0, "lines per page (default from config)")
}
