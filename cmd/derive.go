package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jex/internal/pager"
)

var (
	deriveFilter   string
	deriveLeafOnly bool
	deriveOut      string
	derivePage     int
	derivePageLn   int
)

var deriveCmd = &cobra.Command{
	Use:   "derive <file>",
	Short: "Run the derivation pipeline and emit the intermediate product",
	Long: `derive selects indexed nodes matching --filter, resolves each node's
value and its sibling "name" value, and emits the sequentially numbered
intermediate product. Progress phases go to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadMergedConfig(resolveConfigPath(configFile))
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("leaf-only") {
			deriveLeafOnly = cfg.LeafOnly
		}
		pg := pager.Config{Page: derivePage, Lines: pageLines(derivePageLn, cfg)}
		if err := pg.Validate(); err != nil {
			return err
		}

		job, err := s.DeriveAsync(deriveFilter, deriveLeafOnly)
		if err != nil {
			return err
		}
		for p := range job.Progress {
			if !cmdSettings().IsQuiet {
				fmt.Fprintf(os.Stderr, "%3.0f%% %s\n", p.Fraction*100, p.Phase)
			}
		}
		res := <-job.Result
		if res.Err != nil {
			return res.Err
		}
		if res.Text == "" {
			fmt.Fprintln(os.Stderr, "empty filter: nothing derived")
			return nil
		}
		if deriveOut != "" {
			return writeOutput(res.Text, deriveOut)
		}
		return writeOutput(pg.Apply(res.Text), "")
	},
}

func pageLines(flagValue int, cfg runConfig) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.PageLines
}

func init() {
	deriveCmd.Flags().StringVar(&deriveFilter, "filter", "", "substring selecting index nodes (required)")
	deriveCmd.Flags().BoolVar(&deriveLeafOnly, "leaf-only", false, "match only scalar-valued nodes by name")
	deriveCmd.Flags().StringVar(&deriveOut, "out", "", "write the intermediate product here instead of stdout")
	deriveCmd.Flags().IntVar(&derivePage, "page", 0, "show only this page of the output (0 = all)")
	deriveCmd.Flags().IntVar(&derivePageLn, "page-lines", 0, "lines per page (default from config)")
	_ = deriveCmd.MarkFlagRequired("filter")
}
