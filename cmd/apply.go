package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jex/internal/derive"
	"github.com/oakwood-commons/jex/pkg/core"
)

var (
	applyCorrections  string
	applyIntermediate string
	applyForce        bool
	applyOut          string
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Merge a corrections batch back into the document",
	Long: `apply matches each entry of a flat corrections object ({"<seq>": value})
against the intermediate product's items and replaces the addressed values
in the document. Entries that fail individually are skipped and counted.
The corrections object must have the same shape as the final product
derived from the intermediate file, unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		correctionsText, err := os.ReadFile(applyCorrections)
		if err != nil {
			return err
		}
		intermediateText, err := os.ReadFile(applyIntermediate)
		if err != nil {
			return err
		}

		if !applyForce {
			expected, err := core.Transform(string(intermediateText))
			if err != nil {
				return err
			}
			if err := derive.SameShape(string(correctionsText), expected); err != nil {
				return fmt.Errorf("corrections do not match the derived product (use --force to override): %w", err)
			}
		}

		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		job, err := s.ApplyCorrectionsAsync(string(correctionsText), string(intermediateText))
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
		fmt.Printf("modified %d, skipped %d\n", res.Report.Modified, res.Report.Skipped)

		if applyOut != "" {
			return s.Save(applyOut)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyCorrections, "corrections", "", "corrections file: flat {\"<seq>\": value} object (required)")
	applyCmd.Flags().StringVar(&applyIntermediate, "intermediate", "", "intermediate product file from 'jex derive' (required)")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "skip shape validation against the derived product")
	applyCmd.Flags().StringVar(&applyOut, "out", "", "also write the merged document here")
	_ = applyCmd.MarkFlagRequired("corrections")
	_ = applyCmd.MarkFlagRequired("intermediate")
}
