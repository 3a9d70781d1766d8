package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jex/internal/cel"
	"github.com/oakwood-commons/jex/pkg/loader"
)

var evalFunctions bool

var evalCmd = &cobra.Command{
	Use:   "eval <file> <expression>",
	Short: "Evaluate a CEL expression against the document",
	Long: `eval binds the loaded document to the variable "_" and evaluates a CEL
expression against it. Examples: '_.items[0].name', 'size(_.records)',
'_.items.filter(x, x.active)'. Use --functions to list available functions.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if evalFunctions {
			return cobra.MaximumNArgs(0)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		evaluator, err := cel.NewEvaluator()
		if err != nil {
			return err
		}
		if evalFunctions {
			for _, fn := range evaluator.Functions() {
				fmt.Println(fn)
			}
			return nil
		}

		doc, err := loader.LoadFileWithLogger(args[0], *cmdLogger())
		if err != nil {
			return err
		}
		result, err := evaluator.Evaluate(args[1], doc)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	evalCmd.Flags().BoolVar(&evalFunctions, "functions", false, "list the functions available to expressions")
}
