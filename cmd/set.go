package cmd

import (
	"github.com/spf13/cobra"
)

var setOutput string

var setCmd = &cobra.Command{
	Use:   "set <file> <address> <text>",
	Short: "Replace the value at an address with literal text and write back",
	Long: `set replaces the first value matching the address with the given text,
stored as a string value. The text is never re-parsed, even when it looks
like an object or array. The whole document is rewritten to the input file,
or to --output when given.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		if err := s.Mutate(args[1], args[2]); err != nil {
			return err
		}
		if setOutput != "" {
			return s.Save(setOutput)
		}
		return s.SaveOriginal()
	},
}

func init() {
	setCmd.Flags().StringVarP(&setOutput, "output", "o", "", "write the mutated document here instead of the input file")
}
