package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fieldsLeafOnly bool

var fieldsCmd = &cobra.Command{
	Use:   "fields <file>",
	Short: "List candidate content field names found in the document",
	Args:  cobra.ExactArgs(1),
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
			fieldsLeafOnly = cfg.LeafOnly
		}

		fields, err := s.CandidateFields(fieldsLeafOnly)
		if err != nil {
			return err
		}
		for _, f := range fields {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsLeafOnly, "leaf-only", false, "consider only scalar-valued members")
}
