package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <file> <text>",
	Short: "List all index nodes matching a filter as a results artifact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		text, err := s.SearchResults(args[1])
		if err != nil {
			return err
		}
		if text == "" {
			return fmt.Errorf("empty search text")
		}
		fmt.Println(text)
		return nil
	},
}
