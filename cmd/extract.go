package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file> <address>",
	Short: "Extract the first value matching an address, pretty-printed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}
		text, err := s.Extract(args[1])
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}
