package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jex/internal/shadow"
)

var (
	treeFilter    string
	treeExpandAll bool
	treeMaxDepth  int
)

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Render the document's shadow index as an address/preview table",
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

		nodes := s.Nodes()
		if treeFilter != "" {
			shadow.ApplyFilter(nodes, treeFilter)
		} else {
			for i := range nodes {
				if nodes[i].Children == 0 {
					continue
				}
				if treeExpandAll || nodes[i].Depth < treeMaxDepth {
					nodes[i].Expanded = true
				}
			}
			shadow.RecomputeVisibility(nodes)
		}

		fmt.Print(renderIndex(nodes, cfg.PreviewWidth, !cmdSettings().NoColor))
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVar(&treeFilter, "filter", "", "show only nodes whose address or name contains this text")
	treeCmd.Flags().BoolVar(&treeExpandAll, "expand-all", false, "expand every container")
	treeCmd.Flags().IntVar(&treeMaxDepth, "max-depth", 1, "expand containers up to this depth")
}
