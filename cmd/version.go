package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/jex/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print jex version and build metadata",
	RunE: func(_ *cobra.Command, _ []string) error {
		v := settings.VersionInformation
		goVersion := "unknown"
		if info, ok := debug.ReadBuildInfo(); ok {
			goVersion = info.GoVersion
		}
		fmt.Printf("%s %s (commit %s, built %s, %s)\n",
			settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, goVersion)
		return nil
	},
}
