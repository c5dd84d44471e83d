package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X ...cmd.Version=v1.2.3".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tocview version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tocview", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
