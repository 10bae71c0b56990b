package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hedgesim version %s\n", version)
		fmt.Println("An equity backtesting simulator with pluggable advisors")
		fmt.Println("https://github.com/rustyeddy/hedgesim")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
