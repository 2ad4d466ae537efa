package main

import (
	"os"

	"nkrane/internal/cli"
)

func main() {
	rootCmd := cli.CreateRootCommand(cli.NewFlags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
