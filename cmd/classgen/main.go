package main

import (
	"os"

	"github.com/example/classgen/internal/cli"
	"github.com/example/classgen/internal/logging"
)

func main() {
	rootCmd := cli.NewRootCmd()

	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
