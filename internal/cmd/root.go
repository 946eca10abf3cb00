package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mavenizer",
	Short: "Identify Maven coordinates for compiled jar files",
	Long: `mavenizer inspects compiled jar files and determines their Maven
groupId:artifactId:version by combining offline evidence (manifest
attributes, filename conventions, embedded POM files, class package
layout, class timestamps) with online verification against configured
Maven repositories.`,
	Version: "1.0.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
