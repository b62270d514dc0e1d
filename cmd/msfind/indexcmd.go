package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mr-c/macsyfinder/replicon"
)

var indexBuildOut string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build a replicon index from a FASTA file",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build <fasta-path>",
	Short: "Scan a FASTA file and write its replicon index",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexBuild,
}

func init() {
	indexBuildCmd.Flags().StringVar(&indexBuildOut, "out", "", "Index output file (default stdout)")
	indexCmd.AddCommand(indexBuildCmd)
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	fastaPath := args[0]
	in, err := os.Open(fastaPath)
	if err != nil {
		return fmt.Errorf("open FASTA file: %w", err)
	}
	defer in.Close()

	out := os.Stdout
	if indexBuildOut != "" {
		f, err := os.Create(indexBuildOut)
		if err != nil {
			return fmt.Errorf("create index output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return replicon.GenerateIndex(out, in, fastaPath)
}
