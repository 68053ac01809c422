package main

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render text as preview HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if nil != err {
		return err
	}
	text, err := readInput(cmd, args)
	if nil != err {
		return err
	}
	output, err := engine.Preview(text)
	if nil != err {
		return err
	}
	writeOutput(cmd, output)
	return nil
}
