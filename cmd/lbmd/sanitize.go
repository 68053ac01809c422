package main

import (
	"github.com/spf13/cobra"
)

var sanitizeText bool

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [file]",
	Short: "Strip data: images from pasted HTML",
	Long: `Remove <img> elements whose src is a data: URI from pasted HTML.

With --text the sanitized HTML is converted to editor text as a paste would be.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSanitize,
}

func init() {
	sanitizeCmd.Flags().BoolVar(&sanitizeText, "text", false, "Convert the sanitized HTML to text")
	rootCmd.AddCommand(sanitizeCmd)
}

func runSanitize(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if nil != err {
		return err
	}
	src, err := readInput(cmd, args)
	if nil != err {
		return err
	}

	if !sanitizeText {
		writeOutput(cmd, engine.Sanitize(src))
		return nil
	}
	text, err := engine.PasteHTML2Text(src)
	if nil != err {
		return err
	}
	writeOutput(cmd, text)
	return nil
}
