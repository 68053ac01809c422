package main

import (
	"errors"
	"fmt"

	"github.com/pafthang/lbmd/ast"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("round trip check failed")

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Verify that the text survives parse and render",
	Long: `Parse the input, render the tree and parse the result again.

The check fails when the two trees differ or when rendering the second tree
does not reproduce the first rendering. Word counts are printed on success.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if nil != err {
		return err
	}
	text, err := readInput(cmd, args)
	if nil != err {
		return err
	}

	tree := engine.Parse(text)
	first, err := engine.Render(tree)
	if nil != err {
		return err
	}
	again := engine.Parse(first)
	if !ast.Equal(tree, again) {
		return fmt.Errorf("%w: tree changed after rendering", errCheckFailed)
	}
	second, err := engine.Render(again)
	if nil != err {
		return err
	}
	if first != second {
		return fmt.Errorf("%w: rendering is not stable", errCheckFailed)
	}

	runes, words := engine.WordCount(text)
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d blocks, %d characters, %d words\n", tree.ChildCount(), runes, words)
	return nil
}
