package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pafthang/lbmd"
	"github.com/pafthang/lbmd/internal/config"
	"github.com/spf13/cobra"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/lbmd/config.yaml)")
}

var rootCmd = &cobra.Command{
	Use:     "lbmd",
	Short:   "Convert editor Markdown to document trees and back",
	Version: lbmd.Version,
	Long: `lbmd parses the editor's Markdown dialect (spoilers, colors, sizes, aligned
blocks, blank-line markers) into a document tree and serializes trees back to text.

Input is read from the file argument, or from stdin when the argument is
missing or "-".

Examples:
  lbmd parse note.md                 # dump the document tree as YAML
  lbmd parse --json note.md          # dump the editor JSON
  lbmd render tree.json              # editor JSON back to text
  lbmd format note.md                # normalize text
  lbmd sanitize --text paste.html    # pasted HTML to text
  lbmd preview note.md               # HTML preview
  lbmd check note.md                 # verify the round trip`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
}

func Execute() {
	if err := rootCmd.Execute(); nil != err {
		os.Exit(1)
	}
}

// newEngine 创建按配置设置好的引擎。
func newEngine() (*lbmd.Engine, error) {
	cfg, err := config.Load(configFile)
	if nil != err {
		return nil, err
	}
	engine := lbmd.New()
	if err = cfg.Apply(engine); nil != err {
		return nil, err
	}
	return engine, nil
}

// readInput 读取参数指定的文件，没有参数或者参数为 - 时读取标准输入。
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if 0 == len(args) || "-" == args[0] {
		data, err := io.ReadAll(cmd.InOrStdin())
		if nil != err {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if nil != err {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func writeOutput(cmd *cobra.Command, output string) {
	fmt.Fprint(cmd.OutOrStdout(), output)
	if "" != output && '\n' != output[len(output)-1] {
		fmt.Fprintln(cmd.OutOrStdout())
	}
}
