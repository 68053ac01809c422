package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document tree (editor JSON or YAML) back to text",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Parse text and serialize it again",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFormat,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(formatCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if nil != err {
		return err
	}
	data, err := readInput(cmd, args)
	if nil != err {
		return err
	}
	if !validJSON(data) {
		if data, err = yamlToJSON(data); nil != err {
			return err
		}
	}

	text, err := engine.RenderJSON(data)
	if nil != err {
		return err
	}
	writeOutput(cmd, text)
	return nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if nil != err {
		return err
	}
	text, err := readInput(cmd, args)
	if nil != err {
		return err
	}
	if text, err = engine.Format(text); nil != err {
		return err
	}
	writeOutput(cmd, text)
	return nil
}

// yamlToJSON 将 parse 命令输出的 YAML 树转换为编辑器 JSON。
func yamlToJSON(data string) (string, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(data), &doc); nil != err {
		return "", fmt.Errorf("input is neither JSON nor YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if nil != err {
		return "", fmt.Errorf("failed to convert tree: %w", err)
	}
	return string(out), nil
}
