package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse text and dump the document tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Dump the editor JSON instead of YAML")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if nil != err {
		return err
	}
	text, err := readInput(cmd, args)
	if nil != err {
		return err
	}

	data, err := engine.ParseJSON(text)
	if nil != err {
		return err
	}
	if parseJSON {
		writeOutput(cmd, string(data))
		return nil
	}

	// 经过 JSON 中转，YAML 的字段名和顺序与编辑器 JSON 保持一致
	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); nil != err {
		return fmt.Errorf("failed to convert tree: %w", err)
	}
	blockStyle(&doc)
	out, err := yaml.Marshal(&doc)
	if nil != err {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	writeOutput(cmd, string(out))
	return nil
}

// blockStyle 清除 JSON 带来的流式风格，输出块风格的 YAML。
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// validJSON 判断 data 是否是 JSON 对象。
func validJSON(data string) bool {
	var v map[string]interface{}
	return nil == json.Unmarshal([]byte(data), &v)
}
