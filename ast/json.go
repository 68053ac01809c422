package ast

import (
	"encoding/json"
	"fmt"
)

// 编辑器运行时使用的文档 JSON 结构，与 ProseMirror 的 Node.toJSON 一致。
type jsonNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*jsonNode    `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []*jsonMark    `json:"marks,omitempty"`
}

type jsonMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// MarshalJSON 将 n 编码为编辑器文档 JSON。
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(node2JSON(n))
}

// UnmarshalJSON 从编辑器文档 JSON 解码。
func (n *Node) UnmarshalJSON(data []byte) error {
	jn := &jsonNode{}
	if err := json.Unmarshal(data, jn); nil != err {
		return err
	}

	ret, err := json2Node(jn)
	if nil != err {
		return err
	}
	*n = *ret
	for c := n.FirstChild; nil != c; c = c.Next {
		c.Parent = n
	}
	return nil
}

func node2JSON(n *Node) (ret *jsonNode) {
	ret = &jsonNode{Type: n.Type.Name()}
	attrs := map[string]any{}
	switch n.Type {
	case NodeHeading:
		attrs["level"] = n.Level
	case NodeOrderedList:
		attrs["start"] = n.Start
		attrs["tight"] = n.Tight
	case NodeBulletList:
		attrs["tight"] = n.Tight
	case NodeListItem:
		if n.Task {
			attrs["task"] = true
			attrs["checked"] = n.Checked
		}
	case NodeCodeBlock:
		attrs["language"] = n.Language
		if "" != n.Text {
			ret.Content = append(ret.Content, &jsonNode{Type: NodeText.Name(), Text: n.Text})
		}
	case NodeAlignedBlock:
		attrs["align"] = n.Align
	case NodeTable:
		aligns := make([]any, 0, len(n.Aligns))
		for _, a := range n.Aligns {
			aligns = append(aligns, a)
		}
		attrs["aligns"] = aligns
	case NodeTableCell:
		if n.Header {
			attrs["header"] = true
		}
	case NodeImage:
		attrs["src"] = n.Src
		attrs["alt"] = n.Alt
		if "" != n.Title {
			attrs["title"] = n.Title
		}
	case NodeText:
		ret.Text = n.Text
		for _, m := range n.Marks {
			ret.Marks = append(ret.Marks, mark2JSON(m))
		}
	}
	if 0 < len(attrs) {
		ret.Attrs = attrs
	}

	for c := n.FirstChild; nil != c; c = c.Next {
		ret.Content = append(ret.Content, node2JSON(c))
	}
	return
}

func mark2JSON(m *Mark) (ret *jsonMark) {
	ret = &jsonMark{Type: m.Type.String()}
	switch m.Type {
	case MarkLink:
		ret.Attrs = map[string]any{"href": m.Href}
		if "" != m.Title {
			ret.Attrs["title"] = m.Title
		}
	case MarkTextColor:
		ret.Attrs = map[string]any{"color": m.Color}
	case MarkTextSize:
		ret.Attrs = map[string]any{"size": m.Size}
	}
	return
}

func json2Node(jn *jsonNode) (ret *Node, err error) {
	typ := Name2NodeType(jn.Type)
	if 0 > typ {
		return nil, fmt.Errorf("unknown node type [%s]", jn.Type)
	}

	ret = &Node{Type: typ}
	switch typ {
	case NodeHeading:
		ret.Level = attrInt(jn.Attrs, "level", 1)
		if 1 > ret.Level || 6 < ret.Level {
			return nil, fmt.Errorf("invalid heading level [%d]", ret.Level)
		}
	case NodeOrderedList:
		ret.Start = attrInt(jn.Attrs, "start", 1)
		ret.Tight = attrBool(jn.Attrs, "tight")
	case NodeBulletList:
		ret.Tight = attrBool(jn.Attrs, "tight")
	case NodeListItem:
		ret.Task = attrBool(jn.Attrs, "task")
		ret.Checked = attrBool(jn.Attrs, "checked")
	case NodeCodeBlock:
		ret.Language = attrStr(jn.Attrs, "language")
		for _, c := range jn.Content {
			ret.Text += c.Text
		}
		return
	case NodeAlignedBlock:
		ret.Align = attrStr(jn.Attrs, "align")
	case NodeTable:
		if aligns, ok := jn.Attrs["aligns"].([]any); ok {
			for _, a := range aligns {
				s, _ := a.(string)
				ret.Aligns = append(ret.Aligns, s)
			}
		}
	case NodeTableCell:
		ret.Header = attrBool(jn.Attrs, "header")
	case NodeImage:
		ret.Src = attrStr(jn.Attrs, "src")
		ret.Alt = attrStr(jn.Attrs, "alt")
		ret.Title = attrStr(jn.Attrs, "title")
	case NodeText:
		ret.Text = jn.Text
		for _, jm := range jn.Marks {
			markType := Name2MarkType(jm.Type)
			if 0 > markType {
				return nil, fmt.Errorf("unknown mark type [%s]", jm.Type)
			}
			ret.AddMark(&Mark{Type: markType, Href: attrStr(jm.Attrs, "href"), Title: attrStr(jm.Attrs, "title"),
				Color: attrStr(jm.Attrs, "color"), Size: attrInt(jm.Attrs, "size", 0)})
		}
	}

	for _, jc := range jn.Content {
		child, err := json2Node(jc)
		if nil != err {
			return nil, err
		}
		ret.AppendChild(child)
	}
	return
}

func attrStr(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return s
}

func attrBool(attrs map[string]any, key string) bool {
	b, _ := attrs[key].(bool)
	return b
}

func attrInt(attrs map[string]any, key string, defaultVal int) int {
	switch v := attrs[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return defaultVal
}
