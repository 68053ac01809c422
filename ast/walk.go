package ast

// WalkStatus 描述了遍历状态。
type WalkStatus int

const (
	// WalkStop 意味着不需要继续遍历。
	WalkStop WalkStatus = iota
	// WalkSkipChildren 意味着不要遍历子节点。
	WalkSkipChildren
	// WalkContinue 意味着继续遍历。
	WalkContinue
)

// Walker 函数定义了遍历节点 n 时需要执行的操作，进入节点设置 entering 为 true，离开节点设置为 false。
type Walker func(n *Node, entering bool) WalkStatus

// Walk 使用深度优先算法遍历指定的树节点 n。
func Walk(n *Node, walker Walker) WalkStatus {
	status := walker(n, true)
	if WalkStop == status {
		return WalkStop
	}
	if WalkSkipChildren != status {
		for c := n.FirstChild; nil != c; {
			next := c.Next // 遍历过程中 c 可能被摘除
			if WalkStop == Walk(c, walker) {
				return WalkStop
			}
			c = next
		}
	}
	return walker(n, false)
}
