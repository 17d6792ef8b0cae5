package tree

// WalkMode defines the order of visiting siblings.
type WalkMode int

const (
	WalkLtr WalkMode = 0 // left to right
	WalkRtl WalkMode = 1 // right to left
)

// WalkerFlags returned by visitor control further traversal.
type WalkerFlags int

const (
	// WalkerSkipChildren prevents visiting children of current node.
	WalkerSkipChildren WalkerFlags = 1 << iota
	// WalkerSkipSiblings prevents visiting remaining siblings of current node.
	WalkerSkipSiblings
	// WalkerStop stops traversal.
	WalkerStop
)

// WalkStat describes visited node.
type WalkStat struct {
	Node Node
	// Level is the depth relative to the starting node (0 for the starting node).
	Level int
	// Index is the index of Node in its parent's children list (0 for the starting node).
	Index int
}

// Visitor is called for each visited node, parents are visited before their children.
type Visitor func(ws WalkStat) WalkerFlags

// Walk performs depth-first traversal of a subtree starting at n.
func Walk(n Node, mode WalkMode, visitor Visitor) {
	if n != nil {
		walk(WalkStat{n, 0, 0}, mode == WalkRtl, visitor)
	}
}

func walk(ws WalkStat, rtl bool, visitor Visitor) WalkerFlags {
	flags := visitor(ws)
	if flags&(WalkerStop|WalkerSkipChildren) != 0 {
		return flags
	}

	ntn, valid := ws.Node.(*NonTermNode)
	if !valid {
		return flags
	}

	last := len(ntn.children) - 1
	for i := range ntn.children {
		index := i
		if rtl {
			index = last - i
		}
		cf := walk(WalkStat{ntn.children[index], ws.Level + 1, index}, rtl, visitor)
		if cf&WalkerStop != 0 {
			return cf
		}
		if cf&WalkerSkipSiblings != 0 {
			break
		}
	}
	return flags
}
