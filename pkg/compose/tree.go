package compose

import (
	"sort"
	"strings"
)

// DirsTree is a path-segment trie over the relpaths of enabled
// directories. It answers one query: the direct child segments below a
// given path. The tree is rebuilt from scratch for every evaluation and
// never mutated incrementally.
type DirsTree struct {
	root *treeNode
}

type treeNode struct {
	children map[string]*treeNode
}

// NewDirsTree builds the trie for a set of relpaths. Each relpath is
// turned into a singleton chain of segments and all chains are merged
// child-wise, so insertion order does not matter.
func NewDirsTree(relpaths []string) *DirsTree {
	root := &treeNode{}
	for _, rp := range relpaths {
		root = mergeNodes(root, chainFor(strings.Split(rp, "/")))
	}
	return &DirsTree{root: root}
}

// chainFor builds the single-branch trie holding one path.
func chainFor(segments []string) *treeNode {
	node := &treeNode{}
	if len(segments) == 0 {
		return node
	}
	node.children = map[string]*treeNode{
		segments[0]: chainFor(segments[1:]),
	}
	return node
}

// mergeNodes folds two tries into one, merging children by segment name.
func mergeNodes(a, b *treeNode) *treeNode {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.children == nil && len(b.children) > 0 {
		a.children = make(map[string]*treeNode, len(b.children))
	}
	for seg, child := range b.children {
		a.children[seg] = mergeNodes(a.children[seg], child)
	}
	return a
}

// Children returns the sorted direct child segments below the given
// relpath, or nil when the path is not part of the tree or has no
// children.
func (t *DirsTree) Children(relpath string) []string {
	node := t.root
	if relpath != "" {
		for _, seg := range strings.Split(relpath, "/") {
			child, ok := node.children[seg]
			if !ok {
				return nil
			}
			node = child
		}
	}

	if len(node.children) == 0 {
		return nil
	}

	segments := make([]string, 0, len(node.children))
	for seg := range node.children {
		segments = append(segments, seg)
	}
	sort.Strings(segments)
	return segments
}

// Contains reports whether the exact relpath is part of the tree, either
// as a leaf or as an interior node.
func (t *DirsTree) Contains(relpath string) bool {
	node := t.root
	for _, seg := range strings.Split(relpath, "/") {
		child, ok := node.children[seg]
		if !ok {
			return false
		}
		node = child
	}
	return true
}
