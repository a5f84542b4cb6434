// Package hierarchy provides a read-only index over a program's four-level
// process tree. The index is built once per editing session from the flat
// node list a HierarchyRepository returns; all queries are O(1) map lookups
// after the O(n) build.
package hierarchy

import (
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// Index answers parent/child and L3-ancestor queries over a process node
// snapshot. Orphaned nodes (missing or cyclic parent chains) are tolerated:
// they report no L3 ancestor and are treated as unscopable by callers.
type Index struct {
	byID       map[string]types.ProcessNode
	children   map[string][]types.ProcessNode
	roots      []types.ProcessNode
	l3Ancestor map[string]string
}

// NewIndex builds an index from a flat node list. Input order is preserved
// in ChildrenOf results. Nodes failing structural validation are skipped;
// they cannot participate in derivation anyway.
func NewIndex(nodes []types.ProcessNode) *Index {
	idx := &Index{
		byID:       make(map[string]types.ProcessNode, len(nodes)),
		children:   make(map[string][]types.ProcessNode),
		l3Ancestor: make(map[string]string, len(nodes)),
	}
	for _, n := range nodes {
		if n.Validate() != nil {
			continue
		}
		idx.byID[n.ID] = n
	}
	for _, n := range nodes {
		if _, ok := idx.byID[n.ID]; !ok {
			continue
		}
		if n.Level == types.LevelValueChain {
			idx.roots = append(idx.roots, n)
			continue
		}
		idx.children[n.ParentID] = append(idx.children[n.ParentID], n)
	}
	for id := range idx.byID {
		if anc, ok := idx.resolveL3(id); ok {
			idx.l3Ancestor[id] = anc
		}
	}
	return idx
}

// resolveL3 walks the parent chain from id to its L3 ancestor. Returns
// false for nodes above L3, orphans, and malformed chains. The walk is
// bounded by the level count, so a cyclic parent chain cannot loop.
func (idx *Index) resolveL3(id string) (string, bool) {
	cur, ok := idx.byID[id]
	if !ok {
		return "", false
	}
	for hops := 0; hops <= types.LevelProcessStep; hops++ {
		if cur.Level == types.LevelProcess {
			return cur.ID, true
		}
		if cur.Level < types.LevelProcess {
			return "", false
		}
		cur, ok = idx.byID[cur.ParentID]
		if !ok {
			return "", false
		}
	}
	return "", false
}

// Node returns the node with the given ID.
func (idx *Index) Node(id string) (types.ProcessNode, bool) {
	n, ok := idx.byID[id]
	return n, ok
}

// Contains reports whether id is present in the indexed snapshot.
func (idx *Index) Contains(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// ChildrenOf returns the children of parentID at the given level, in input
// order. Level-1 roots are returned for an empty parentID. Children whose
// level does not match are filtered out, so a malformed snapshot cannot
// leak nodes across levels.
func (idx *Index) ChildrenOf(level int, parentID string) []types.ProcessNode {
	var candidates []types.ProcessNode
	if level == types.LevelValueChain && parentID == "" {
		candidates = idx.roots
	} else {
		candidates = idx.children[parentID]
	}
	out := make([]types.ProcessNode, 0, len(candidates))
	for _, n := range candidates {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

// L3AncestorOf returns the L3 process governing nodeID: the node itself
// when it is an L3, its parent L3 when it is an L4. ok is false for nodes
// above L3, unknown IDs, and orphans — callers must treat those as
// "cannot be scoped" rather than an error.
func (idx *Index) L3AncestorOf(nodeID string) (string, bool) {
	anc, ok := idx.l3Ancestor[nodeID]
	return anc, ok
}

// L3Nodes returns every L3 process in the snapshot, in input order per
// parent.
func (idx *Index) L3Nodes() []types.ProcessNode {
	var out []types.ProcessNode
	for _, l1 := range idx.roots {
		for _, l2 := range idx.ChildrenOf(types.LevelProcessArea, l1.ID) {
			out = append(out, idx.ChildrenOf(types.LevelProcess, l2.ID)...)
		}
	}
	return out
}

// StepsOf returns the L4 process steps under an L3 process.
func (idx *Index) StepsOf(l3ID string) []types.ProcessNode {
	return idx.ChildrenOf(types.LevelProcessStep, l3ID)
}
