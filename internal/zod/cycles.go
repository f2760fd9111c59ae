// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package zod

import (
	"github.com/dacolabs/zodgen/internal/graph"
)

// referencedTypes returns the outgoing edges of n in the dependency graph.
func referencedTypes(n *graph.Node) []*graph.Node {
	var out []*graph.Node
	add := func(ns ...*graph.Node) {
		for _, x := range ns {
			if x != nil {
				out = append(out, x)
			}
		}
	}
	switch n.Kind {
	case graph.KindModel:
		add(n.Base)
		if n.Indexer != nil {
			add(n.Indexer.Key, n.Indexer.Value)
		}
		for _, p := range n.Properties {
			add(p.Type)
		}
	case graph.KindUnion:
		for _, v := range n.Variants {
			add(v.Type)
		}
	case graph.KindUnionVariant, graph.KindModelProperty:
		add(n.Type)
	case graph.KindScalar:
		add(n.Base)
	case graph.KindTuple:
		add(n.Elements...)
	}
	return out
}

// cycleSet is a strongly connected component restricted to the input
// nodes. Cyclic is set when the component loops, including self edges.
type cycleSet struct {
	nodes  []*graph.Node
	cyclic bool
}

type tarjan struct {
	next    int
	index   map[*graph.Node]int
	low     map[*graph.Node]int
	onStack map[*graph.Node]bool
	stack   []*graph.Node
	sets    []cycleSet
}

// CycleSets partitions nodes into strongly connected components of the
// dependency graph, dependencies first. Nodes outside the input are
// traversed but left out of the result.
func CycleSets(nodes []*graph.Node) [][]*graph.Node {
	sets := cycleSets(nodes)
	out := make([][]*graph.Node, len(sets))
	for i, s := range sets {
		out[i] = s.nodes
	}
	return out
}

func cycleSets(nodes []*graph.Node) []cycleSet {
	t := &tarjan{
		index:   make(map[*graph.Node]int),
		low:     make(map[*graph.Node]int),
		onStack: make(map[*graph.Node]bool),
	}
	for _, n := range nodes {
		if _, seen := t.index[n]; !seen {
			t.strongConnect(n)
		}
	}

	input := make(map[*graph.Node]bool, len(nodes))
	for _, n := range nodes {
		input[n] = true
	}
	var out []cycleSet
	for _, s := range t.sets {
		var kept []*graph.Node
		for _, n := range s.nodes {
			if input[n] {
				kept = append(kept, n)
			}
		}
		if len(kept) > 0 {
			out = append(out, cycleSet{nodes: kept, cyclic: s.cyclic})
		}
	}
	return out
}

func (t *tarjan) strongConnect(v *graph.Node) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	selfEdge := false
	for _, w := range referencedTypes(v) {
		if w == v {
			selfEdge = true
		}
		if _, seen := t.index[w]; !seen {
			t.strongConnect(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	var set cycleSet
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		set.nodes = append(set.nodes, w)
		if w == v {
			break
		}
	}
	set.cyclic = len(set.nodes) > 1 || selfEdge
	t.sets = append(t.sets, set)
}

// orderBases moves in-group base models ahead of the models extending
// them, keeping the relative order otherwise.
func orderBases(group []*graph.Node) []*graph.Node {
	in := make(map[*graph.Node]bool, len(group))
	for _, n := range group {
		in[n] = true
	}
	placed := make(map[*graph.Node]bool, len(group))
	out := make([]*graph.Node, 0, len(group))
	var place func(n *graph.Node)
	place = func(n *graph.Node) {
		if placed[n] {
			return
		}
		placed[n] = true
		if n.Base != nil && in[n.Base] {
			place(n.Base)
		}
		out = append(out, n)
	}
	for _, n := range group {
		place(n)
	}
	return out
}
