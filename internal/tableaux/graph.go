// Package tableaux implements the tableaux graph, arena memory manager,
// dependency-directed backtracking, and rule-driven expansion engine that
// together decide consistency and satisfiability for a DL ontology.
package tableaux

import (
	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
)

// NodeId is a dense integer identifier assigned by a monotonic counter.
type NodeId int

const smallNodeCapacity = 8

// Node carries a duplicate-free concept label set. Storage starts as a
// small slice (the common case of a handful of labels per node) and is
// promoted to a map once the label count exceeds smallNodeCapacity, so
// membership tests stay O(1) on large nodes without paying map overhead
// on small ones.
type Node struct {
	ID       NodeId
	concepts []ontology.ClassExpression
	promoted map[string]ontology.ClassExpression
}

func newNode(id NodeId) *Node { return &Node{ID: id} }

// AddConcept adds c to the node's label set; it is a no-op if already
// present, matching spec.md invariant 5 (duplicate-free label sets).
func (n *Node) AddConcept(c ontology.ClassExpression) bool {
	if n.ContainsConcept(c) {
		return false
	}
	if n.promoted != nil {
		n.promoted[c.Key()] = c
		return true
	}
	if len(n.concepts) < smallNodeCapacity {
		n.concepts = append(n.concepts, c)
		return true
	}
	n.promoted = make(map[string]ontology.ClassExpression, len(n.concepts)+1)
	for _, e := range n.concepts {
		n.promoted[e.Key()] = e
	}
	n.concepts = nil
	n.promoted[c.Key()] = c
	return true
}

// RemoveConcept removes the concept with the given key, for use during
// change-log rollback. It is a no-op if the key isn't present.
func (n *Node) RemoveConcept(key string) {
	if n.promoted != nil {
		delete(n.promoted, key)
		return
	}
	for i, e := range n.concepts {
		if e.Key() == key {
			n.concepts = append(n.concepts[:i], n.concepts[i+1:]...)
			return
		}
	}
}

func (n *Node) ContainsConcept(c ontology.ClassExpression) bool {
	return n.ContainsConceptKey(c.Key())
}

func (n *Node) ContainsConceptKey(key string) bool {
	if n.promoted != nil {
		_, ok := n.promoted[key]
		return ok
	}
	for _, e := range n.concepts {
		if e.Key() == key {
			return true
		}
	}
	return false
}

// Concepts returns a snapshot of the node's label set.
func (n *Node) Concepts() []ontology.ClassExpression {
	if n.promoted != nil {
		out := make([]ontology.ClassExpression, 0, len(n.promoted))
		for _, e := range n.promoted {
			out = append(out, e)
		}
		return out
	}
	out := make([]ontology.ClassExpression, len(n.concepts))
	copy(out, n.concepts)
	return out
}

// Len returns the number of concepts on the node.
func (n *Node) Len() int {
	if n.promoted != nil {
		return len(n.promoted)
	}
	return len(n.concepts)
}

type edgeRecord struct {
	From     NodeId
	Property iri.IRI
	To       NodeId
}

type changeKind int

const (
	changeAddNode changeKind = iota
	changeAddEdge
	changeAddConcept
)

type changeRecord struct {
	Kind       changeKind
	NodeID     NodeId
	Edge       edgeRecord
	ConceptKey string
}

// Graph is a directed labeled multigraph: nodes carrying concept labels,
// edges typed by object property. Every mutation is recorded to an
// append-only change log so the expansion engine can undo a branch on
// backtracking.
type Graph struct {
	nodes        []*Node
	edges        []edgeRecord
	forwardIndex map[NodeId]map[string][]NodeId
	ancestors    map[NodeId][]NodeId
	changeLog    []changeRecord
	root         NodeId
}

// NewGraph creates a graph with a single root node.
func NewGraph() *Graph {
	g := &Graph{
		forwardIndex: make(map[NodeId]map[string][]NodeId),
		ancestors:    make(map[NodeId][]NodeId),
	}
	g.root = g.AddNode()
	return g
}

// Root returns the distinguished root node.
func (g *Graph) Root() NodeId { return g.root }

// AddNode allocates a new node with no ancestors.
func (g *Graph) AddNode() NodeId {
	id := NodeId(len(g.nodes))
	g.nodes = append(g.nodes, newNode(id))
	g.changeLog = append(g.changeLog, changeRecord{Kind: changeAddNode, NodeID: id})
	return id
}

// AddSuccessorNode allocates a new node as a successor of parent, so that
// blocking can compare it against its ancestor chain.
func (g *Graph) AddSuccessorNode(parent NodeId) NodeId {
	id := g.AddNode()
	chain := make([]NodeId, 0, len(g.ancestors[parent])+1)
	chain = append(chain, g.ancestors[parent]...)
	chain = append(chain, parent)
	g.ancestors[id] = chain
	return id
}

// Ancestors returns the ancestor chain of node, root-first.
func (g *Graph) Ancestors(node NodeId) []NodeId {
	out := make([]NodeId, len(g.ancestors[node]))
	copy(out, g.ancestors[node])
	return out
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeId) *Node { return g.nodes[id] }

// NodeCount returns the number of allocated nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// AddEdge records a (from, property, to) triple and indexes it for O(1)
// forward lookup.
func (g *Graph) AddEdge(from NodeId, property iri.IRI, to NodeId) {
	g.edges = append(g.edges, edgeRecord{From: from, Property: property, To: to})
	if g.forwardIndex[from] == nil {
		g.forwardIndex[from] = make(map[string][]NodeId)
	}
	g.forwardIndex[from][property.String()] = append(g.forwardIndex[from][property.String()], to)
	g.changeLog = append(g.changeLog, changeRecord{Kind: changeAddEdge, Edge: edgeRecord{From: from, Property: property, To: to}})
}

// AddConcept adds c to node's label set and logs the change if it wasn't
// already present.
func (g *Graph) AddConcept(node NodeId, c ontology.ClassExpression) bool {
	added := g.nodes[node].AddConcept(c)
	if added {
		g.changeLog = append(g.changeLog, changeRecord{Kind: changeAddConcept, NodeID: node, ConceptKey: c.Key()})
	}
	return added
}

// Successors returns the R-successors of node via forward index.
func (g *Graph) Successors(node NodeId, property iri.IRI) []NodeId {
	return g.forwardIndex[node][property.String()]
}

// Predecessors returns the R-predecessors of node, found by linear scan
// of the edge list (spec.md leaves the choice of reverse-index vs scan to
// the implementer; predecessor lookups are far less frequent than
// successor lookups in practice, so a scan is fine here).
func (g *Graph) Predecessors(node NodeId, property iri.IRI) []NodeId {
	var out []NodeId
	for _, e := range g.edges {
		if e.To == node && e.Property.Equal(property) {
			out = append(out, e.From)
		}
	}
	return out
}

func (g *Graph) ContainsConcept(node NodeId, c ontology.ClassExpression) bool {
	return g.nodes[node].ContainsConcept(c)
}

// Clear discards every node, edge, and change-log entry, leaving a fresh
// root.
func (g *Graph) Clear() {
	g.nodes = nil
	g.edges = nil
	g.forwardIndex = make(map[NodeId]map[string][]NodeId)
	g.ancestors = make(map[NodeId][]NodeId)
	g.changeLog = nil
	g.root = g.AddNode()
}

// Checkpoint returns a position in the change log suitable for a later
// RollbackTo call.
func (g *Graph) Checkpoint() int { return len(g.changeLog) }

// RollbackTo undoes every change recorded since checkpoint, in reverse
// order. It assumes nodes and edges are only ever appended between the
// checkpoint and the rollback (true for this engine: backtracking always
// unwinds to an earlier point in the same depth-first exploration).
func (g *Graph) RollbackTo(checkpoint int) {
	for i := len(g.changeLog) - 1; i >= checkpoint; i-- {
		rec := g.changeLog[i]
		switch rec.Kind {
		case changeAddNode:
			g.nodes = g.nodes[:rec.NodeID]
		case changeAddEdge:
			if len(g.edges) > 0 {
				g.edges = g.edges[:len(g.edges)-1]
			}
			key := rec.Edge.Property.String()
			lst := g.forwardIndex[rec.Edge.From][key]
			if len(lst) > 0 {
				g.forwardIndex[rec.Edge.From][key] = lst[:len(lst)-1]
			}
		case changeAddConcept:
			g.nodes[rec.NodeID].RemoveConcept(rec.ConceptKey)
		}
	}
	g.changeLog = g.changeLog[:checkpoint]
}
