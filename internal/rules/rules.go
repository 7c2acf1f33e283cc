// Package rules extracts the working rule index the expansion engine
// consults: owned copies of every SubClassOf, EquivalentClasses,
// DisjointClasses, and SubObjectPropertyOf axiom in an ontology.
package rules

import "owlreasoner/internal/ontology"

// RuleSet is the compiled form of an ontology's structural axioms.
// Re-extraction is cheap (linear in axiom count) and must be redone
// whenever the ontology changes.
type RuleSet struct {
	SubClassRules     []ontology.SubClassOf
	EquivalenceRules  []ontology.EquivalentClasses
	DisjointnessRules []ontology.DisjointClasses
	PropertyRules     []ontology.SubObjectPropertyOf
}

// Extract builds a RuleSet from o.
func Extract(o *ontology.Ontology) *RuleSet {
	return &RuleSet{
		SubClassRules:     o.SubClassAxioms(),
		EquivalenceRules:  o.EquivalentClassesAxioms(),
		DisjointnessRules: o.DisjointClassesAxioms(),
		PropertyRules:     o.SubObjectPropertyAxioms(),
	}
}

// Clear empties every slice by setting it to nil.
func (r *RuleSet) Clear() {
	r.SubClassRules = nil
	r.EquivalenceRules = nil
	r.DisjointnessRules = nil
	r.PropertyRules = nil
}
