package main

import (
	"sort"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/reasoner"
)

// buildReasoner loads the ontology fixture at --ontology and wraps it in a
// freshly classified Reasoner. Every command re-parses the fixture: this
// CLI is stateless between invocations, unlike a long-lived reasoning
// daemon, so there is no persisted tableau or closure to invalidate.
func buildReasoner() (*reasoner.Reasoner, *ontology.Ontology, *iri.Interner, error) {
	if err := requireOntologyPath(); err != nil {
		return nil, nil, nil, &loadError{err}
	}
	o, in, err := loadOntology(ontologyPath)
	if err != nil {
		return nil, nil, nil, &loadError{err}
	}
	r, err := reasoner.New(o, in, reasonerConfig(), logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return r, o, in, nil
}

// resolveIRI interns tok (expanding the ex: shorthand) against in without
// adding it as a declared entity; used for CLI-supplied query arguments
// that name an existing class/individual by IRI.
func resolveIRI(in *iri.Interner, tok string) (iri.IRI, error) {
	return in.Intern(expandIRI(tok))
}

func sortIRIs(ids []iri.IRI) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
