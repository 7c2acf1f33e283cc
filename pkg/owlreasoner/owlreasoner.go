// Package owlreasoner is the public surface of the reasoner module: it
// re-exports internal/reasoner's facade, internal/ontology's entity and
// axiom types, and internal/iri's identifier type, so external tools can
// depend on a single stable import path instead of reaching into internal/.
package owlreasoner

import (
	"owlreasoner/internal/config"
	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/reasoner"
)

// Reasoner answers consistency, satisfiability, classification, and
// instance-retrieval queries over an Ontology.
type Reasoner = reasoner.Reasoner

// Error and ErrorKind report why a Reasoner method failed to produce a
// verdict.
type Error = reasoner.Error
type ErrorKind = reasoner.ErrorKind

const (
	KindTimeout        = reasoner.KindTimeout
	KindCancelled      = reasoner.KindCancelled
	KindDepthExhausted = reasoner.KindDepthExhausted
	KindInvalidInput   = reasoner.KindInvalidInput
	KindInternal       = reasoner.KindInternal
)

// New builds a Reasoner over o, interning identifiers through in. cfg and
// logger may be nil.
var New = reasoner.New

// Config controls a Reasoner's expansion depth, timeout, and cache sizes.
type Config = config.ReasonerConfig

// DefaultConfig returns the default Config.
var DefaultConfig = config.DefaultReasonerConfig

// Interner maps IRI strings to the compact, comparable IRI values the rest
// of the module operates on.
type Interner = iri.Interner

// NewInterner builds an Interner bounded at the given capacity, evicting
// the least-recently-inserted entry beyond it; capacity <= 0 selects
// iri.DefaultCapacity (10000).
var NewInterner = iri.New

// IRI is a compact, comparable handle for an interned IRI string.
type IRI = iri.IRI

// Ontology is an indexed store of entities and axioms.
type Ontology = ontology.Ontology

// NewOntology builds an empty Ontology. strict controls whether axioms over
// undeclared entities are rejected or silently admitted.
var NewOntology = ontology.New

// Entity types.
type (
	Class               = ontology.Class
	ObjectProperty       = ontology.ObjectProperty
	DataProperty         = ontology.DataProperty
	AnnotationProperty   = ontology.AnnotationProperty
	NamedIndividual      = ontology.NamedIndividual
	AnonymousIndividual  = ontology.AnonymousIndividual
	Annotation           = ontology.Annotation
)

// Class and property expression types.
type (
	ClassExpression          = ontology.ClassExpression
	ClassName                = ontology.ClassName
	ObjectIntersectionOf     = ontology.ObjectIntersectionOf
	ObjectUnionOf            = ontology.ObjectUnionOf
	ObjectComplementOf       = ontology.ObjectComplementOf
	ObjectSomeValuesFrom     = ontology.ObjectSomeValuesFrom
	ObjectAllValuesFrom      = ontology.ObjectAllValuesFrom
	ObjectHasValue           = ontology.ObjectHasValue
	ObjectHasSelf            = ontology.ObjectHasSelf
	ObjectCardinality        = ontology.ObjectCardinality
	ObjectPropertyExpression = ontology.ObjectPropertyExpression
	NamedObjectProperty      = ontology.NamedObjectProperty
	InverseObjectProperty    = ontology.InverseObjectProperty
)

// Axiom types.
type (
	Axiom                      = ontology.Axiom
	SubClassOf                 = ontology.SubClassOf
	EquivalentClasses          = ontology.EquivalentClasses
	DisjointClasses            = ontology.DisjointClasses
	ClassAssertion             = ontology.ClassAssertion
	ObjectPropertyAssertion    = ontology.ObjectPropertyAssertion
	SubObjectPropertyOf        = ontology.SubObjectPropertyOf
	EquivalentObjectProperties = ontology.EquivalentObjectProperties
	DisjointObjectProperties   = ontology.DisjointObjectProperties
	InverseObjectProperties    = ontology.InverseObjectProperties
)

// Object property characteristics.
const (
	Functional        = ontology.Functional
	InverseFunctional = ontology.InverseFunctional
	Transitive        = ontology.Transitive
	Symmetric         = ontology.Symmetric
	Asymmetric        = ontology.Asymmetric
	Reflexive         = ontology.Reflexive
	Irreflexive       = ontology.Irreflexive
)
