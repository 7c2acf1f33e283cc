package ontology

import (
	"sort"
	"strconv"
	"strings"

	"owlreasoner/internal/iri"
)

// AxiomType identifies the kind of an axiom for indexed retrieval. The
// store keeps one slice per AxiomType so a kind-specific query is
// O(axioms-of-that-kind), not O(total-axioms).
type AxiomType int

const (
	AxiomSubClassOf AxiomType = iota
	AxiomEquivalentClasses
	AxiomDisjointClasses
	AxiomClassAssertion
	AxiomObjectPropertyAssertion
	AxiomDataPropertyAssertion
	AxiomNegativeObjectPropertyAssertion
	AxiomNegativeDataPropertyAssertion
	AxiomSubObjectPropertyOf
	AxiomSubDataPropertyOf
	AxiomEquivalentObjectProperties
	AxiomDisjointObjectProperties
	AxiomEquivalentDataProperties
	AxiomDisjointDataProperties
	AxiomObjectPropertyCharacteristic
	AxiomDataPropertyCharacteristic
	AxiomSubPropertyChainOf
	AxiomInverseObjectProperties
	AxiomSameIndividual
	AxiomDifferentIndividuals
	AxiomHasKey
	AxiomAnnotationAssertion
	AxiomSubAnnotationPropertyOf
	AxiomAnnotationPropertyDomain
	AxiomAnnotationPropertyRange
	AxiomDataPropertyDomain
	AxiomDataPropertyRange
	AxiomObjectPropertyDomain
	AxiomObjectPropertyRange
	AxiomImport

	numAxiomTypes
)

// Axiom is the closed sum type of ontology axioms. Kind identifies the
// index it belongs in; Key is a canonical string used to detect duplicate
// insertion (spec.md invariant: adding the same axiom twice is a no-op).
type Axiom interface {
	Kind() AxiomType
	Key() string
}

type SubClassOf struct{ Sub, Super ClassExpression }
type EquivalentClasses struct{ Classes []ClassExpression }
type DisjointClasses struct{ Classes []ClassExpression }
type ClassAssertion struct {
	Individual Individual
	Class      ClassExpression
}
type ObjectPropertyAssertion struct {
	Subject  Individual
	Property ObjectPropertyExpression
	Object   Individual
}
type DataPropertyAssertion struct {
	Subject  Individual
	Property iri.IRI
	Value    Literal
}
type NegativeObjectPropertyAssertion struct {
	Subject  Individual
	Property ObjectPropertyExpression
	Object   Individual
}
type NegativeDataPropertyAssertion struct {
	Subject  Individual
	Property iri.IRI
	Value    Literal
}
type SubObjectPropertyOf struct{ Sub, Super ObjectPropertyExpression }
type SubDataPropertyOf struct{ Sub, Super iri.IRI }
type EquivalentObjectProperties struct{ Properties []ObjectPropertyExpression }
type DisjointObjectProperties struct{ Properties []ObjectPropertyExpression }
type EquivalentDataProperties struct{ Properties []iri.IRI }
type DisjointDataProperties struct{ Properties []iri.IRI }

// ObjectPropertyCharacteristicAxiom asserts one characteristic (Functional,
// Transitive, ...) of a property expression. spec.md describes "one axiom
// per characteristic"; realized here as a single parameterized struct
// rather than seven near-identical axiom types.
type ObjectPropertyCharacteristicAxiom struct {
	Property       ObjectPropertyExpression
	Characteristic ObjectPropertyCharacteristic
}
type DataPropertyCharacteristicAxiom struct {
	Property       iri.IRI
	Characteristic DataPropertyCharacteristic
}
type SubPropertyChainOf struct {
	Chain []ObjectPropertyExpression
	Super ObjectPropertyExpression
}
type InverseObjectProperties struct{ First, Second ObjectPropertyExpression }
type SameIndividual struct{ Individuals []Individual }
type DifferentIndividuals struct{ Individuals []Individual }
type HasKey struct {
	Class           ClassExpression
	ObjectProperties []ObjectPropertyExpression
	DataProperties   []iri.IRI
}
type AnnotationAssertion struct {
	Subject  iri.IRI
	Property iri.IRI
	Value    AnnotationValue
}
type SubAnnotationPropertyOf struct{ Sub, Super iri.IRI }
type AnnotationPropertyDomain struct{ Property, Domain iri.IRI }
type AnnotationPropertyRange struct{ Property, Range iri.IRI }
type DataPropertyDomain struct {
	Property iri.IRI
	Domain   ClassExpression
}
type DataPropertyRange struct {
	Property iri.IRI
	Range    DataRange
}
type ObjectPropertyDomain struct {
	Property ObjectPropertyExpression
	Domain   ClassExpression
}
type ObjectPropertyRange struct {
	Property ObjectPropertyExpression
	Range    ClassExpression
}
type Import struct{ OntologyIRI iri.IRI }

func (SubClassOf) Kind() AxiomType                          { return AxiomSubClassOf }
func (EquivalentClasses) Kind() AxiomType                    { return AxiomEquivalentClasses }
func (DisjointClasses) Kind() AxiomType                      { return AxiomDisjointClasses }
func (ClassAssertion) Kind() AxiomType                       { return AxiomClassAssertion }
func (ObjectPropertyAssertion) Kind() AxiomType              { return AxiomObjectPropertyAssertion }
func (DataPropertyAssertion) Kind() AxiomType                { return AxiomDataPropertyAssertion }
func (NegativeObjectPropertyAssertion) Kind() AxiomType      { return AxiomNegativeObjectPropertyAssertion }
func (NegativeDataPropertyAssertion) Kind() AxiomType        { return AxiomNegativeDataPropertyAssertion }
func (SubObjectPropertyOf) Kind() AxiomType                  { return AxiomSubObjectPropertyOf }
func (SubDataPropertyOf) Kind() AxiomType                    { return AxiomSubDataPropertyOf }
func (EquivalentObjectProperties) Kind() AxiomType           { return AxiomEquivalentObjectProperties }
func (DisjointObjectProperties) Kind() AxiomType             { return AxiomDisjointObjectProperties }
func (EquivalentDataProperties) Kind() AxiomType             { return AxiomEquivalentDataProperties }
func (DisjointDataProperties) Kind() AxiomType               { return AxiomDisjointDataProperties }
func (ObjectPropertyCharacteristicAxiom) Kind() AxiomType    { return AxiomObjectPropertyCharacteristic }
func (DataPropertyCharacteristicAxiom) Kind() AxiomType      { return AxiomDataPropertyCharacteristic }
func (SubPropertyChainOf) Kind() AxiomType                   { return AxiomSubPropertyChainOf }
func (InverseObjectProperties) Kind() AxiomType              { return AxiomInverseObjectProperties }
func (SameIndividual) Kind() AxiomType                       { return AxiomSameIndividual }
func (DifferentIndividuals) Kind() AxiomType                 { return AxiomDifferentIndividuals }
func (HasKey) Kind() AxiomType                               { return AxiomHasKey }
func (AnnotationAssertion) Kind() AxiomType                   { return AxiomAnnotationAssertion }
func (SubAnnotationPropertyOf) Kind() AxiomType               { return AxiomSubAnnotationPropertyOf }
func (AnnotationPropertyDomain) Kind() AxiomType              { return AxiomAnnotationPropertyDomain }
func (AnnotationPropertyRange) Kind() AxiomType               { return AxiomAnnotationPropertyRange }
func (DataPropertyDomain) Kind() AxiomType                    { return AxiomDataPropertyDomain }
func (DataPropertyRange) Kind() AxiomType                     { return AxiomDataPropertyRange }
func (ObjectPropertyDomain) Kind() AxiomType                  { return AxiomObjectPropertyDomain }
func (ObjectPropertyRange) Kind() AxiomType                   { return AxiomObjectPropertyRange }
func (Import) Kind() AxiomType                                { return AxiomImport }

func classKeys(cs []ClassExpression) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Key()
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func propKeys(ps []ObjectPropertyExpression) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Key()
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func dataPropKeys(ps []iri.IRI) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func indKeys(is []Individual) string {
	parts := make([]string, len(is))
	for i, v := range is {
		parts[i] = v.Key()
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (a SubClassOf) Key() string { return "SubClassOf(" + a.Sub.Key() + "," + a.Super.Key() + ")" }
func (a EquivalentClasses) Key() string {
	return "EquivalentClasses(" + classKeys(a.Classes) + ")"
}
func (a DisjointClasses) Key() string { return "DisjointClasses(" + classKeys(a.Classes) + ")" }
func (a ClassAssertion) Key() string {
	return "ClassAssertion(" + a.Individual.Key() + "," + a.Class.Key() + ")"
}
func (a ObjectPropertyAssertion) Key() string {
	return "ObjectPropertyAssertion(" + a.Subject.Key() + "," + a.Property.Key() + "," + a.Object.Key() + ")"
}
func (a DataPropertyAssertion) Key() string {
	return "DataPropertyAssertion(" + a.Subject.Key() + "," + a.Property.String() + "," + a.Value.Key() + ")"
}
func (a NegativeObjectPropertyAssertion) Key() string {
	return "NegativeObjectPropertyAssertion(" + a.Subject.Key() + "," + a.Property.Key() + "," + a.Object.Key() + ")"
}
func (a NegativeDataPropertyAssertion) Key() string {
	return "NegativeDataPropertyAssertion(" + a.Subject.Key() + "," + a.Property.String() + "," + a.Value.Key() + ")"
}
func (a SubObjectPropertyOf) Key() string {
	return "SubObjectPropertyOf(" + a.Sub.Key() + "," + a.Super.Key() + ")"
}
func (a SubDataPropertyOf) Key() string {
	return "SubDataPropertyOf(" + a.Sub.String() + "," + a.Super.String() + ")"
}
func (a EquivalentObjectProperties) Key() string {
	return "EquivalentObjectProperties(" + propKeys(a.Properties) + ")"
}
func (a DisjointObjectProperties) Key() string {
	return "DisjointObjectProperties(" + propKeys(a.Properties) + ")"
}
func (a EquivalentDataProperties) Key() string {
	return "EquivalentDataProperties(" + dataPropKeys(a.Properties) + ")"
}
func (a DisjointDataProperties) Key() string {
	return "DisjointDataProperties(" + dataPropKeys(a.Properties) + ")"
}
func (a ObjectPropertyCharacteristicAxiom) Key() string {
	return "ObjectPropertyCharacteristic(" + a.Property.Key() + "," + a.Characteristic.String() + ")"
}
func (a DataPropertyCharacteristicAxiom) Key() string {
	return "DataPropertyCharacteristic(" + a.Property.String() + "," + strconv.Itoa(int(a.Characteristic)) + ")"
}
func (a SubPropertyChainOf) Key() string {
	return "SubPropertyChainOf(" + propKeys(a.Chain) + "," + a.Super.Key() + ")"
}
func (a InverseObjectProperties) Key() string {
	return "InverseObjectProperties(" + a.First.Key() + "," + a.Second.Key() + ")"
}
func (a SameIndividual) Key() string       { return "SameIndividual(" + indKeys(a.Individuals) + ")" }
func (a DifferentIndividuals) Key() string { return "DifferentIndividuals(" + indKeys(a.Individuals) + ")" }
func (a HasKey) Key() string {
	return "HasKey(" + a.Class.Key() + ";" + propKeys(a.ObjectProperties) + ";" + dataPropKeys(a.DataProperties) + ")"
}
func (a AnnotationAssertion) Key() string {
	val := ""
	switch v := a.Value.(type) {
	case IRIAnnotationValue:
		val = v.IRI.String()
	case LiteralAnnotationValue:
		val = v.Literal.Key()
	}
	return "AnnotationAssertion(" + a.Subject.String() + "," + a.Property.String() + "," + val + ")"
}
func (a SubAnnotationPropertyOf) Key() string {
	return "SubAnnotationPropertyOf(" + a.Sub.String() + "," + a.Super.String() + ")"
}
func (a AnnotationPropertyDomain) Key() string {
	return "AnnotationPropertyDomain(" + a.Property.String() + "," + a.Domain.String() + ")"
}
func (a AnnotationPropertyRange) Key() string {
	return "AnnotationPropertyRange(" + a.Property.String() + "," + a.Range.String() + ")"
}
func (a DataPropertyDomain) Key() string {
	return "DataPropertyDomain(" + a.Property.String() + "," + a.Domain.Key() + ")"
}
func (a DataPropertyRange) Key() string {
	return "DataPropertyRange(" + a.Property.String() + "," + a.Range.Key() + ")"
}
func (a ObjectPropertyDomain) Key() string {
	return "ObjectPropertyDomain(" + a.Property.Key() + "," + a.Domain.Key() + ")"
}
func (a ObjectPropertyRange) Key() string {
	return "ObjectPropertyRange(" + a.Property.Key() + "," + a.Range.Key() + ")"
}
func (a Import) Key() string { return "Import(" + a.OntologyIRI.String() + ")" }
