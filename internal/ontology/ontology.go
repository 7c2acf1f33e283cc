package ontology

import (
	"sync"

	"owlreasoner/internal/iri"
)

// ValidationError reports an axiom rejected by strict-mode checking.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return "ontology: validation failed: " + e.Message }

// Ontology is an indexed store of entities and axioms. Insertion is
// idempotent: adding the same entity or axiom twice performs no further
// mutation. In strict mode, axioms referencing undeclared entities are
// rejected with ValidationError; otherwise they are silently admitted.
type Ontology struct {
	mu sync.RWMutex

	ontologyIRI *iri.IRI
	annotations []Annotation

	classes              map[string]*Class
	objectProperties     map[string]*ObjectProperty
	dataProperties       map[string]*DataProperty
	annotationProperties map[string]*AnnotationProperty
	namedIndividuals     map[string]*NamedIndividual

	axiomsByType map[AxiomType][]Axiom
	axiomKeys    map[AxiomType]map[string]bool

	imports map[string]iri.IRI

	strict bool
}

// New creates an empty ontology. strict controls whether axioms over
// undeclared entities are rejected (true) or silently admitted (false).
func New(strict bool) *Ontology {
	return &Ontology{
		classes:              make(map[string]*Class),
		objectProperties:     make(map[string]*ObjectProperty),
		dataProperties:       make(map[string]*DataProperty),
		annotationProperties: make(map[string]*AnnotationProperty),
		namedIndividuals:     make(map[string]*NamedIndividual),
		axiomsByType:         make(map[AxiomType][]Axiom),
		axiomKeys:            make(map[AxiomType]map[string]bool),
		imports:              make(map[string]iri.IRI),
		strict:               strict,
	}
}

// SetIRI sets the ontology's own IRI.
func (o *Ontology) SetIRI(i iri.IRI) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ontologyIRI = &i
}

// IRI returns the ontology's own IRI, if set.
func (o *Ontology) IRI() (iri.IRI, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.ontologyIRI == nil {
		return iri.IRI{}, false
	}
	return *o.ontologyIRI, true
}

// AddAnnotation attaches an ontology-level annotation.
func (o *Ontology) AddAnnotation(a Annotation) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.annotations = append(o.annotations, a)
}

// Annotations returns the ontology-level annotations.
func (o *Ontology) Annotations() []Annotation {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Annotation, len(o.annotations))
	copy(out, o.annotations)
	return out
}

// --- Entities ---

func (o *Ontology) AddClass(c *Class) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := c.IRI.String()
	if _, exists := o.classes[key]; exists {
		return nil
	}
	o.classes[key] = c
	return nil
}

func (o *Ontology) GetClass(i iri.IRI) (*Class, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	c, ok := o.classes[i.String()]
	return c, ok
}

func (o *Ontology) Classes() []*Class {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*Class, 0, len(o.classes))
	for _, c := range o.classes {
		out = append(out, c)
	}
	return out
}

func (o *Ontology) AddObjectProperty(p *ObjectProperty) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := p.IRI.String()
	if _, exists := o.objectProperties[key]; exists {
		return nil
	}
	if p.Characteristics == nil {
		p.Characteristics = make(map[ObjectPropertyCharacteristic]bool)
	}
	o.objectProperties[key] = p
	return nil
}

func (o *Ontology) GetObjectProperty(i iri.IRI) (*ObjectProperty, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.objectProperties[i.String()]
	return p, ok
}

func (o *Ontology) ObjectProperties() []*ObjectProperty {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*ObjectProperty, 0, len(o.objectProperties))
	for _, p := range o.objectProperties {
		out = append(out, p)
	}
	return out
}

func (o *Ontology) AddDataProperty(p *DataProperty) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := p.IRI.String()
	if _, exists := o.dataProperties[key]; exists {
		return nil
	}
	if p.Characteristics == nil {
		p.Characteristics = make(map[DataPropertyCharacteristic]bool)
	}
	o.dataProperties[key] = p
	return nil
}

func (o *Ontology) GetDataProperty(i iri.IRI) (*DataProperty, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.dataProperties[i.String()]
	return p, ok
}

func (o *Ontology) DataProperties() []*DataProperty {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*DataProperty, 0, len(o.dataProperties))
	for _, p := range o.dataProperties {
		out = append(out, p)
	}
	return out
}

func (o *Ontology) AddAnnotationProperty(p *AnnotationProperty) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := p.IRI.String()
	if _, exists := o.annotationProperties[key]; exists {
		return nil
	}
	o.annotationProperties[key] = p
	return nil
}

func (o *Ontology) GetAnnotationProperty(i iri.IRI) (*AnnotationProperty, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.annotationProperties[i.String()]
	return p, ok
}

func (o *Ontology) AnnotationProperties() []*AnnotationProperty {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*AnnotationProperty, 0, len(o.annotationProperties))
	for _, p := range o.annotationProperties {
		out = append(out, p)
	}
	return out
}

func (o *Ontology) AddNamedIndividual(ind *NamedIndividual) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := ind.IRI.String()
	if _, exists := o.namedIndividuals[key]; exists {
		return nil
	}
	o.namedIndividuals[key] = ind
	return nil
}

func (o *Ontology) GetNamedIndividual(i iri.IRI) (*NamedIndividual, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ind, ok := o.namedIndividuals[i.String()]
	return ind, ok
}

func (o *Ontology) NamedIndividuals() []*NamedIndividual {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*NamedIndividual, 0, len(o.namedIndividuals))
	for _, ind := range o.namedIndividuals {
		out = append(out, ind)
	}
	return out
}

// --- Imports ---

func (o *Ontology) AddImport(i iri.IRI) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.imports[i.String()] = i
}

func (o *Ontology) Imports() []iri.IRI {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]iri.IRI, 0, len(o.imports))
	for _, i := range o.imports {
		out = append(out, i)
	}
	return out
}

// --- Axioms ---

// AddAxiom inserts ax into the index for its kind. Duplicate axioms (same
// Key) are a no-op. In strict mode, an axiom referencing an undeclared
// class/property/individual is rejected with ValidationError.
func (o *Ontology) AddAxiom(ax Axiom) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.strict {
		if err := o.checkDeclaredLocked(ax); err != nil {
			return err
		}
	}

	kind := ax.Kind()
	if o.axiomKeys[kind] == nil {
		o.axiomKeys[kind] = make(map[string]bool)
	}
	key := ax.Key()
	if o.axiomKeys[kind][key] {
		return nil
	}
	o.axiomKeys[kind][key] = true
	o.axiomsByType[kind] = append(o.axiomsByType[kind], ax)
	return nil
}

// AxiomsOfKind returns every stored axiom of the given kind.
func (o *Ontology) AxiomsOfKind(kind AxiomType) []Axiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Axiom, len(o.axiomsByType[kind]))
	copy(out, o.axiomsByType[kind])
	return out
}

// Axioms returns every stored axiom, across all kinds.
func (o *Ontology) Axioms() []Axiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var out []Axiom
	for kind := AxiomType(0); kind < numAxiomTypes; kind++ {
		out = append(out, o.axiomsByType[kind]...)
	}
	return out
}

// AxiomCount returns the total number of stored axioms.
func (o *Ontology) AxiomCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	n := 0
	for _, axs := range o.axiomsByType {
		n += len(axs)
	}
	return n
}

// SubClassAxioms, EquivalentClassesAxioms, DisjointClassesAxioms, and
// SubObjectPropertyAxioms are typed accessors used by the rule extractor.
func (o *Ontology) SubClassAxioms() []SubClassOf {
	return typed[SubClassOf](o, AxiomSubClassOf)
}
func (o *Ontology) EquivalentClassesAxioms() []EquivalentClasses {
	return typed[EquivalentClasses](o, AxiomEquivalentClasses)
}
func (o *Ontology) DisjointClassesAxioms() []DisjointClasses {
	return typed[DisjointClasses](o, AxiomDisjointClasses)
}
func (o *Ontology) SubObjectPropertyAxioms() []SubObjectPropertyOf {
	return typed[SubObjectPropertyOf](o, AxiomSubObjectPropertyOf)
}

func typed[T Axiom](o *Ontology, kind AxiomType) []T {
	raw := o.AxiomsOfKind(kind)
	out := make([]T, 0, len(raw))
	for _, a := range raw {
		out = append(out, a.(T))
	}
	return out
}

// checkDeclaredLocked rejects axioms over undeclared entities when the
// store is in strict mode. Callers must hold o.mu.
func (o *Ontology) checkDeclaredLocked(ax Axiom) error {
	refs := referencedIRIs(ax)
	for _, r := range refs.classes {
		if _, ok := o.classes[r.String()]; !ok {
			return &ValidationError{Message: "undeclared class: " + r.String()}
		}
	}
	for _, r := range refs.objectProperties {
		if _, ok := o.objectProperties[r.String()]; !ok {
			return &ValidationError{Message: "undeclared object property: " + r.String()}
		}
	}
	for _, r := range refs.dataProperties {
		if _, ok := o.dataProperties[r.String()]; !ok {
			return &ValidationError{Message: "undeclared data property: " + r.String()}
		}
	}
	for _, r := range refs.individuals {
		switch ind := r.(type) {
		case NamedIndividual:
			if _, ok := o.namedIndividuals[ind.IRI.String()]; !ok {
				return &ValidationError{Message: "undeclared individual: " + ind.IRI.String()}
			}
		case AnonymousIndividual:
			// Anonymous individuals are never pre-declared; admitted always.
		}
	}
	return nil
}

type entityRefs struct {
	classes          []iri.IRI
	objectProperties []iri.IRI
	dataProperties   []iri.IRI
	individuals      []Individual
}

func (r *entityRefs) addClassExpr(ce ClassExpression) {
	if ce == nil {
		return
	}
	switch v := ce.(type) {
	case ClassName:
		r.classes = append(r.classes, v.IRI)
	case ObjectIntersectionOf:
		for _, o := range v.Operands {
			r.addClassExpr(o)
		}
	case ObjectUnionOf:
		for _, o := range v.Operands {
			r.addClassExpr(o)
		}
	case ObjectComplementOf:
		r.addClassExpr(v.Operand)
	case ObjectOneOf:
		r.individuals = append(r.individuals, v.Individuals...)
	case ObjectSomeValuesFrom:
		r.addPropExpr(v.Property)
		r.addClassExpr(v.Filler)
	case ObjectAllValuesFrom:
		r.addPropExpr(v.Property)
		r.addClassExpr(v.Filler)
	case ObjectHasValue:
		r.addPropExpr(v.Property)
		r.individuals = append(r.individuals, v.Individual)
	case ObjectHasSelf:
		r.addPropExpr(v.Property)
	case ObjectCardinality:
		r.addPropExpr(v.Property)
		r.addClassExpr(v.Filler)
	case DataSomeValuesFrom:
		r.dataProperties = append(r.dataProperties, v.Property)
	case DataAllValuesFrom:
		r.dataProperties = append(r.dataProperties, v.Property)
	case DataHasValue:
		r.dataProperties = append(r.dataProperties, v.Property)
	case DataCardinality:
		r.dataProperties = append(r.dataProperties, v.Property)
	}
}

func (r *entityRefs) addPropExpr(pe ObjectPropertyExpression) {
	base, _ := ResolvePropertyDirection(pe)
	if !base.IRI.IsZero() {
		r.objectProperties = append(r.objectProperties, base.IRI)
	}
}

// referencedIRIs walks ax and collects the entity IRIs/individuals it
// mentions, for strict-mode validation.
func referencedIRIs(ax Axiom) entityRefs {
	var r entityRefs
	switch v := ax.(type) {
	case SubClassOf:
		r.addClassExpr(v.Sub)
		r.addClassExpr(v.Super)
	case EquivalentClasses:
		for _, c := range v.Classes {
			r.addClassExpr(c)
		}
	case DisjointClasses:
		for _, c := range v.Classes {
			r.addClassExpr(c)
		}
	case ClassAssertion:
		r.individuals = append(r.individuals, v.Individual)
		r.addClassExpr(v.Class)
	case ObjectPropertyAssertion:
		r.individuals = append(r.individuals, v.Subject, v.Object)
		r.addPropExpr(v.Property)
	case DataPropertyAssertion:
		r.individuals = append(r.individuals, v.Subject)
		r.dataProperties = append(r.dataProperties, v.Property)
	case NegativeObjectPropertyAssertion:
		r.individuals = append(r.individuals, v.Subject, v.Object)
		r.addPropExpr(v.Property)
	case NegativeDataPropertyAssertion:
		r.individuals = append(r.individuals, v.Subject)
		r.dataProperties = append(r.dataProperties, v.Property)
	case SubObjectPropertyOf:
		r.addPropExpr(v.Sub)
		r.addPropExpr(v.Super)
	case SubDataPropertyOf:
		r.dataProperties = append(r.dataProperties, v.Sub, v.Super)
	case EquivalentObjectProperties:
		for _, p := range v.Properties {
			r.addPropExpr(p)
		}
	case DisjointObjectProperties:
		for _, p := range v.Properties {
			r.addPropExpr(p)
		}
	case EquivalentDataProperties:
		r.dataProperties = append(r.dataProperties, v.Properties...)
	case DisjointDataProperties:
		r.dataProperties = append(r.dataProperties, v.Properties...)
	case ObjectPropertyCharacteristicAxiom:
		r.addPropExpr(v.Property)
	case DataPropertyCharacteristicAxiom:
		r.dataProperties = append(r.dataProperties, v.Property)
	case SubPropertyChainOf:
		for _, p := range v.Chain {
			r.addPropExpr(p)
		}
		r.addPropExpr(v.Super)
	case InverseObjectProperties:
		r.addPropExpr(v.First)
		r.addPropExpr(v.Second)
	case SameIndividual:
		r.individuals = append(r.individuals, v.Individuals...)
	case DifferentIndividuals:
		r.individuals = append(r.individuals, v.Individuals...)
	case HasKey:
		r.addClassExpr(v.Class)
		for _, p := range v.ObjectProperties {
			r.addPropExpr(p)
		}
		r.dataProperties = append(r.dataProperties, v.DataProperties...)
	case DataPropertyDomain:
		r.dataProperties = append(r.dataProperties, v.Property)
		r.addClassExpr(v.Domain)
	case DataPropertyRange:
		r.dataProperties = append(r.dataProperties, v.Property)
	case ObjectPropertyDomain:
		r.addPropExpr(v.Property)
		r.addClassExpr(v.Domain)
	case ObjectPropertyRange:
		r.addPropExpr(v.Property)
		r.addClassExpr(v.Range)
	// AnnotationAssertion, Sub/PropertyDomain/Range annotation axioms, and
	// Import are not entity-reference-checked: annotation properties and
	// import targets are not required to be pre-declared entities.
	}
	return r
}
