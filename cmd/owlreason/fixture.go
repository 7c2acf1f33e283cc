package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
)

// loadOntology parses a line-oriented ontology fixture from path. Each
// non-blank, non-comment line is one declaration or axiom:
//
//	class <iri>
//	objectproperty <iri> [functional|transitive|symmetric|...]
//	individual <iri>
//	subclassof <iri> <iri>
//	equivalentclasses <iri> <iri> [<iri>...]
//	disjointclasses <iri> <iri> [<iri>...]
//	classassertion <individual-iri> <class-iri>
//	objectpropertyassertion <property-iri> <subject-iri> <object-iri>
//
// An "ex:" prefix expands to http://example.org/; anything already
// starting with a scheme passes through unchanged.
func loadOntology(path string) (*ontology.Ontology, *iri.Interner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseOntology(f)
}

func parseOntology(r io.Reader) (*ontology.Ontology, *iri.Interner, error) {
	in := iri.New(256)
	o := ontology.New(false)

	intern := func(tok string) (ontology.ClassExpression, error) {
		i, err := in.Intern(expandIRI(tok))
		if err != nil {
			return nil, err
		}
		return ontology.ClassName{IRI: i}, nil
	}
	internIRI := func(tok string) (iri.IRI, error) {
		return in.Intern(expandIRI(tok))
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		kw := strings.ToLower(fields[0])
		args := fields[1:]

		switch kw {
		case "class":
			if len(args) != 1 {
				return nil, nil, fmt.Errorf("line %d: class wants 1 arg", lineNo)
			}
			i, err := internIRI(args[0])
			if err != nil {
				return nil, nil, err
			}
			if err := o.AddClass(&ontology.Class{IRI: i}); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "objectproperty":
			if len(args) < 1 {
				return nil, nil, fmt.Errorf("line %d: objectproperty wants >=1 arg", lineNo)
			}
			i, err := internIRI(args[0])
			if err != nil {
				return nil, nil, err
			}
			p := &ontology.ObjectProperty{IRI: i, Characteristics: make(map[ontology.ObjectPropertyCharacteristic]bool)}
			for _, c := range args[1:] {
				ch, ok := propertyCharacteristic(c)
				if !ok {
					return nil, nil, fmt.Errorf("line %d: unknown characteristic %q", lineNo, c)
				}
				p.Characteristics[ch] = true
			}
			if err := o.AddObjectProperty(p); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "individual":
			if len(args) != 1 {
				return nil, nil, fmt.Errorf("line %d: individual wants 1 arg", lineNo)
			}
			i, err := internIRI(args[0])
			if err != nil {
				return nil, nil, err
			}
			if err := o.AddNamedIndividual(&ontology.NamedIndividual{IRI: i}); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "subclassof":
			if len(args) != 2 {
				return nil, nil, fmt.Errorf("line %d: subclassof wants 2 args", lineNo)
			}
			sub, err := intern(args[0])
			if err != nil {
				return nil, nil, err
			}
			super, err := intern(args[1])
			if err != nil {
				return nil, nil, err
			}
			if err := o.AddAxiom(ontology.SubClassOf{Sub: sub, Super: super}); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "equivalentclasses":
			if len(args) < 2 {
				return nil, nil, fmt.Errorf("line %d: equivalentclasses wants >=2 args", lineNo)
			}
			ces, err := internAll(intern, args)
			if err != nil {
				return nil, nil, err
			}
			if err := o.AddAxiom(ontology.EquivalentClasses{Classes: ces}); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "disjointclasses":
			if len(args) < 2 {
				return nil, nil, fmt.Errorf("line %d: disjointclasses wants >=2 args", lineNo)
			}
			ces, err := internAll(intern, args)
			if err != nil {
				return nil, nil, err
			}
			if err := o.AddAxiom(ontology.DisjointClasses{Classes: ces}); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "classassertion":
			if len(args) != 2 {
				return nil, nil, fmt.Errorf("line %d: classassertion wants 2 args", lineNo)
			}
			ind, err := internIRI(args[0])
			if err != nil {
				return nil, nil, err
			}
			cls, err := intern(args[1])
			if err != nil {
				return nil, nil, err
			}
			ax := ontology.ClassAssertion{Individual: ontology.NamedIndividual{IRI: ind}, Class: cls}
			if err := o.AddAxiom(ax); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case "objectpropertyassertion":
			if len(args) != 3 {
				return nil, nil, fmt.Errorf("line %d: objectpropertyassertion wants 3 args", lineNo)
			}
			prop, err := internIRI(args[0])
			if err != nil {
				return nil, nil, err
			}
			subj, err := internIRI(args[1])
			if err != nil {
				return nil, nil, err
			}
			obj, err := internIRI(args[2])
			if err != nil {
				return nil, nil, err
			}
			ax := ontology.ObjectPropertyAssertion{
				Property: ontology.NamedObjectProperty{IRI: prop},
				Subject:  ontology.NamedIndividual{IRI: subj},
				Object:   ontology.NamedIndividual{IRI: obj},
			}
			if err := o.AddAxiom(ax); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		default:
			return nil, nil, fmt.Errorf("line %d: unknown directive %q", lineNo, kw)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan: %w", err)
	}
	return o, in, nil
}

func internAll(intern func(string) (ontology.ClassExpression, error), toks []string) ([]ontology.ClassExpression, error) {
	out := make([]ontology.ClassExpression, 0, len(toks))
	for _, t := range toks {
		ce, err := intern(t)
		if err != nil {
			return nil, err
		}
		out = append(out, ce)
	}
	return out, nil
}

func expandIRI(tok string) string {
	if strings.HasPrefix(tok, "ex:") {
		return "http://example.org/" + strings.TrimPrefix(tok, "ex:")
	}
	return tok
}

func propertyCharacteristic(name string) (ontology.ObjectPropertyCharacteristic, bool) {
	switch strings.ToLower(name) {
	case "functional":
		return ontology.Functional, true
	case "inversefunctional":
		return ontology.InverseFunctional, true
	case "transitive":
		return ontology.Transitive, true
	case "symmetric":
		return ontology.Symmetric, true
	case "asymmetric":
		return ontology.Asymmetric, true
	case "reflexive":
		return ontology.Reflexive, true
	case "irreflexive":
		return ontology.Irreflexive, true
	default:
		return 0, false
	}
}
