package mangle

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestProofTreeTracerTraceQuery(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	schema := `
	Decl sub_class_of(Sub, Super) descr [mode("-", "-")].
	Decl ancestor_class(Sub, Super) descr [mode("-", "-")].

	ancestor_class(X, Y) :- sub_class_of(X, Y).
	`
	if err := engine.LoadSchemaString(schema); err != nil {
		t.Fatalf("Failed to load schema: %v", err)
	}

	if err := engine.AddFact("sub_class_of", "/Dog", "/Animal"); err != nil {
		t.Fatalf("Failed to add fact: %v", err)
	}

	tracer := NewProofTreeTracer(engine)
	tracer.IndexRules()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	trace, err := tracer.TraceQuery(ctx, "ancestor_class(X, Y)")
	if err != nil {
		t.Fatalf("TraceQuery failed: %v", err)
	}

	if len(trace.RootNodes) != 1 {
		t.Fatalf("Expected 1 root node, got %d", len(trace.RootNodes))
	}

	root := trace.RootNodes[0]
	if root.Fact.Predicate != "ancestor_class" {
		t.Errorf("Expected root predicate 'ancestor_class', got '%s'", root.Fact.Predicate)
	}
	if root.Source != SourceIDB {
		t.Errorf("Expected SourceIDB, got %v", root.Source)
	}
	if root.RuleName != "ancestor_class" {
		t.Errorf("Expected rule 'ancestor_class', got '%s'", root.RuleName)
	}

	if len(root.Children) != 1 {
		t.Fatalf("Expected 1 child (premise), got %d", len(root.Children))
	}

	child := root.Children[0]
	if child.Fact.Predicate != "sub_class_of" {
		t.Errorf("Expected child predicate 'sub_class_of', got '%s'", child.Fact.Predicate)
	}
	if child.Source != SourceEDB {
		t.Errorf("Expected SourceEDB for sub_class_of, got %v", child.Source)
	}
}

func TestProofTreeTracerWithArgResolverRewritesFactArgs(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	schema := `
	Decl sub_class_of(Sub, Super) bound [/number, /number] descr [mode("-", "-")].
	Decl ancestor_class(Sub, Super) bound [/number, /number] descr [mode("-", "-")].

	ancestor_class(X, Y) :- sub_class_of(X, Y).
	`
	if err := engine.LoadSchemaString(schema); err != nil {
		t.Fatalf("Failed to load schema: %v", err)
	}
	if err := engine.AddFact("sub_class_of", int64(1), int64(2)); err != nil {
		t.Fatalf("Failed to add fact: %v", err)
	}

	names := map[int64]string{1: "http://example.org/Dog", 2: "http://example.org/Animal"}
	resolve := func(arg interface{}) (string, bool) {
		id, ok := arg.(int64)
		if !ok {
			return "", false
		}
		name, ok := names[id]
		return name, ok
	}

	tracer := NewProofTreeTracer(engine).WithArgResolver(resolve)
	tracer.IndexRules()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	trace, err := tracer.TraceQuery(ctx, "ancestor_class(X, Y)")
	if err != nil {
		t.Fatalf("TraceQuery failed: %v", err)
	}
	if len(trace.RootNodes) != 1 {
		t.Fatalf("Expected 1 root node, got %d", len(trace.RootNodes))
	}

	root := trace.RootNodes[0]
	if root.Fact.Args[0] != "http://example.org/Dog" || root.Fact.Args[1] != "http://example.org/Animal" {
		t.Errorf("Expected resolved IRI args, got %v", root.Fact.Args)
	}
	if len(root.Children) != 1 {
		t.Fatalf("Expected 1 child (premise), got %d", len(root.Children))
	}
	child := root.Children[0]
	if child.Fact.Args[0] != "http://example.org/Dog" || child.Fact.Args[1] != "http://example.org/Animal" {
		t.Errorf("Expected resolved IRI args on premise, got %v", child.Fact.Args)
	}
}

func TestProofTreeTracerRenderASCII(t *testing.T) {
	root := &DerivationNode{
		Fact:     Fact{Predicate: "ancestor_class", Args: []interface{}{"/Dog", "/Animal"}},
		Source:   SourceIDB,
		RuleName: "ancestor_class",
		Children: []*DerivationNode{
			{
				Fact:   Fact{Predicate: "sub_class_of", Args: []interface{}{"/Dog", "/Animal"}},
				Source: SourceEDB,
			},
		},
	}

	trace := &DerivationTrace{
		Query:     "ancestor_class(X, Y)",
		RootNodes: []*DerivationNode{root},
		Duration:  10 * time.Millisecond,
	}

	ascii := trace.RenderASCII()
	if len(ascii) == 0 {
		t.Fatal("RenderASCII returned empty string")
	}

	expectedRoot := `ancestor_class(/Dog, /Animal). [IDB:ancestor_class]`
	if !strings.Contains(ascii, expectedRoot) {
		t.Errorf("ASCII output missing root node pattern. Got:\n%s", ascii)
	}

	expectedChild := `sub_class_of(/Dog, /Animal). [EDB]`
	if !strings.Contains(ascii, expectedChild) {
		t.Errorf("ASCII output missing child node pattern. Got:\n%s", ascii)
	}
}
