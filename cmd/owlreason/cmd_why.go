package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var whyCmd = &cobra.Command{
	Use:   "why <ancestor|disjoint|equivalent> <a-iri> <b-iri>",
	Short: "Explain a closure-level entailment as a derivation tree",
	Long: `Traces why the Datalog classification cache entails a relation
between two named classes, rendering the proof tree down to the base
axioms that fed it.

This only explains entailments the closure settled (named-class subclass,
equivalence, and disjointness); it cannot explain a verdict the tableaux
fallback proved on its own.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		predicate, err := closurePredicate(args[0])
		if err != nil {
			return err
		}
		a, b, err := resolvePair(in, args[1], args[2])
		if err != nil {
			return err
		}

		traceID := uuid.New().String()[:8]
		logger.Debug("explain query",
			zap.String("trace_id", traceID),
			zap.String("predicate", predicate),
			zap.String("a", args[1]),
			zap.String("b", args[2]),
		)

		trace, err := r.Explain(cmd.Context(), predicate, a, b)
		if err != nil {
			return err
		}
		if len(trace.RootNodes) == 0 {
			fmt.Printf("no derivation found for %s(%s, %s)\n", predicate, args[1], args[2])
			return nil
		}

		md := "```\n" + trace.RenderASCII() + "```\n"
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			fmt.Print(md)
			return nil
		}
		out, err := renderer.Render(md)
		if err != nil {
			fmt.Print(md)
			return nil
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func closurePredicate(verb string) (string, error) {
	switch strings.ToLower(verb) {
	case "ancestor", "subclassof", "subclass":
		return "ancestor_class", nil
	case "disjoint":
		return "disjoint_with", nil
	case "equivalent", "equivalentclasses":
		return "same_class", nil
	default:
		return "", fmt.Errorf("why: unknown relation %q (want ancestor, disjoint, or equivalent)", verb)
	}
}
