package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"owlreasoner/internal/iri"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Answer a classification or instance-retrieval query",
}

var subclassOfCmd = &cobra.Command{
	Use:   "subclassof <sub-iri> <super-iri>",
	Short: "Report whether sub is entailed a subclass of super",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		sub, super, err := resolvePair(in, args[0], args[1])
		if err != nil {
			return err
		}
		ok, err := r.IsSubclassOf(cmd.Context(), sub, super)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var disjointCmd = &cobra.Command{
	Use:   "disjoint <a-iri> <b-iri>",
	Short: "Report whether two classes are entailed disjoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		a, b, err := resolvePair(in, args[0], args[1])
		if err != nil {
			return err
		}
		ok, err := r.AreDisjointClasses(cmd.Context(), a, b)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var subclassesCmd = &cobra.Command{
	Use:   "subclasses <class-iri>",
	Short: "List every named class entailed a subclass of class-iri",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		class, err := resolveIRI(in, args[0])
		if err != nil {
			return err
		}
		out, err := r.GetSubclasses(class)
		if err != nil {
			return err
		}
		printIRIs(out)
		return nil
	},
}

var superclassesCmd = &cobra.Command{
	Use:   "superclasses <class-iri>",
	Short: "List every named class entailed a superclass of class-iri",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		class, err := resolveIRI(in, args[0])
		if err != nil {
			return err
		}
		out, err := r.GetSuperclasses(class)
		if err != nil {
			return err
		}
		printIRIs(out)
		return nil
	},
}

var equivalentCmd = &cobra.Command{
	Use:   "equivalent <class-iri>",
	Short: "List every named class entailed equivalent to class-iri",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		class, err := resolveIRI(in, args[0])
		if err != nil {
			return err
		}
		out, err := r.GetEquivalentClasses(class)
		if err != nil {
			return err
		}
		printIRIs(out)
		return nil
	},
}

var disjointClassesCmd = &cobra.Command{
	Use:   "disjointclasses <class-iri>",
	Short: "List every named class entailed disjoint from class-iri",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		class, err := resolveIRI(in, args[0])
		if err != nil {
			return err
		}
		out, err := r.GetDisjointClasses(class)
		if err != nil {
			return err
		}
		printIRIs(out)
		return nil
	},
}

var instancesCmd = &cobra.Command{
	Use:   "instances <class-iri>",
	Short: "List every named individual entailed an instance of class-iri",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, in, err := buildReasoner()
		if err != nil {
			return err
		}
		class, err := resolveIRI(in, args[0])
		if err != nil {
			return err
		}
		out, err := r.GetInstances(cmd.Context(), class)
		if err != nil {
			return err
		}
		printIRIs(out)
		return nil
	},
}

func init() {
	queryCmd.AddCommand(
		subclassOfCmd,
		disjointCmd,
		subclassesCmd,
		superclassesCmd,
		equivalentCmd,
		disjointClassesCmd,
		instancesCmd,
	)
}

func resolvePair(in *iri.Interner, a, b string) (iri.IRI, iri.IRI, error) {
	ai, err := resolveIRI(in, a)
	if err != nil {
		return iri.IRI{}, iri.IRI{}, err
	}
	bi, err := resolveIRI(in, b)
	if err != nil {
		return iri.IRI{}, iri.IRI{}, err
	}
	return ai, bi, nil
}

func printIRIs(ids []iri.IRI) {
	sortIRIs(ids)
	for _, i := range ids {
		fmt.Println(i.String())
	}
}
