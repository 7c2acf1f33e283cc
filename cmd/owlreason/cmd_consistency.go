package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"owlreasoner/internal/ontology"
)

var consistencyCmd = &cobra.Command{
	Use:   "consistency",
	Short: "Check whether the ontology's ABox is consistent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, _, err := buildReasoner()
		if err != nil {
			return err
		}
		ok, err := r.IsConsistent(cmd.Context())
		if err != nil {
			return err
		}
		if ok {
			fmt.Println("consistent")
		} else {
			fmt.Println("inconsistent")
		}
		return nil
	},
}

var satisfiableCmd = &cobra.Command{
	Use:   "satisfiable <class-iri>",
	Short: "Check whether a named class is satisfiable",
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
		ok, err := r.IsClassSatisfiable(cmd.Context(), ontology.ClassName{IRI: class})
		if err != nil {
			return err
		}
		if ok {
			fmt.Println("satisfiable")
		} else {
			fmt.Println("unsatisfiable")
		}
		return nil
	},
}
