package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"owlreasoner/internal/ontology"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Parse an ontology fixture and print a summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOntologyPath(); err != nil {
			return &loadError{err}
		}
		o, _, err := loadOntology(ontologyPath)
		if err != nil {
			return &loadError{err}
		}
		printSummary(o)
		return nil
	},
}

func printSummary(o *ontology.Ontology) {
	fmt.Printf("classes:               %d\n", len(o.Classes()))
	fmt.Printf("object properties:     %d\n", len(o.ObjectProperties()))
	fmt.Printf("data properties:       %d\n", len(o.DataProperties()))
	fmt.Printf("named individuals:     %d\n", len(o.NamedIndividuals()))
	fmt.Printf("axioms:                %d\n", o.AxiomCount())
}
