package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the subclass hierarchy materialized over every declared class",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, o, _, err := buildReasoner()
		if err != nil {
			return err
		}
		classes := o.Classes()
		sort.Slice(classes, func(i, j int) bool { return classes[i].IRI.String() < classes[j].IRI.String() })
		for _, c := range classes {
			supers, err := r.GetSuperclasses(c.IRI)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", c.IRI.String())
			if len(supers) == 0 {
				continue
			}
			sortIRIs(supers)
			for _, s := range supers {
				fmt.Printf("  -> %s\n", s.String())
			}
		}
		return nil
	},
}
