// Package main implements owlreason, a CLI for the OWL2 Description Logic
// reasoner: consistency and satisfiability checking, classification, and
// instance retrieval over a toy line-oriented ontology fixture format.
//
// File index:
//   - main.go        - entry point, rootCmd, global flags
//   - fixture.go     - loadOntology(), the fixture parser
//   - cmd_load.go    - loadCmd
//   - cmd_consistency.go - consistencyCmd, satisfiableCmd
//   - cmd_classify.go    - classifyCmd
//   - cmd_query.go       - queryCmd (subclassof, disjoint, subclasses, superclasses, equivalent, instances)
//   - cmd_why.go         - whyCmd
//   - cmd_repl.go        - replCmd, the bubbletea interactive shell
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"owlreasoner/internal/config"
)

var (
	ontologyPath string
	verbose      bool
	queryTimeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "owlreason",
	Short: "owlreason - an OWL2 Description Logic reasoner CLI",
	Long: `owlreason loads a small line-oriented ontology fixture and answers
consistency, satisfiability, classification, and instance-retrieval queries
against it using a tableaux decision procedure backed by a Datalog
classification cache.

Run without a subcommand to start the interactive REPL.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&ontologyPath, "ontology", "o", "", "path to the ontology fixture file (required by every command)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&queryTimeout, "timeout", 30*time.Second, "per-query timeout")

	rootCmd.AddCommand(
		loadCmd,
		consistencyCmd,
		satisfiableCmd,
		classifyCmd,
		queryCmd,
		whyCmd,
		replCmd,
	)
}

func reasonerConfig() *config.ReasonerConfig {
	cfg := config.DefaultReasonerConfig()
	cfg.Timeout = queryTimeout
	return cfg
}

func requireOntologyPath() error {
	if ontologyPath == "" {
		return fmt.Errorf("--ontology is required")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a top-level command error to a process exit code:
// 1 for an ontology load/parse failure, 2 for invalid input, 3 for a
// reasoning timeout or depth exhaustion, 4 for any other internal error.
func exitCodeFor(err error) int {
	switch classifyExitErr(err) {
	case exitLoad:
		return 1
	case exitInvalidInput:
		return 2
	case exitTimeout:
		return 3
	default:
		return 4
	}
}
