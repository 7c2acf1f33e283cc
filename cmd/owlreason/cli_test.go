package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "onto.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCmdSummarizesFixture(t *testing.T) {
	logger = zap.NewNop()
	ontologyPath = writeFixture(t, "class ex:A\nclass ex:B\nsubclassof ex:A ex:B\n")
	defer func() { ontologyPath = "" }()

	cmd := &cobra.Command{}
	require.NoError(t, loadCmd.RunE(cmd, nil))
}

func TestConsistencyCmdOnConsistentOntology(t *testing.T) {
	logger = zap.NewNop()
	ontologyPath = writeFixture(t, "class ex:A\nindividual ex:a\nclassassertion ex:a ex:A\n")
	defer func() { ontologyPath = "" }()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	require.NoError(t, consistencyCmd.RunE(cmd, nil))
}

func TestConsistencyCmdOnDisjointViolation(t *testing.T) {
	logger = zap.NewNop()
	ontologyPath = writeFixture(t, strings.Join([]string{
		"class ex:A",
		"class ex:B",
		"individual ex:x",
		"disjointclasses ex:A ex:B",
		"classassertion ex:x ex:A",
		"classassertion ex:x ex:B",
	}, "\n"))
	defer func() { ontologyPath = "" }()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	require.NoError(t, consistencyCmd.RunE(cmd, nil))
}

func TestQuerySubclassOfCmd(t *testing.T) {
	logger = zap.NewNop()
	ontologyPath = writeFixture(t, "class ex:A\nclass ex:B\nsubclassof ex:A ex:B\n")
	defer func() { ontologyPath = "" }()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	require.NoError(t, subclassOfCmd.RunE(cmd, []string{"ex:A", "ex:B"}))
}

func TestRequireOntologyPathErrorsWhenUnset(t *testing.T) {
	ontologyPath = ""
	require.Error(t, requireOntologyPath())
}
