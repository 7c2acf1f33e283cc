package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"owlreasoner/internal/iri"
	"owlreasoner/internal/ontology"
	"owlreasoner/internal/reasoner"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive REPL over the loaded ontology",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd)
	},
}

func runREPL(cmd *cobra.Command) error {
	r, o, in, err := buildReasoner()
	if err != nil {
		return err
	}
	p := tea.NewProgram(newReplModel(r, o, in))
	_, err = p.Run()
	return err
}

var (
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	historyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type replModel struct {
	reasoner *reasoner.Reasoner
	ontology *ontology.Ontology
	interner *iri.Interner

	input   textinput.Model
	history []string
	err     error
}

func newReplModel(r *reasoner.Reasoner, o *ontology.Ontology, in *iri.Interner) replModel {
	ti := textinput.New()
	ti.Placeholder = "consistency | satisfiable <iri> | subclassof <a> <b> | instances <iri> | help | quit"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 80
	return replModel{reasoner: r, ontology: o, interner: in, input: ti}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.history = append(m.history, promptStyle.Render("> ")+line)
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			out, err := m.eval(line)
			m.err = err
			if err != nil {
				m.history = append(m.history, errorStyle.Render(err.Error()))
			} else if out != "" {
				m.history = append(m.history, historyStyle.Render(out))
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) View() string {
	var sb strings.Builder
	for _, line := range m.history {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("ctrl-c or esc to quit"))
	return sb.String()
}

// eval runs one REPL line against the loaded ontology and returns its
// rendered answer. Each verb mirrors a non-interactive subcommand.
func (m replModel) eval(line string) (string, error) {
	fields := strings.Fields(line)
	verb := fields[0]
	args := fields[1:]
	ctx := context.Background()

	switch verb {
	case "help":
		return "commands: consistency, satisfiable <iri>, subclassof <a> <b>, disjoint <a> <b>, subclasses <iri>, superclasses <iri>, equivalent <iri>, instances <iri>, quit", nil

	case "consistency":
		ok, err := m.reasoner.IsConsistent(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", ok), nil

	case "satisfiable":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: satisfiable <iri>")
		}
		c, err := m.interner.Intern(expandIRI(args[0]))
		if err != nil {
			return "", err
		}
		ok, err := m.reasoner.IsClassSatisfiable(ctx, ontology.ClassName{IRI: c})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", ok), nil

	case "subclassof":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: subclassof <sub> <super>")
		}
		sub, super, err := resolvePair(m.interner, args[0], args[1])
		if err != nil {
			return "", err
		}
		ok, err := m.reasoner.IsSubclassOf(ctx, sub, super)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", ok), nil

	case "disjoint":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: disjoint <a> <b>")
		}
		a, b, err := resolvePair(m.interner, args[0], args[1])
		if err != nil {
			return "", err
		}
		ok, err := m.reasoner.AreDisjointClasses(ctx, a, b)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v", ok), nil

	case "subclasses", "superclasses", "equivalent":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: %s <iri>", verb)
		}
		c, err := m.interner.Intern(expandIRI(args[0]))
		if err != nil {
			return "", err
		}
		var out []iri.IRI
		switch verb {
		case "subclasses":
			out, err = m.reasoner.GetSubclasses(c)
		case "superclasses":
			out, err = m.reasoner.GetSuperclasses(c)
		case "equivalent":
			out, err = m.reasoner.GetEquivalentClasses(c)
		}
		if err != nil {
			return "", err
		}
		return joinIRIs(out), nil

	case "instances":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: instances <iri>")
		}
		c, err := m.interner.Intern(expandIRI(args[0]))
		if err != nil {
			return "", err
		}
		out, err := m.reasoner.GetInstances(ctx, c)
		if err != nil {
			return "", err
		}
		return joinIRIs(out), nil

	default:
		return "", fmt.Errorf("unknown command %q (try 'help')", verb)
	}
}

func joinIRIs(ids []iri.IRI) string {
	if len(ids) == 0 {
		return "(none)"
	}
	sortIRIs(ids)
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return strings.Join(strs, "\n")
}
