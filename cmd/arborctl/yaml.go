package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/arbor/automaton"
	"gopkg.in/yaml.v3"
)

// yamlTransition is one row of a flat transition-list automaton file: the
// symbol, the ordered child states, and the resulting state. This is
// deliberately a flat list rather than a term-literal grammar, since a
// macro/parser surface for literal automata is out of scope for the
// library itself; arborctl only needs something a demo session can load.
type yamlTransition struct {
	Symbol   string   `yaml:"symbol"`
	Children []string `yaml:"children"`
	State    string   `yaml:"state"`
}

type yamlAutomaton struct {
	Transitions []yamlTransition `yaml:"transitions"`
	Final       []string         `yaml:"final"`
}

// loadYAMLAutomaton reads a flat transition-list file into a bottom-up
// automaton over runes and string states, the shape every fixture and demo
// command in arborctl works with.
func loadYAMLAutomaton(path string) (*automaton.Automaton[rune, string, automaton.NoLabel], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc yamlAutomaton
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	a := automaton.New[rune, string, automaton.NoLabel]()
	for _, tr := range doc.Transitions {
		if len(tr.Symbol) == 0 {
			return nil, fmt.Errorf("%s: transition with empty symbol", path)
		}
		symbol := []rune(tr.Symbol)[0]
		a.Add(automaton.Configuration[rune, string]{Symbol: symbol, Children: tr.Children}, automaton.NoLabel{}, tr.State)
	}
	for _, q := range doc.Final {
		a.SetFinal(q)
	}
	return a, nil
}
