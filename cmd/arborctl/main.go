/*
Arborctl loads a finite tree automaton and lets a user inspect it and drive
arbor's search engines against it interactively.

Usage:

	arborctl [flags]

The flags are:

	-f, --fixture NAME
		Load one of the built-in example automata instead of a file: "abc",
		"ijklmno", "selfloop", or "twoway" (which loads a pair of automata
		for intersection demos). Defaults to "ijklmno".

	-y, --yaml FILE
		Load a flat transition-list automaton from the given YAML file
		instead of a built-in fixture.

	-c, --config FILE
		Read default search depth, output width, and fixture directory from
		the given TOML file. CLI flags always override it.

	-i, --interactive
		Start an interactive session after loading, offering the commands
		"states", "configs STATE", "repr", "common STATE1 STATE2", and
		"inter". Type "quit" to exit.

Once loaded, arborctl prints a summary of the automaton's states and final
states and, in interactive mode, opens a readline-backed prompt for
further exploration.
*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/arbor/automaton"
	"github.com/dekarrin/arbor/fixtures"
	"github.com/dekarrin/arbor/internal/version"
	"github.com/dekarrin/arbor/product"
	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates the requested fixture or file could not be
	// loaded.
	ExitInitError

	// ExitUsageError indicates a malformed interactive command.
	ExitUsageError
)

var (
	returnCode    = ExitSuccess
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version and exit")
	flagFixture   = pflag.StringP("fixture", "f", "ijklmno", "Built-in fixture to load: abc, ijklmno, selfloop, twoway")
	flagYAML      = pflag.StringP("yaml", "y", "", "Load a flat transition-list automaton from this YAML file")
	flagConfig    = pflag.StringP("config", "c", "", "TOML file of default search depth, output width, and fixture directory")
	flagInteract  = pflag.BoolP("interactive", "i", false, "Start an interactive session after loading")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	automata, names, err := loadAutomata(*flagFixture, *flagYAML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	printSummary(automata, names, cfg)

	if *flagInteract {
		if err := runREPL(automata, names, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
		}
	}
}

func loadAutomata(fixture, yamlPath string) ([]*automaton.Automaton[rune, string, automaton.NoLabel], []string, error) {
	if yamlPath != "" {
		a, err := loadYAMLAutomaton(yamlPath)
		if err != nil {
			return nil, nil, err
		}
		return []*automaton.Automaton[rune, string, automaton.NoLabel]{a}, []string{yamlPath}, nil
	}

	switch fixture {
	case "abc":
		return []*automaton.Automaton[rune, string, automaton.NoLabel]{fixtures.ABCChain()}, []string{"abc"}, nil
	case "ijklmno":
		return []*automaton.Automaton[rune, string, automaton.NoLabel]{fixtures.IJKLMNO()}, []string{"ijklmno"}, nil
	case "selfloop":
		return []*automaton.Automaton[rune, string, automaton.NoLabel]{fixtures.SelfLoop()}, []string{"selfloop"}, nil
	case "twoway":
		first, second := fixtures.TwoWayAccept()
		return []*automaton.Automaton[rune, string, automaton.NoLabel]{first, second}, []string{"first", "second"}, nil
	default:
		return nil, nil, fmt.Errorf("unknown fixture %q", fixture)
	}
}

func printSummary(automata []*automaton.Automaton[rune, string, automaton.NoLabel], names []string, cfg arborConfig) {
	for i, a := range automata {
		summary := fmt.Sprintf("%s: %d states, final: %v", names[i], a.Len(), a.FinalStates())
		fmt.Println(rosed.Edit(summary).Wrap(cfg.OutputWidth).String())
	}
}

func runREPL(automata []*automaton.Automaton[rune, string, automaton.NoLabel], names []string, cfg arborConfig) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "arbor> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "quit", "exit":
			return nil
		case "states":
			fmt.Println(automata[0].States())
		case "configs":
			if len(args) != 1 {
				fmt.Println("usage: configs STATE")
				continue
			}
			fmt.Println(automata[0].ConfigurationsForState(args[0]))
		case "repr":
			streamRepresentatives(automata[0], cfg.DefaultDepth)
		case "common":
			if len(args) != 2 || len(automata) < 2 {
				fmt.Println("usage: common STATE1 STATE2 (requires two loaded automata, e.g. -f twoway)")
				continue
			}
			streamCommon(automata, args)
		case "inter":
			streamIntersection(automata)
		case "fresh":
			fmt.Println(uuid.NewString())
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func streamRepresentatives(a *automaton.Automaton[rune, string, automaton.NoLabel], limit int) {
	it := a.Representatives()
	defer it.Close()
	for i := 0; i < limit; i++ {
		t, ok := it.Next()
		if !ok {
			return
		}
		fmt.Println(renderTerm(t))
	}
	fmt.Printf("... (stopped after %d)\n", limit)
}

func renderTerm(t automaton.TermOf[rune]) string {
	if len(t.Children) == 0 {
		return string(t.Symbol)
	}
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = renderTerm(c)
	}
	return string(t.Symbol) + "(" + strings.Join(parts, ", ") + ")"
}

func streamCommon(automata []*automaton.Automaton[rune, string, automaton.NoLabel], states []string) {
	it, err := automaton.CommonConfigurations(automata[:2], states)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	count := 0
	for {
		configs, ok := it.Next()
		if !ok {
			break
		}
		count++
		parts := make([]string, len(configs))
		for i, c := range configs {
			parts[i] = c.String()
		}
		fmt.Println(strconv.Itoa(count) + ": " + strings.Join(parts, "  |  "))
	}
}

func streamIntersection(automata []*automaton.Automaton[rune, string, automaton.NoLabel]) {
	out, reg, err := product.Intersect(automata)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, q := range out.FinalStates() {
		tuple, _ := reg.Lookup(q)
		fmt.Printf("final product state %v\n", tuple)
	}
	fmt.Println(out.String())
}
