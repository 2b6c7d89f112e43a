package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/BrandonKowalski/navigator/internal/scenario"
	"github.com/BrandonKowalski/navigator/pkg/pokedex"
	"github.com/BrandonKowalski/navigator/pkg/pokedex/model"
)

// describe renders a scenario route label for humans, e.g. "details #004 Charmander".
func describe(f *model.Formatter, catalog *pokedex.Catalog, label string) string {
	s, err := scenario.ResolveRoute(catalog, label)
	if err != nil {
		return label
	}
	if d, ok := s.(pokedex.Details); ok {
		return fmt.Sprintf("%s %s %s", d.Kind(), f.ID(d.Pokemon), f.Name(d.Pokemon))
	}
	return s.Kind()
}

func printReport(w io.Writer, f *model.Formatter, catalog *pokedex.Catalog, r *scenario.Report) {
	fmt.Fprintf(w, "scenario %q\n", r.Name)
	for _, step := range r.Steps {
		status := "ok"
		if step.Err != nil {
			status = "FAIL"
		}

		stack := make([]string, len(step.Stack))
		for i, label := range step.Stack {
			stack[i] = describe(f, catalog, label)
		}
		fmt.Fprintf(w, "  %2d %-4s %s\n", step.Index, status, step.Command)
		fmt.Fprintf(w, "          stack: [%s]\n", strings.Join(stack, ", "))

		for _, key := range slices.Sorted(maps.Keys(step.Results)) {
			fmt.Fprintf(w, "          result %s = %v\n", key, step.Results[key])
		}
		if step.Err != nil {
			fmt.Fprintf(w, "          %v\n", step.Err)
		}
	}
	fmt.Fprintf(w, "applied %d, dropped %d\n", r.Stats.Applied, r.Stats.Dropped)
}

// printPokemon writes the details page for p.
func printPokemon(w io.Writer, f *model.Formatter, p model.PokemonInfo) {
	fmt.Fprintf(w, "%s %s\n", f.ID(p), f.Name(p))
	if t := p.PrimaryType(); t != "" {
		fmt.Fprintf(w, "  type     %s\n", t)
	}
	fmt.Fprintf(w, "  weight   %s\n", f.Weight(p))
	fmt.Fprintf(w, "  height   %s\n", f.Height(p))
	fmt.Fprintf(w, "  hp      %s\n", f.HP(p))
	fmt.Fprintf(w, "  attack  %s\n", f.Attack(p))
	fmt.Fprintf(w, "  defense %s\n", f.Defense(p))
	fmt.Fprintf(w, "  speed   %s\n", f.Speed(p))
	fmt.Fprintf(w, "  exp     %s\n", f.Exp(p))
}
