package main

import (
	"fmt"
	"strconv"

	"github.com/BrandonKowalski/navigator/pkg/pokedex"
	"github.com/BrandonKowalski/navigator/pkg/pokedex/model"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <pokedex-number|home>",
	Short: "Print the deep link for a screen",
	Long: `Print the route path a host would navigate to.

Examples:
  navsim encode home
  navsim encode 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == pokedex.KindHome {
			fmt.Fprintln(cmd.OutOrStdout(), pokedex.Home{}.Path())
			return nil
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("expected a pokedex number or %q, got %q", pokedex.KindHome, args[0])
		}
		p, ok := pokedex.StarterCatalog().Lookup(id)
		if !ok {
			return fmt.Errorf("no pokemon #%d in the catalog", id)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pokedex.Details{Pokemon: p}.Path())
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <path>",
	Short: "Decode a deep link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := pokedex.ParseScreen(args[0])
		if err != nil {
			return err
		}

		d, ok := s.(pokedex.Details)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), s.Kind())
			return nil
		}
		printPokemon(cmd.OutOrStdout(), model.NewFormatter(cfg.Scenario.Language), d.Pokemon)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().String("language", "", "language for display strings (default en)")
}
