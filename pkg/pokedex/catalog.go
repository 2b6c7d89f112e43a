package pokedex

import (
	"slices"

	"github.com/BrandonKowalski/navigator/pkg/pokedex/model"
)

// Catalog is an ordered set of pokemon indexed by pokedex number.
type Catalog struct {
	byID map[int]model.PokemonInfo
	ids  []int
}

// NewCatalog indexes list. Later duplicates replace earlier ones.
func NewCatalog(list ...model.PokemonInfo) *Catalog {
	c := &Catalog{byID: make(map[int]model.PokemonInfo, len(list))}
	for _, p := range list {
		if _, exists := c.byID[p.ID]; !exists {
			c.ids = append(c.ids, p.ID)
		}
		c.byID[p.ID] = p
	}
	slices.Sort(c.ids)
	return c
}

// Lookup returns the pokemon with the given pokedex number.
func (c *Catalog) Lookup(id int) (model.PokemonInfo, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns every pokemon ordered by pokedex number.
func (c *Catalog) All() []model.PokemonInfo {
	out := make([]model.PokemonInfo, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of pokemon.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// StarterCatalog returns the three Kanto starters.
func StarterCatalog() *Catalog {
	return NewCatalog(
		model.PokemonInfo{
			ID: 1, Name: "bulbasaur", Height: 7, Weight: 69, Experience: 64,
			Types: []model.TypeResponse{
				{Slot: 1, Type: model.Type{Name: "grass"}},
				{Slot: 2, Type: model.Type{Name: "poison"}},
			},
			Stats: []model.StatsResponse{
				{BaseStat: 45, Stat: model.Stat{Name: "hp"}},
				{BaseStat: 49, Stat: model.Stat{Name: "attack"}},
				{BaseStat: 49, Stat: model.Stat{Name: "defense"}},
				{BaseStat: 45, Stat: model.Stat{Name: "speed"}},
			},
		},
		model.PokemonInfo{
			ID: 4, Name: "charmander", Height: 6, Weight: 85, Experience: 62,
			Types: []model.TypeResponse{
				{Slot: 1, Type: model.Type{Name: "fire"}},
			},
			Stats: []model.StatsResponse{
				{BaseStat: 39, Stat: model.Stat{Name: "hp"}},
				{BaseStat: 52, Stat: model.Stat{Name: "attack"}},
				{BaseStat: 43, Stat: model.Stat{Name: "defense"}},
				{BaseStat: 65, Effort: 1, Stat: model.Stat{Name: "speed"}},
			},
		},
		model.PokemonInfo{
			ID: 7, Name: "squirtle", Height: 5, Weight: 90, Experience: 63,
			Types: []model.TypeResponse{
				{Slot: 1, Type: model.Type{Name: "water"}},
			},
			Stats: []model.StatsResponse{
				{BaseStat: 44, Stat: model.Stat{Name: "hp"}},
				{BaseStat: 48, Stat: model.Stat{Name: "attack"}},
				{BaseStat: 65, Effort: 1, Stat: model.Stat{Name: "defense"}},
				{BaseStat: 43, Stat: model.Stat{Name: "speed"}},
			},
		},
	)
}
