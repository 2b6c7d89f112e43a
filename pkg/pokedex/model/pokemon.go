// Package model defines the pokemon record carried by the Details route.
package model

import "slices"

// Maximum values used when rendering stat bars.
const (
	MaxHP      = 300
	MaxAttack  = 300
	MaxDefense = 300
	MaxSpeed   = 300
	MaxExp     = 1000
)

// PokemonInfo is the detailed record of a pokemon. JSON names follow the
// PokeAPI schema.
type PokemonInfo struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Height     int             `json:"height"`          // decimetres
	Weight     int             `json:"weight"`          // hectograms
	Experience int             `json:"base_experience"` // base experience yielded when defeated
	Types      []TypeResponse  `json:"types"`
	Stats      []StatsResponse `json:"stats"`
}

// TypeResponse is one of a pokemon's types. Slot 1 is the primary type.
type TypeResponse struct {
	Slot int  `json:"slot"`
	Type Type `json:"type"`
}

// StatsResponse is one base stat.
type StatsResponse struct {
	BaseStat int  `json:"base_stat"`
	Effort   int  `json:"effort"`
	Stat     Stat `json:"stat"`
}

// Stat names a stat ("hp", "attack", "defense", "speed", ...).
type Stat struct {
	Name string `json:"name"`
}

// Type names a type ("grass", "fire", ...).
type Type struct {
	Name string `json:"name"`
}

// BaseStat returns the base value of the named stat.
func (p PokemonInfo) BaseStat(name string) (int, bool) {
	for _, s := range p.Stats {
		if s.Stat.Name == name {
			return s.BaseStat, true
		}
	}
	return 0, false
}

// HP returns the "hp" base stat, 0 when absent.
func (p PokemonInfo) HP() int {
	v, _ := p.BaseStat("hp")
	return v
}

// Attack returns the "attack" base stat, 0 when absent.
func (p PokemonInfo) Attack() int {
	v, _ := p.BaseStat("attack")
	return v
}

// Defense returns the "defense" base stat, 0 when absent.
func (p PokemonInfo) Defense() int {
	v, _ := p.BaseStat("defense")
	return v
}

// Speed returns the "speed" base stat, 0 when absent.
func (p PokemonInfo) Speed() int {
	v, _ := p.BaseStat("speed")
	return v
}

// PrimaryType returns the name of the type in slot 1, or the first type.
func (p PokemonInfo) PrimaryType() string {
	for _, t := range p.Types {
		if t.Slot == 1 {
			return t.Type.Name
		}
	}
	if len(p.Types) > 0 {
		return p.Types[0].Type.Name
	}
	return ""
}

// Equal reports structural equality. A nil list equals an empty list.
func (p PokemonInfo) Equal(o PokemonInfo) bool {
	return p.ID == o.ID &&
		p.Name == o.Name &&
		p.Height == o.Height &&
		p.Weight == o.Weight &&
		p.Experience == o.Experience &&
		slices.Equal(p.Types, o.Types) &&
		slices.Equal(p.Stats, o.Stats)
}
