package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bulbasaur() PokemonInfo {
	return PokemonInfo{
		ID: 1, Name: "bulbasaur", Height: 7, Weight: 69, Experience: 64,
		Types: []TypeResponse{
			{Slot: 2, Type: Type{Name: "poison"}},
			{Slot: 1, Type: Type{Name: "grass"}},
		},
		Stats: []StatsResponse{
			{BaseStat: 45, Stat: Stat{Name: "hp"}},
			{BaseStat: 49, Stat: Stat{Name: "attack"}},
			{BaseStat: 49, Stat: Stat{Name: "defense"}},
			{BaseStat: 65, Effort: 1, Stat: Stat{Name: "special-attack"}},
			{BaseStat: 45, Stat: Stat{Name: "speed"}},
		},
	}
}

func TestDerivedStats(t *testing.T) {
	p := bulbasaur()
	assert.Equal(t, 45, p.HP())
	assert.Equal(t, 49, p.Attack())
	assert.Equal(t, 49, p.Defense())
	assert.Equal(t, 45, p.Speed())

	v, ok := p.BaseStat("special-attack")
	assert.True(t, ok)
	assert.Equal(t, 65, v)

	_, ok = p.BaseStat("luck")
	assert.False(t, ok)
	assert.Zero(t, PokemonInfo{}.HP())
}

func TestPrimaryType(t *testing.T) {
	assert.Equal(t, "grass", bulbasaur().PrimaryType())
	assert.Equal(t, "fire", PokemonInfo{Types: []TypeResponse{{Slot: 3, Type: Type{Name: "fire"}}}}.PrimaryType())
	assert.Empty(t, PokemonInfo{}.PrimaryType())
}

func TestEqual(t *testing.T) {
	a, b := bulbasaur(), bulbasaur()
	assert.True(t, a.Equal(b))

	b.Stats[0].Effort = 2
	assert.False(t, a.Equal(b))

	assert.True(t, PokemonInfo{ID: 1}.Equal(PokemonInfo{ID: 1, Types: []TypeResponse{}, Stats: []StatsResponse{}}))
	assert.False(t, PokemonInfo{ID: 1}.Equal(PokemonInfo{ID: 2}))
}
