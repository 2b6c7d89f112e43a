package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatterEnglish(t *testing.T) {
	f := NewFormatter("en")
	p := bulbasaur()

	assert.Equal(t, "Bulbasaur", f.Name(p))
	assert.Equal(t, "#001", f.ID(p))
	assert.Equal(t, "6.9 KG", f.Weight(p))
	assert.Equal(t, "0.7 M", f.Height(p))
	assert.Equal(t, " 45/300", f.HP(p))
	assert.Equal(t, " 49/300", f.Attack(p))
	assert.Equal(t, " 49/300", f.Defense(p))
	assert.Equal(t, " 45/300", f.Speed(p))
	assert.Equal(t, " 64/1000", f.Exp(p))
}

func TestFormatterTranslations(t *testing.T) {
	p := bulbasaur()

	de := NewFormatter("de-CH")
	assert.Equal(t, "6.9 kg", de.Weight(p))
	assert.Equal(t, "0.7 m", de.Height(p))
	assert.Equal(t, " 45/300", de.HP(p), "untranslated messages fall back to English")

	fr := NewFormatter("fr")
	assert.Equal(t, "6.9 kg", fr.Weight(p))
}

func TestFormatterFallbacks(t *testing.T) {
	f := NewFormatter("not a tag!")
	assert.Equal(t, language.English, f.Language())
	assert.Equal(t, "6.9 KG", f.Weight(bulbasaur()))

	ja := NewFormatter("ja")
	assert.Equal(t, "6.9 KG", ja.Weight(bulbasaur()))
}

func TestFormatterPadsIDs(t *testing.T) {
	f := NewFormatter("en")
	assert.Equal(t, "#025", f.ID(PokemonInfo{ID: 25}))
	assert.Equal(t, "#151", f.ID(PokemonInfo{ID: 151}))
	assert.Equal(t, "#1010", f.ID(PokemonInfo{ID: 1010}))
	assert.Equal(t, "Mr. Mime", f.Name(PokemonInfo{Name: "mr. mime"}))
}

func TestMessageTablesLoad(t *testing.T) {
	base := map[string]bool{msgWeight.ID: true, msgHeight.ID: true, msgStat.ID: true}
	for tag, msgs := range translations {
		for _, m := range msgs {
			assert.True(t, base[m.ID], "%s translates unknown message %s", tag, m.ID)
		}
		assert.NotPanics(t, func() { NewFormatter(tag.String()) }, "tag %s", tag)
	}
}
