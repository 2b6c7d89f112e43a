package model

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	msgWeight = &i18n.Message{ID: "PokemonWeight", Other: "{{.Value}} KG"}
	msgHeight = &i18n.Message{ID: "PokemonHeight", Other: "{{.Value}} M"}
	msgStat   = &i18n.Message{ID: "PokemonStat", Other: " {{.Value}}/{{.Max}}"}
)

var translations = map[language.Tag][]*i18n.Message{
	language.German: {
		{ID: "PokemonWeight", Other: "{{.Value}} kg"},
		{ID: "PokemonHeight", Other: "{{.Value}} m"},
	},
	language.French: {
		{ID: "PokemonWeight", Other: "{{.Value}} kg"},
		{ID: "PokemonHeight", Other: "{{.Value}} m"},
	},
}

// Formatter renders pokemon fields for display in one language.
type Formatter struct {
	tag       language.Tag
	localizer *i18n.Localizer
	caser     cases.Caser
}

// NewFormatter creates a Formatter for lang (a BCP 47 tag such as "en" or
// "de-CH"). Unparseable or unsupported tags fall back to English.
func NewFormatter(lang string) *Formatter {
	bundle := i18n.NewBundle(language.English)
	bundle.MustAddMessages(language.English, msgWeight, msgHeight, msgStat)
	for tag, msgs := range translations {
		bundle.MustAddMessages(tag, msgs...)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	return &Formatter{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		caser:     cases.Title(tag),
	}
}

// Language returns the formatter's language tag.
func (f *Formatter) Language() language.Tag {
	return f.tag
}

// Name returns the title-cased display name ("bulbasaur" -> "Bulbasaur").
func (f *Formatter) Name(p PokemonInfo) string {
	return f.caser.String(p.Name)
}

// ID returns the pokedex number padded to three digits ("#001").
func (f *Formatter) ID(p PokemonInfo) string {
	return fmt.Sprintf("#%03d", p.ID)
}

// Weight returns the weight in kilograms with one decimal ("6.9 KG").
func (f *Formatter) Weight(p PokemonInfo) string {
	return f.localize(msgWeight, map[string]any{
		"Value": fmt.Sprintf("%.1f", float64(p.Weight)/10),
	})
}

// Height returns the height in metres with one decimal ("0.7 M").
func (f *Formatter) Height(p PokemonInfo) string {
	return f.localize(msgHeight, map[string]any{
		"Value": fmt.Sprintf("%.1f", float64(p.Height)/10),
	})
}

// HP returns the hp stat against MaxHP (" 45/300").
func (f *Formatter) HP(p PokemonInfo) string { return f.stat(p.HP(), MaxHP) }

func (f *Formatter) Attack(p PokemonInfo) string { return f.stat(p.Attack(), MaxAttack) }

func (f *Formatter) Defense(p PokemonInfo) string { return f.stat(p.Defense(), MaxDefense) }

func (f *Formatter) Speed(p PokemonInfo) string { return f.stat(p.Speed(), MaxSpeed) }

// Exp returns the base experience against MaxExp (" 64/1000").
func (f *Formatter) Exp(p PokemonInfo) string {
	return f.stat(p.Experience, MaxExp)
}

func (f *Formatter) stat(value, maxValue int) string {
	return f.localize(msgStat, map[string]any{"Value": value, "Max": maxValue})
}

func (f *Formatter) localize(msg *i18n.Message, data map[string]any) string {
	s, err := f.localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: msg,
		TemplateData:   data,
	})
	if err != nil && s == "" {
		return fmt.Sprintf("%v", data["Value"])
	}
	return s
}
