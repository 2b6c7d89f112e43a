package pokedex

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/bundle"
	"github.com/BrandonKowalski/navigator/pkg/pokedex/model"
)

// Bundle keys for a PokemonInfo payload.
const (
	keyID         = "id"
	keyName       = "name"
	keyHeight     = "height"
	keyWeight     = "weight"
	keyExperience = "base_experience"
	keyTypes      = "types"
	keyStats      = "stats"
	keySlot       = "slot"
	keyTypeName   = "type_name"
	keyBaseStat   = "base_stat"
	keyEffort     = "effort"
	keyStatName   = "stat_name"
)

// PokemonType converts a PokemonInfo to and from its route argument forms:
// a percent-encoded JSON string for deep links and a nested bundle for state
// hand-off.
var PokemonType navigator.NavType[model.PokemonInfo] = pokemonType{}

type pokemonType struct{}

// SerializeAsValue returns the URL-safe form: JSON, then percent-encoded.
// Spaces become %20, never '+', so path and query decoders agree on the result.
func (pokemonType) SerializeAsValue(p model.PokemonInfo) string {
	data, err := json.Marshal(p)
	if err != nil {
		// PokemonInfo holds only ints, strings and slices of them.
		panic(fmt.Sprintf("pokedex: marshal pokemon %d: %v", p.ID, err))
	}
	return strings.ReplaceAll(url.QueryEscape(string(data)), "+", "%20")
}

// ParseValue decodes a string produced by SerializeAsValue.
func (pokemonType) ParseValue(value string) (model.PokemonInfo, error) {
	var p model.PokemonInfo

	raw, err := url.PathUnescape(value)
	if err != nil {
		return p, fmt.Errorf("%w: percent-decode pokemon: %v", ErrMalformedRoute, err)
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.PokemonInfo{}, fmt.Errorf("%w: parse pokemon: %v", ErrMalformedRoute, err)
	}
	return p, nil
}

// Put writes p into b under key as a nested bundle.
func (pokemonType) Put(b *bundle.Bundle, key string, p model.PokemonInfo) {
	nested := bundle.New()
	nested.PutInt(keyID, p.ID)
	nested.PutString(keyName, p.Name)
	nested.PutInt(keyHeight, p.Height)
	nested.PutInt(keyWeight, p.Weight)
	nested.PutInt(keyExperience, p.Experience)

	types := make([]*bundle.Bundle, len(p.Types))
	for i, t := range p.Types {
		tb := bundle.New()
		tb.PutInt(keySlot, t.Slot)
		tb.PutString(keyTypeName, t.Type.Name)
		types[i] = tb
	}
	nested.PutBundleList(keyTypes, types)

	stats := make([]*bundle.Bundle, len(p.Stats))
	for i, s := range p.Stats {
		sb := bundle.New()
		sb.PutInt(keyBaseStat, s.BaseStat)
		sb.PutInt(keyEffort, s.Effort)
		sb.PutString(keyStatName, s.Stat.Name)
		stats[i] = sb
	}
	nested.PutBundleList(keyStats, stats)

	b.PutBundle(key, nested)
}

// Get reads a pokemon written by Put.
func (pokemonType) Get(b *bundle.Bundle, key string) (model.PokemonInfo, error) {
	nested, ok := b.GetBundle(key)
	if !ok {
		return model.PokemonInfo{}, fmt.Errorf("pokedex: no pokemon under %q", key)
	}

	r := bundleReader{b: nested, path: key}
	p := model.PokemonInfo{
		ID:         r.readInt(keyID),
		Name:       r.readString(keyName),
		Height:     r.readInt(keyHeight),
		Weight:     r.readInt(keyWeight),
		Experience: r.readInt(keyExperience),
	}

	for i, tb := range r.readList(keyTypes) {
		tr := bundleReader{b: tb, path: fmt.Sprintf("%s.%s[%d]", key, keyTypes, i), err: r.err}
		p.Types = append(p.Types, model.TypeResponse{
			Slot: tr.readInt(keySlot),
			Type: model.Type{Name: tr.readString(keyTypeName)},
		})
		r.err = tr.err
	}

	for i, sb := range r.readList(keyStats) {
		sr := bundleReader{b: sb, path: fmt.Sprintf("%s.%s[%d]", key, keyStats, i), err: r.err}
		p.Stats = append(p.Stats, model.StatsResponse{
			BaseStat: sr.readInt(keyBaseStat),
			Effort:   sr.readInt(keyEffort),
			Stat:     model.Stat{Name: sr.readString(keyStatName)},
		})
		r.err = sr.err
	}

	if r.err != nil {
		return model.PokemonInfo{}, r.err
	}
	if p.Types == nil {
		p.Types = []model.TypeResponse{}
	}
	if p.Stats == nil {
		p.Stats = []model.StatsResponse{}
	}
	return p, nil
}

// bundleReader reads typed fields and keeps the first error.
type bundleReader struct {
	b    *bundle.Bundle
	path string
	err  error
}

func (r *bundleReader) readInt(key string) int {
	v, ok := r.b.GetInt(key)
	if !ok {
		r.fail(key, "int")
	}
	return v
}

func (r *bundleReader) readString(key string) string {
	v, ok := r.b.GetString(key)
	if !ok {
		r.fail(key, "string")
	}
	return v
}

func (r *bundleReader) readList(key string) []*bundle.Bundle {
	v, ok := r.b.GetBundleList(key)
	if !ok {
		r.fail(key, "bundle list")
	}
	return v
}

func (r *bundleReader) fail(key, kind string) {
	if r.err == nil {
		r.err = fmt.Errorf("pokedex: %s.%s: missing or not a %s", r.path, key, kind)
	}
}
