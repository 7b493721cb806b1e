package creature

import (
	"fmt"

	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// Nature is a fixed personality that raises one stat by 10% and lowers
// another by 10%. Five natures are neutral. The zero value is neutral.
type Nature string

const (
	Hardy   Nature = "hardy"
	Docile  Nature = "docile"
	Serious Nature = "serious"
	Bashful Nature = "bashful"
	Quirky  Nature = "quirky"

	Lonely  Nature = "lonely"
	Brave   Nature = "brave"
	Adamant Nature = "adamant"
	Naughty Nature = "naughty"

	Bold    Nature = "bold"
	Relaxed Nature = "relaxed"
	Impish  Nature = "impish"
	Lax     Nature = "lax"

	Modest Nature = "modest"
	Mild   Nature = "mild"
	Quiet  Nature = "quiet"
	Rash   Nature = "rash"

	Calm    Nature = "calm"
	Gentle  Nature = "gentle"
	Sassy   Nature = "sassy"
	Careful Nature = "careful"

	Timid Nature = "timid"
	Hasty Nature = "hasty"
	Jolly Nature = "jolly"
	Naive Nature = "naive"
)

type natureEffect struct {
	boosts move.Stat
	lowers move.Stat
}

var natureEffects = map[Nature]natureEffect{
	Hardy: {}, Docile: {}, Serious: {}, Bashful: {}, Quirky: {},

	Lonely:  {move.Attack, move.Defense},
	Brave:   {move.Attack, move.Speed},
	Adamant: {move.Attack, move.SpAttack},
	Naughty: {move.Attack, move.SpDefense},

	Bold:    {move.Defense, move.Attack},
	Relaxed: {move.Defense, move.Speed},
	Impish:  {move.Defense, move.SpAttack},
	Lax:     {move.Defense, move.SpDefense},

	Modest: {move.SpAttack, move.Attack},
	Mild:   {move.SpAttack, move.Defense},
	Quiet:  {move.SpAttack, move.Speed},
	Rash:   {move.SpAttack, move.SpDefense},

	Calm:    {move.SpDefense, move.Attack},
	Gentle:  {move.SpDefense, move.Defense},
	Sassy:   {move.SpDefense, move.Speed},
	Careful: {move.SpDefense, move.SpAttack},

	Timid: {move.Speed, move.Attack},
	Hasty: {move.Speed, move.Defense},
	Jolly: {move.Speed, move.SpAttack},
	Naive: {move.Speed, move.SpDefense},
}

// Natures lists all 25 natures in a fixed order.
var Natures = []Nature{
	Hardy, Docile, Serious, Bashful, Quirky,
	Lonely, Brave, Adamant, Naughty,
	Bold, Relaxed, Impish, Lax,
	Modest, Mild, Quiet, Rash,
	Calm, Gentle, Sassy, Careful,
	Timid, Hasty, Jolly, Naive,
}

// ParseNature validates s. The empty string parses as the zero (neutral) nature.
func ParseNature(s string) (Nature, error) {
	n := Nature(s)
	if n == "" {
		return n, nil
	}
	if _, ok := natureEffects[n]; !ok {
		return "", fmt.Errorf("creature: unknown nature %q", s)
	}
	return n, nil
}

// RandomNature draws one of the 25 natures uniformly.
func RandomNature(src dice.Source) Nature {
	return Natures[src.Intn(len(Natures))]
}

// Factor returns 1.1 for the stat n boosts, 0.9 for the stat it lowers and
// 1.0 otherwise.
func (n Nature) Factor(stat move.Stat) float64 {
	e := natureEffects[n]
	switch stat {
	case "":
		return 1.0
	case e.boosts:
		return 1.1
	case e.lowers:
		return 0.9
	default:
		return 1.0
	}
}

// Neutral reports whether n changes no stat.
func (n Nature) Neutral() bool {
	return natureEffects[n].boosts == ""
}
