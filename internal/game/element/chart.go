package element

// Multiplier is a clamped type-matchup multiplier: one of 0, 0.5, 1 or 2.
type Multiplier float64

const (
	Immune           Multiplier = 0
	NotVeryEffective Multiplier = 0.5
	Neutral          Multiplier = 1
	SuperEffective   Multiplier = 2
)

// Text returns the battle message announcing m, or "" for a neutral hit.
// Immunity is announced by the caller because its message names the defender.
func (m Multiplier) Text() string {
	switch m {
	case SuperEffective:
		return "It's super effective!"
	case NotVeryEffective:
		return "It's not very effective..."
	default:
		return ""
	}
}

// chart maps attacking type to defending type to per-type factor.
// Absent pairs are neutral. The graph is directed: an entry for A vs B says
// nothing about B vs A.
var chart = map[Type]map[Type]float64{
	Shark: {
		Fighting: 0.5,
	},
	Leviathan: {
		Leviathan: 2,
		Ice:       0.5,
	},
	Breaching: {
		Fighting: 2,
		Algae:    2,
		Electric: 0.5,
		Ice:      0.5,
	},
	Fighting: {
		Shark:     2,
		Steel:     2,
		Ice:       2,
		Breaching: 0.5,
		Psychic:   0.5,
	},
	Psychic: {
		Fighting: 2,
		Poison:   2,
		Ghost:    0.5,
		Deepsea:  0,
	},
	Freshwater: {
		Fire:     2,
		Fossil:   2,
		Electric: 0.5,
		Algae:    0.5,
	},
	Fire: {
		Algae:      2,
		Steel:      2,
		Ice:        2,
		Freshwater: 0.5,
		Fossil:     0.5,
	},
	Fairy: {
		Fighting:  2,
		Leviathan: 2,
		Deepsea:   2,
		Poison:    0.5,
		Steel:     0.5,
	},
	Algae: {
		Freshwater: 2,
		Fossil:     2,
		Ground:     2,
		Fire:       0.5,
		Ice:        0.5,
		Poison:     0.5,
	},
	Steel: {
		Fairy:    2,
		Ice:      2,
		Fossil:   2,
		Fire:     0.5,
		Fighting: 0.5,
		Ground:   0.5,
	},
	Ghost: {
		Ghost:   2,
		Psychic: 2,
		Shark:   0,
		Deepsea: 0.5,
	},
	Deepsea: {
		Ghost:    2,
		Psychic:  2,
		Fighting: 0.5,
		Fairy:    0.5,
	},
	Poison: {
		Fairy:   2,
		Algae:   2,
		Ground:  0.5,
		Psychic: 0.5,
		Steel:   0,
		Poison:  0.5,
	},
	Ray: {
		Algae:     2,
		Psychic:   2,
		Deepsea:   2,
		Breaching: 0.5,
		Fire:      0.5,
		Fossil:    0.5,
	},
	Ice: {
		Breaching:  2,
		Algae:      2,
		Leviathan:  2,
		Fire:       0.5,
		Fighting:   0.5,
		Fossil:     0.5,
		Freshwater: 0.5,
		Steel:      0.5,
	},
	Electric: {
		Freshwater: 2,
		Breaching:  2,
		Ground:     0,
		Electric:   0.5,
	},
	Fossil: {
		Fire:       2,
		Ice:        2,
		Breaching:  2,
		Freshwater: 0.5,
		Fighting:   0.5,
		Algae:      0.5,
		Steel:      0.5,
	},
	Ground: {
		Electric:   2,
		Poison:     2,
		Fire:       2,
		Steel:      2,
		Freshwater: 0.5,
		Ice:        0.5,
		Algae:      0.5,
		Breaching:  0,
	},
}

// Factor returns the raw single-type factor for attack against defend.
//
// Postcondition: Returns 1 when the chart has no entry for the pair.
func Factor(attack, defend Type) float64 {
	if f, ok := chart[attack][defend]; ok {
		return f
	}
	return 1
}

// Effectiveness returns the clamped multiplier for attack against a defender
// carrying defenders (one or two types). The per-type factors are multiplied
// and the product is folded back onto the four-value scale, so a double
// resistance reads the same as a single one.
//
// Postcondition: Returns one of Immune, NotVeryEffective, Neutral, SuperEffective.
func Effectiveness(attack Type, defenders ...Type) Multiplier {
	product := 1.0
	for _, d := range defenders {
		product *= Factor(attack, d)
	}
	switch {
	case product == 0:
		return Immune
	case product <= 0.25, product == 0.5:
		return NotVeryEffective
	case product == 1:
		return Neutral
	case product >= 2:
		return SuperEffective
	default:
		return Neutral
	}
}
