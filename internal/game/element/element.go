// Package element defines the ocean-themed elemental types and the
// attacker-vs-defender effectiveness chart.
package element

import "fmt"

// Type is one of the eighteen elemental types.
type Type string

const (
	Shark      Type = "shark"
	Leviathan  Type = "leviathan"
	Breaching  Type = "breaching"
	Fighting   Type = "fighting"
	Psychic    Type = "psychic"
	Freshwater Type = "freshwater"
	Fire       Type = "fire"
	Fairy      Type = "fairy"
	Algae      Type = "algae"
	Steel      Type = "steel"
	Ghost      Type = "ghost"
	Deepsea    Type = "deepsea"
	Poison     Type = "poison"
	Ray        Type = "ray"
	Ice        Type = "ice"
	Electric   Type = "electric"
	Fossil     Type = "fossil"
	Ground     Type = "ground"
)

// All lists every elemental type in declaration order.
var All = []Type{
	Shark, Leviathan, Breaching, Fighting, Psychic, Freshwater,
	Fire, Fairy, Algae, Steel, Ghost, Deepsea,
	Poison, Ray, Ice, Electric, Fossil, Ground,
}

// Parse validates s as a known elemental type.
//
// Postcondition: Returns the Type or an error naming the unknown value.
func Parse(s string) (Type, error) {
	for _, t := range All {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("element: unknown type %q", s)
}

// Has reports whether t appears in types.
func Has(types []Type, t Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
