// Package ai chooses moves for creatures the player does not control.
package ai

import (
	"fmt"
	"strings"
)

// Difficulty tunes how strongly the AI prefers its best-scoring move.
type Difficulty string

const (
	Random Difficulty = "random"
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty converts s to a Difficulty.
//
// Postcondition: Returns an error for any name other than random, easy,
// medium or hard.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Random, Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("ai: unknown difficulty %q", s)
	}
}

// hardTrainerTitles mark trainers that battle at Hard.
var hardTrainerTitles = []string{"leader", "elite", "champion", "ace", "expert", "veteran"}

// DifficultyForTrainer derives a difficulty from a trainer's display name.
//
// Postcondition: Hard when the name contains a senior title, Medium otherwise.
func DifficultyForTrainer(name string) Difficulty {
	lower := strings.ToLower(name)
	for _, title := range hardTrainerTitles {
		if strings.Contains(lower, title) {
			return Hard
		}
	}
	return Medium
}

// WildDifficulty returns the difficulty used by wild creatures.
func WildDifficulty() Difficulty {
	return Easy
}

// optimalChance is the probability of taking the top-scoring move outright.
func (d Difficulty) optimalChance() float64 {
	switch d {
	case Easy:
		return 0.4
	case Medium:
		return 0.7
	case Hard:
		return 0.9
	default:
		return 0.5
	}
}
