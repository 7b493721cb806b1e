// Package capture resolves cage throws against wild creatures.
package capture

import (
	"math"

	"github.com/cory-johannsen/reefbattle/internal/game/dice"
)

// MasterModifier is the cage modifier at and above which a capture never fails.
const MasterModifier = 255

// trials is the number of shake checks a capture must pass.
const trials = 4

// Result is the outcome of one capture attempt. Shakes is what the cage
// shows before it opens or clicks shut, so it tops out at 3 even though a
// capture needs all four checks to pass.
type Result struct {
	Success bool
	Shakes  int
}

// Probability returns the per-trial success chance for a cage throw. Lower
// current HP raises the chance.
//
// Precondition: maxHP > 0; 0 <= currentHP <= maxHP.
// Postcondition: 0 <= result <= 1.
func Probability(maxHP, currentHP, speciesRate int, modifier float64) float64 {
	hpFactor := float64(3*maxHP-2*currentHP) / float64(3*maxHP)
	p := hpFactor * float64(speciesRate) * modifier / 255
	return math.Max(0, math.Min(p, 1))
}

// Attempt throws a cage. A modifier of MasterModifier or more always
// succeeds. Otherwise up to four independent checks are rolled at
// Probability, stopping at the first failure; the capture succeeds only if
// all four pass.
//
// Precondition: maxHP > 0; src must not be nil.
// Postcondition: 0 <= Shakes <= 3; Success implies Shakes == 3.
func Attempt(maxHP, currentHP, speciesRate int, modifier float64, src dice.Source) Result {
	if modifier >= MasterModifier {
		return Result{Success: true, Shakes: 3}
	}
	p := Probability(maxHP, currentHP, speciesRate, modifier)
	passed := 0
	for i := 0; i < trials; i++ {
		if !dice.Chance(src, p) {
			break
		}
		passed++
	}
	return Result{Success: passed == trials, Shakes: min(passed, 3)}
}

var shakeMessages = [...]string{
	"The cage shook...",
	"The cage shook again...",
	"The cage shook once more...",
}

// Messages returns the narration for r: one line per shake, then the
// caught or broke-free line for a creature called name.
func (r Result) Messages(name string) []string {
	out := make([]string, 0, r.Shakes+1)
	out = append(out, shakeMessages[:r.Shakes]...)
	if r.Success {
		out = append(out, "Gotcha! "+name+" was caught!")
	} else {
		out = append(out, "Oh no! It broke free!")
	}
	return out
}
