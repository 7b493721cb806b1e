package ai

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// ScoreMoveHook is the Lua global a trainer script defines to adjust move
// scores.
const ScoreMoveHook = "score_move"

// ScriptCaller is the interface required by ScriptHook to reach Lua.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the given scope's VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error)
}

// MoveContext is the snapshot a ScoreHook sees for one candidate move.
type MoveContext struct {
	Move          *move.Move
	Effectiveness element.Multiplier
	AttackerHP    float64 // fraction of max HP
	DefenderHP    float64
	AttackerTypes []element.Type
	DefenderTypes []element.Type
	DefenderState string // status name, empty when healthy
}

func newMoveContext(attacker, defender *creature.Instance, mv *move.Move) MoveContext {
	return MoveContext{
		Move:          mv,
		Effectiveness: element.Effectiveness(mv.Type, defender.Species.Types...),
		AttackerHP:    hpFraction(attacker),
		DefenderHP:    hpFraction(defender),
		AttackerTypes: attacker.Species.Types,
		DefenderTypes: defender.Species.Types,
		DefenderState: string(defender.Condition.Status),
	}
}

// ScoreHook adjusts the built-in score of a candidate move.
type ScoreHook interface {
	AdjustScore(mc MoveContext, score float64) float64
}

// ScriptHook is a ScoreHook backed by a Lua score_move function:
//
//	function score_move(score, name, type, category, power, accuracy,
//	                    priority, effectiveness, attacker_hp, defender_hp,
//	                    defender_status)
//
// A numeric return value replaces the score; anything else keeps it.
type ScriptHook struct {
	caller ScriptCaller
	scope  string
}

// NewScriptHook binds caller to scope.
//
// Precondition: caller must not be nil.
func NewScriptHook(caller ScriptCaller, scope string) *ScriptHook {
	if caller == nil {
		panic("ai.NewScriptHook: caller must not be nil")
	}
	return &ScriptHook{caller: caller, scope: scope}
}

// AdjustScore calls score_move in the hook's scope.
//
// Postcondition: Returns score unchanged when the hook is missing, fails, or
// returns a non-number.
func (h *ScriptHook) AdjustScore(mc MoveContext, score float64) float64 {
	mv := mc.Move
	ret, err := h.caller.CallHook(h.scope, ScoreMoveHook,
		lua.LNumber(score),
		lua.LString(mv.Name),
		lua.LString(mv.Type),
		lua.LString(mv.Category),
		lua.LNumber(mv.Power),
		lua.LNumber(mv.Accuracy),
		lua.LNumber(mv.Priority),
		lua.LNumber(mc.Effectiveness),
		lua.LNumber(mc.AttackerHP),
		lua.LNumber(mc.DefenderHP),
		lua.LString(mc.DefenderState),
	)
	if err != nil {
		return score
	}
	if n, ok := ret.(lua.LNumber); ok {
		return float64(n)
	}
	return score
}
