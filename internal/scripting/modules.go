package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
)

// RegisterModules registers the engine.* Lua tables into L:
//
//	engine.log.{debug,info,warn,error}(msg)
//	engine.dice.intn(n)            -> integer in [0, n)
//	engine.dice.chance(p)          -> true with probability p
//	engine.types.effectiveness(attack, defender1 [, defender2]) -> 0, 0.5, 1 or 2
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "types", typesModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logFn := range levels {
		logFn := logFn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "intn", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n <= 0 {
			L.ArgError(1, "n must be positive")
			return 0
		}
		L.Push(lua.LNumber(m.roller.Intn(n)))
		return 1
	}))
	L.SetField(mod, "chance", L.NewFunction(func(L *lua.LState) int {
		p := float64(L.CheckNumber(1))
		L.Push(lua.LBool(dice.Chance(m.roller, p)))
		return 1
	}))
	return mod
}

func typesModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "effectiveness", L.NewFunction(func(L *lua.LState) int {
		attack, err := element.Parse(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		var defenders []element.Type
		for i := 2; i <= L.GetTop(); i++ {
			d, err := element.Parse(L.CheckString(i))
			if err != nil {
				L.ArgError(i, err.Error())
				return 0
			}
			defenders = append(defenders, d)
		}
		L.Push(lua.LNumber(element.Effectiveness(attack, defenders...)))
		return 1
	}))
	return mod
}
