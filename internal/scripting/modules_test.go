package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/scripting"
)

func runScript(t testing.TB, mgr *scripting.Manager, luaSrc, hook string, args ...lua.LValue) lua.LValue {
	t.Helper()
	dir := writeTempLua(t, "test.lua", luaSrc)
	require.NoError(t, mgr.LoadScope("modtest", dir, 0))
	ret, err := mgr.CallHook("modtest", hook, args...)
	require.NoError(t, err)
	return ret
}

func TestEngineLog_AllLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	mgr := scripting.NewManager(dice.NewLoggedRoller(dice.NewSeededSource(1), zap.NewNop()), logger)
	t.Cleanup(mgr.Close)

	runScript(t, mgr, `
		function do_all_logs()
			engine.log.debug("d")
			engine.log.info("i")
			engine.log.warn("w")
			engine.log.error("e")
		end
	`, "do_all_logs")

	levels := map[string]bool{}
	for _, e := range logs.All() {
		if e.ContextMap()["source"] == "lua" {
			levels[e.Level.String()] = true
		}
	}
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		assert.True(t, levels[lvl], "expected %s log", lvl)
	}
}

func TestEngineDice_Intn_InRange(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "d.lua", `function roll(n) return engine.dice.intn(n) end`)
	require.NoError(t, mgr.LoadScope("dice", dir, 0))
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 1000).Draw(rt, "n")
		ret, err := mgr.CallHook("dice", "roll", lua.LNumber(n))
		if err != nil {
			rt.Fatal(err)
		}
		v, ok := ret.(lua.LNumber)
		if !ok || int(v) < 0 || int(v) >= n {
			rt.Fatalf("intn(%d) returned %v", n, ret)
		}
	})
}

func TestEngineDice_Intn_RejectsNonPositive(t *testing.T) {
	mgr, logs := newTestManager(t)
	ret := runScript(t, mgr, `function roll() return engine.dice.intn(0) end`, "roll")
	assert.Equal(t, lua.LNil, ret)
	assert.NotZero(t, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestEngineDice_Chance_Extremes(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret := runScript(t, mgr, `
		function extremes()
			return engine.dice.chance(1.0) and not engine.dice.chance(0)
		end
	`, "extremes")
	assert.Equal(t, lua.LTrue, ret)
}

func TestEngineTypes_Effectiveness(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "t.lua", `
		function eff(a, d1, d2)
			if d2 then return engine.types.effectiveness(a, d1, d2) end
			return engine.types.effectiveness(a, d1)
		end
	`)
	require.NoError(t, mgr.LoadScope("types", dir, 0))

	cases := []struct {
		args []lua.LValue
		want lua.LNumber
	}{
		{[]lua.LValue{lua.LString("fire"), lua.LString("algae")}, 2},
		{[]lua.LValue{lua.LString("electric"), lua.LString("ground")}, 0},
		{[]lua.LValue{lua.LString("shark"), lua.LString("shark")}, 1},
	}
	for _, tc := range cases {
		ret, err := mgr.CallHook("types", "eff", tc.args...)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ret, "%v", tc.args)
	}

	ret, err := mgr.CallHook("types", "eff", lua.LString("plasma"), lua.LString("shark"))
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret, "unknown type raises a Lua error")
}
