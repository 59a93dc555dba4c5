package rules_test

import (
	"math"
	"testing"

	"github.com/oriole-pcb/gridroute/rules"
	"github.com/stretchr/testify/assert"
)

func TestNewDesignRules_Defaults(t *testing.T) {
	r := rules.NewDesignRules()
	assert.Equal(t, 0.2, r.TraceWidth)
	assert.Equal(t, 0.1, r.GridResolution)
	assert.InDelta(t, math.Sqrt2, r.CostDiagonal, 1e-9)
	assert.Equal(t, 10.0, r.CostVia)
}

func TestNewDesignRules_OptionsOverrideDefaults(t *testing.T) {
	r := rules.NewDesignRules(
		rules.WithTraceWidth(0.3),
		rules.WithGridResolution(0.25),
		rules.WithCostWeights(1, 1.5, 4, 8),
	)
	assert.Equal(t, 0.3, r.TraceWidth)
	assert.Equal(t, 0.25, r.GridResolution)
	assert.Equal(t, 8.0, r.CostVia)
	assert.Equal(t, 4.0, r.CostTurn)
}

func TestWithViaGeometry(t *testing.T) {
	r := rules.NewDesignRules(rules.WithViaGeometry(0.4, 0.8))
	assert.Equal(t, 0.4, r.ViaDrill)
	assert.Equal(t, 0.8, r.ViaDiameter)
}

func TestNetClassMap_ClassForKnownAndUnknown(t *testing.T) {
	m := rules.NewNetClassMap([]string{"VCC"}, []string{"CLK"})
	assert.Equal(t, rules.Power, m.ClassFor("VCC"))
	assert.Equal(t, rules.Clock, m.ClassFor("CLK"))
	assert.Equal(t, rules.Default, m.ClassFor("SIG1"))
}

func TestDefaultNetClassMap_CoversCommonPowerAndClockNames(t *testing.T) {
	assert.Equal(t, rules.Power, rules.DefaultNetClassMap.ClassFor("GND"))
	assert.Equal(t, rules.Clock, rules.DefaultNetClassMap.ClassFor("MCLK"))
}

func TestFor_MergesGlobalAndNetClass(t *testing.T) {
	global := rules.NewDesignRules(rules.WithCostWeights(1, 1.4, 5, 12))
	classes := rules.NewNetClassMap(nil, []string{"CLK"})
	eff := rules.For(global, "CLK", classes)
	assert.True(t, eff.LengthCritical)
	assert.Equal(t, 2, eff.Priority)
	assert.Equal(t, 12.0, eff.CostVia)
}

func TestFor_NilClassMapFallsBackToDefault(t *testing.T) {
	global := rules.NewDesignRules()
	eff := rules.For(global, "ANYTHING", nil)
	assert.Equal(t, rules.Default.Priority, eff.Priority)
	assert.Equal(t, rules.Default.TraceWidth, eff.TraceWidth)
}
