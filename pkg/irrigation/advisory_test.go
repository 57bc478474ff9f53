package irrigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"krishi/pkg/weather"
)

func TestCalculateFullIrrigation(t *testing.T) {
	a := Calculate(30, 0, 0.95, 50)

	assert.InDelta(t, 15.0, a.ET0, 1e-9)
	assert.InDelta(t, 14.25, a.ETc, 1e-9)
	assert.InDelta(t, 14.25, a.NetWater, 1e-9)
	assert.Equal(t, "Full irrigation required", a.Decision)
	assert.Equal(t, "danger", a.Badge)
}

func TestCalculateWetSoilOverridesDemand(t *testing.T) {
	a := Calculate(20, 0, 0.70, 80)

	assert.Equal(t, "No irrigation needed — soil moisture is adequate", a.Decision)
	assert.Equal(t, "success", a.Badge)
	assert.Zero(t, a.NetWater)
	// ET values are still reported even when the requirement is zeroed.
	assert.InDelta(t, 10.0, a.ET0, 1e-9)
	assert.InDelta(t, 7.0, a.ETc, 1e-9)
}

func TestCalculateCriticallyDryBeatsRainfall(t *testing.T) {
	a := Calculate(25, 50, 1.15, 20)

	assert.Equal(t, "Urgent irrigation required — soil critically dry", a.Decision)
	assert.Equal(t, "danger", a.Badge)
	// Rain exceeded demand, so the net requirement is clamped at zero.
	assert.Zero(t, a.NetWater)
}

func TestCalculateRainfallSufficient(t *testing.T) {
	a := Calculate(20, 10, 0.70, 50)

	assert.Equal(t, "No irrigation needed — rainfall is sufficient", a.Decision)
	assert.Equal(t, "success", a.Badge)
	assert.Zero(t, a.NetWater)
}

func TestCalculateVolumeTiers(t *testing.T) {
	light := Calculate(4, 0, 0.95, 50) // net 1.9
	assert.Equal(t, "Light irrigation recommended", light.Decision)
	assert.Equal(t, "info", light.Badge)

	moderate := Calculate(10, 0, 0.95, 50) // net 4.75
	assert.Equal(t, "Moderate irrigation required", moderate.Decision)
	assert.Equal(t, "warning", moderate.Badge)
}

func TestCalculateNegativeTemperatureClampsET0(t *testing.T) {
	a := Calculate(-5, 0, 0.95, 50)

	assert.Zero(t, a.ET0)
	assert.Zero(t, a.ETc)
	assert.Zero(t, a.NetWater)
	assert.Equal(t, "No irrigation needed — rainfall is sufficient", a.Decision)
}

func TestWeeklyPlanDecisions(t *testing.T) {
	forecast := []weather.ForecastDay{
		{Date: "2026-03-10", Temp: 30, Humidity: 60, Rain: 8},
		{Date: "2026-03-11", Temp: 36, Humidity: 40, Rain: 0},
		{Date: "2026-03-12", Temp: 28, Humidity: 55, Rain: 1},
	}

	plan := WeeklyPlan(forecast, 5, 50)
	assert.Len(t, plan, 3)

	assert.Equal(t, "Rain expected — skip irrigation", plan[0].Decision)
	assert.Zero(t, plan[0].Water)
	assert.InDelta(t, 5.0, plan[0].Saved, 1e-9)

	assert.Equal(t, "Hot day — full irrigation", plan[1].Decision)
	assert.InDelta(t, 6.0, plan[1].Water, 1e-9)
	assert.Zero(t, plan[1].Saved)

	assert.Equal(t, "Normal irrigation", plan[2].Decision)
	assert.InDelta(t, 5.0, plan[2].Water, 1e-9)
}

func TestWeeklyPlanWetSoilSkipsUnlessRaining(t *testing.T) {
	forecast := []weather.ForecastDay{
		{Date: "2026-03-10", Temp: 36, Humidity: 40, Rain: 0},
	}

	plan := WeeklyPlan(forecast, 5, 75)
	assert.Equal(t, "Soil wet — no irrigation", plan[0].Decision)
	assert.Zero(t, plan[0].Water)
	assert.InDelta(t, 5.0, plan[0].Saved, 1e-9)
}
