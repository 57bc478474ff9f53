// Package irrigation computes point-in-time irrigation advice from current
// weather and soil conditions, and short-range plans from a forecast.
package irrigation

import (
	"math"

	"krishi/pkg/weather"
)

// Advice is a single-day irrigation recommendation. ET0 is the reference
// evapotranspiration, ETc the crop-adjusted demand, NetWater what remains
// after rainfall, all in mm/day.
type Advice struct {
	ET0      float64 `json:"et0"`
	ETc      float64 `json:"etc"`
	NetWater float64 `json:"net_water"`
	Decision string  `json:"decision"`
	Badge    string  `json:"badge"`
}

// Calculate derives irrigation advice from temperature (°C), rainfall (mm),
// the crop coefficient and current soil moisture (%). ET0 uses the
// Hargreaves approximation; saturated soil zeroes the requirement before
// the water-volume tiers are consulted.
func Calculate(temperature, rainfall, kc, soilMoisture float64) Advice {
	et0 := math.Max(0, 0.5*temperature)
	etc := round3(et0 * kc)
	net := math.Max(round3(etc-rainfall), 0)

	var decision, badge string
	switch {
	case soilMoisture > 70:
		decision = "No irrigation needed — soil moisture is adequate"
		badge = "success"
		net = 0
	case soilMoisture < 30:
		decision = "Urgent irrigation required — soil critically dry"
		badge = "danger"
	case net == 0:
		decision = "No irrigation needed — rainfall is sufficient"
		badge = "success"
	case net < 3:
		decision = "Light irrigation recommended"
		badge = "info"
	case net < 6:
		decision = "Moderate irrigation required"
		badge = "warning"
	default:
		decision = "Full irrigation required"
		badge = "danger"
	}

	return Advice{
		ET0:      round3(et0),
		ETc:      etc,
		NetWater: net,
		Decision: decision,
		Badge:    badge,
	}
}

// PlanDay is one day of a forecast-driven irrigation plan. Saved records
// water not spent because rain or wet soil covered the day's need.
type PlanDay struct {
	Date     string  `json:"date"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Rain     float64 `json:"rain"`
	Decision string  `json:"decision"`
	Water    float64 `json:"water"`
	Saved    float64 `json:"saved"`
	Badge    string  `json:"badge"`
}

// WeeklyPlan maps each forecast day to an irrigation action. Rain above
// 5mm or already-wet soil skips the day; heat above 34°C scales the base
// amount up by 20%.
func WeeklyPlan(forecast []weather.ForecastDay, baseWater, soilMoisture float64) []PlanDay {
	plan := make([]PlanDay, 0, len(forecast))
	for _, day := range forecast {
		var decision, badge string
		var water, saved float64
		switch {
		case day.Rain > 5:
			decision = "Rain expected — skip irrigation"
			badge = "info"
			saved = baseWater
		case soilMoisture > 70:
			decision = "Soil wet — no irrigation"
			badge = "success"
			saved = baseWater
		case day.Temp > 34:
			decision = "Hot day — full irrigation"
			badge = "danger"
			water = round2(baseWater * 1.2)
		default:
			decision = "Normal irrigation"
			badge = "warning"
			water = baseWater
		}
		plan = append(plan, PlanDay{
			Date:     day.Date,
			Temp:     day.Temp,
			Humidity: day.Humidity,
			Rain:     day.Rain,
			Decision: decision,
			Water:    water,
			Saved:    saved,
			Badge:    badge,
		})
	}
	return plan
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
