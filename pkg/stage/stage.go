// Package stage maps a crop's total growth duration onto the four FAO-56
// phenological stages and resolves which stage a crop is in on a given day.
package stage

import "time"

// Boundary is one stage with its cumulative end day. A day index belongs to
// the first boundary whose EndDay exceeds it; anything past the last
// explicit boundary is still Late.
type Boundary struct {
	Name        string  `json:"name"`
	EndDay      int     `json:"end_day"`
	Kc          float64 `json:"kc"`
	Description string  `json:"description"`
}

// Info describes the stage a crop is in as of a date.
type Info struct {
	StageName       string  `json:"stage_name"`
	Kc              float64 `json:"kc"`
	DaysAfterSowing int     `json:"days_after_sowing"`
	ProgressPct     int     `json:"progress_pct"`
	Description     string  `json:"description"`
}

// HarvestReadyKc is the terminal crop coefficient once the growth cycle
// is complete.
const HarvestReadyKc = 0.60

// MinDuration is the shortest growth duration the proportion table can
// split into four non-degenerate stages. Below a week the floored
// per-stage durations collapse and end days stop increasing.
const MinDuration = 7

var proportions = []struct {
	name        string
	share       float64
	kc          float64
	description string
}{
	{"Initial", 0.20, 0.70, "Germination & early vegetative growth"},
	{"Development", 0.30, 0.95, "Rapid canopy development"},
	{"Mid-Season", 0.30, 1.15, "Full canopy - peak water demand"},
	{"Late", 0.20, 0.80, "Ripening & senescence"},
}

// Boundaries splits totalDuration into the four stages. Durations are
// floored per stage; the Late stage absorbs any rounding remainder by
// being the terminal catch-all.
func Boundaries(totalDuration int) []Boundary {
	out := make([]Boundary, 0, len(proportions))
	cumulative := 0
	for _, p := range proportions {
		cumulative += int(float64(totalDuration) * p.share)
		out = append(out, Boundary{
			Name:        p.name,
			EndDay:      cumulative,
			Kc:          p.kc,
			Description: p.description,
		})
	}
	return out
}

// ForDay resolves the stage for an integer day index after sowing.
func ForDay(boundaries []Boundary, day int) Boundary {
	for _, b := range boundaries {
		if day < b.EndDay {
			return b
		}
	}
	return boundaries[len(boundaries)-1]
}

// Current computes the stage a crop is in as of asOf. Once
// daysAfterSowing reaches totalDuration the crop is Harvest-Ready with a
// fixed Kc and 100% progress; before that, progress is capped at 99 to
// reserve 100 for harvest-ready.
func Current(plantingDate time.Time, totalDuration int, asOf time.Time) Info {
	days := daysBetween(plantingDate, asOf)
	if days < 0 {
		days = 0
	}

	if days >= totalDuration {
		return Info{
			StageName:       "Harvest-Ready",
			Kc:              HarvestReadyKc,
			DaysAfterSowing: days,
			ProgressPct:     100,
			Description:     "Crop has completed its growth cycle",
		}
	}

	b := ForDay(Boundaries(totalDuration), days)
	progress := days * 100 / totalDuration
	if progress > 99 {
		progress = 99
	}
	return Info{
		StageName:       b.Name,
		Kc:              b.Kc,
		DaysAfterSowing: days,
		ProgressPct:     progress,
		Description:     b.Description,
	}
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
