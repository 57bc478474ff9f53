// Package scheduler projects a crop's soil-moisture trajectory from
// planting to harvest, decides when irrigation events are needed,
// reconciles projected entries against what actually happened, and
// regenerates the plan when inputs change or irrigations are missed.
package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"krishi/entities"
	histrepo "krishi/pkg/irrigation/repository"
	"krishi/pkg/ml"
	schedrepo "krishi/pkg/schedule/repository"
	soilrepo "krishi/pkg/soil/repository"
	"krishi/pkg/stage"
)

// DefaultBaseET0 is the reference evapotranspiration assumed when no
// measured value is supplied, in mm/day.
const DefaultBaseET0 = 5.0

// Simulation constants. The whole accumulation runs on decimals; binary
// floats would drift over hundreds of days.
var (
	depletionFactor  = decimal.RequireFromString("0.15")
	moistureFloor    = decimal.NewFromInt(15)
	moistureCeiling  = decimal.NewFromInt(85)
	irrigationBoost  = decimal.NewFromInt(40)
	criticalBelow    = decimal.NewFromInt(35)
	regularBelow     = decimal.NewFromInt(50)
	criticalMultiple = decimal.RequireFromString("1.2")
	maintMultiple    = decimal.RequireFromString("0.8")
)

const (
	regularGapDays     = 3
	maintenanceGapDays = 7
)

type Engine struct {
	sched schedrepo.ScheduleRepository
	hist  histrepo.HistoryRepository
	soil  soilrepo.SoilRepository
	now   func() time.Time
}

func New(sched schedrepo.ScheduleRepository, hist histrepo.HistoryRepository, soil soilrepo.SoilRepository) *Engine {
	return &Engine{sched: sched, hist: hist, soil: soil, now: time.Now}
}

// WithClock fixes the engine's notion of "today". Tests use it; production
// wiring leaves the wall clock in place.
func (e *Engine) WithClock(fn func() time.Time) *Engine {
	e.now = fn
	return e
}

func (e *Engine) today() time.Time {
	t := e.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateLifecycleSchedule simulates day-by-day moisture depletion across
// the crop's whole lifetime and emits one candidate entry per day that
// needs irrigation. Dates before today are reconciled against persisted
// records; today and later are pending. The candidates are not persisted.
func (e *Engine) GenerateLifecycleSchedule(crop *entities.Crop, initialMoisture, baseET0 float64) ([]entities.ScheduleEntry, error) {
	if err := ValidateMoisture(initialMoisture); err != nil {
		return nil, err
	}
	if baseET0 <= 0 || math.IsNaN(baseET0) || math.IsInf(baseET0, 0) {
		return nil, fmt.Errorf("base ET0 must be positive, got %v", baseET0)
	}
	if crop.GrowthDuration < stage.MinDuration {
		return nil, fmt.Errorf("growth duration must be at least %d days, got %d", stage.MinDuration, crop.GrowthDuration)
	}

	plantDate := dateOnly(crop.PlantingDate)
	harvestDate := plantDate.AddDate(0, 0, crop.GrowthDuration)
	today := e.today()
	boundaries := stage.Boundaries(crop.GrowthDuration)

	// Valid inputs reach 100%, but the simulation band is [15, 85]:
	// field capacity caps what the soil can hold before the first step.
	moisture := decimal.NewFromFloat(initialMoisture)
	if moisture.GreaterThan(moistureCeiling) {
		moisture = moistureCeiling
	}
	et0 := decimal.NewFromFloat(baseET0)
	baseWater := decimal.NewFromFloat(ml.WaterNeed(crop.CropName))

	var out []entities.ScheduleEntry
	lastIrrigationDay := 0

	for day := 0; day <= crop.GrowthDuration; day++ {
		current := plantDate.AddDate(0, 0, day)
		if current.After(harvestDate) {
			break
		}

		// Stage lookup is driven by the integer day index, not wall clock.
		b := stage.ForDay(boundaries, day)
		kc := decimal.NewFromFloat(b.Kc)

		dailyETc := et0.Mul(kc)
		moisture = moisture.Sub(dailyETc.Mul(depletionFactor))
		if moisture.LessThan(moistureFloor) {
			moisture = moistureFloor
		}

		gap := day - lastIrrigationDay

		// Decision tiers in strict priority order: critical beats regular
		// beats maintenance. The 7-day tier is the "never go more than a
		// week without checking" floor under moisture-driven urgency.
		var water decimal.Decimal
		var reason string
		needed := true
		switch {
		case moisture.LessThan(criticalBelow):
			water = baseWater.Mul(kc).Mul(criticalMultiple)
			reason = b.Name + " - Critical moisture level"
		case moisture.LessThan(regularBelow) && gap >= regularGapDays:
			water = baseWater.Mul(kc)
			reason = b.Name + " - Regular irrigation"
		case gap >= maintenanceGapDays:
			water = baseWater.Mul(kc).Mul(maintMultiple)
			reason = b.Name + " - Maintenance irrigation"
		default:
			needed = false
		}
		if !needed {
			continue
		}

		status := entities.SchedulePending
		if current.Before(today) {
			var err error
			status, err = e.ClassifyPastDate(crop.CropID, current)
			if err != nil {
				return nil, err
			}
		}

		// Round only at the emission boundary, never mid-computation.
		out = append(out, entities.ScheduleEntry{
			FarmerID:          crop.FarmerID,
			CropID:            crop.CropID,
			ScheduledDate:     current,
			WaterAmount:       water.Round(2).InexactFloat64(),
			Stage:             b.Name,
			Kc:                b.Kc,
			DaysAfterSowing:   day,
			EstimatedMoisture: moisture.Round(1).InexactFloat64(),
			Reason:            reason,
			Status:            status,
		})

		moisture = moisture.Add(irrigationBoost)
		if moisture.GreaterThan(moistureCeiling) {
			moisture = moistureCeiling
		}
		lastIrrigationDay = day
	}
	return out, nil
}

// ClassifyPastDate decides what happened on a past scheduled day. A
// persisted entry's status is authoritative; failing that, a history
// record on that day means a manual irrigation satisfied the slot.
// Absence of data is never "completed".
func (e *Engine) ClassifyPastDate(cropID uint, day time.Time) (entities.ScheduleStatus, error) {
	existing, err := e.sched.FindByDate(cropID, day)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.Status, nil
	}
	irrigated, err := e.hist.ExistsOn(cropID, day)
	if err != nil {
		return "", err
	}
	if irrigated {
		return entities.ScheduleCompleted, nil
	}
	return entities.ScheduleMissed, nil
}

// DetectAndMarkMissed flips overdue pending entries to missed and returns
// the count. Running it again without time passing changes nothing.
func (e *Engine) DetectAndMarkMissed(cropID uint) (int64, error) {
	return e.sched.MarkMissedBefore(cropID, e.today())
}

// PersistSchedule merges candidates into the stored schedule (see
// ScheduleRepository.ReplaceLifecycle for the transaction contract).
func (e *Engine) PersistSchedule(crop *entities.Crop, entries []entities.ScheduleEntry) error {
	return e.sched.ReplaceLifecycle(crop.CropID, e.today(), entries)
}

// RecalcResult reports what a recalculation did.
type RecalcResult struct {
	Recalculated      bool                    `json:"recalculated"`
	MissedCount       int64                   `json:"missed_count"`
	EstimatedMoisture float64                 `json:"estimated_moisture,omitempty"`
	Urgent            bool                    `json:"urgent_irrigation"`
	NextIrrigation    *entities.ScheduleEntry `json:"next_irrigation,omitempty"`
}

// Recalculate regenerates the schedule after missed irrigations or an
// externally observed moisture value. Explicit moisture always wins; with
// neither explicit moisture nor misses there is nothing to do. Otherwise
// moisture is estimated pessimistically from the miss count and overridden
// by the crop's latest soil reading when one exists.
func (e *Engine) Recalculate(crop *entities.Crop, explicitMoisture *float64) (*RecalcResult, error) {
	missed, err := e.DetectAndMarkMissed(crop.CropID)
	if err != nil {
		return nil, err
	}

	var estimated float64
	switch {
	case explicitMoisture != nil:
		if err := ValidateMoisture(*explicitMoisture); err != nil {
			return nil, err
		}
		estimated = *explicitMoisture
	case missed == 0:
		return &RecalcResult{Recalculated: false, MissedCount: 0}, nil
	default:
		estimated = math.Max(20, 70-float64(missed)*5)
		latest, err := e.soil.LatestForCrop(crop.CropID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			estimated = latest.Moisture
		}
	}

	candidates, err := e.GenerateLifecycleSchedule(crop, estimated, DefaultBaseET0)
	if err != nil {
		return nil, err
	}
	if err := e.PersistSchedule(crop, candidates); err != nil {
		return nil, err
	}

	res := &RecalcResult{
		Recalculated:      true,
		MissedCount:       missed,
		EstimatedMoisture: estimated,
		Urgent:            estimated < 30,
	}
	today := e.today()
	for i := range candidates {
		c := candidates[i]
		if !c.ScheduledDate.Before(today) && c.Status == entities.SchedulePending {
			res.NextIrrigation = &candidates[i]
			break
		}
	}
	return res, nil
}

// MarkDone completes a pending entry and appends the history record in
// the same transaction. Non-pending entries are rejected.
func (e *Engine) MarkDone(crop *entities.Crop, scheduleID uint, actualWater *float64, city string) error {
	entry, err := e.sched.FindByIDAndFarmer(scheduleID, crop.FarmerID)
	if err != nil {
		return err
	}
	if entry.CropID != crop.CropID {
		return fmt.Errorf("schedule entry %d does not belong to crop %d", scheduleID, crop.CropID)
	}

	water := entry.WaterAmount
	if actualWater != nil {
		if *actualWater < 0 || math.IsNaN(*actualWater) {
			return fmt.Errorf("actual water must be non-negative, got %v", *actualWater)
		}
		water = *actualWater
	}

	info := stage.Current(crop.PlantingDate, crop.GrowthDuration, e.today())
	rec := &entities.IrrigationRecord{
		FarmerID:        crop.FarmerID,
		CropID:          crop.CropID,
		City:            city,
		Stage:           info.StageName,
		DaysAfterSowing: info.DaysAfterSowing,
		ET0:             DefaultBaseET0,
		Kc:              info.Kc,
		WaterRequired:   water,
		Decision:        "Scheduled irrigation completed - " + entry.Reason,
	}
	return e.sched.Complete(scheduleID, crop.FarmerID, e.now(), actualWater, rec)
}

// MarkSkipped transitions a pending entry to skipped with the farmer's
// reason. Non-pending entries are rejected.
func (e *Engine) MarkSkipped(farmerID, scheduleID uint, reason string) error {
	return e.sched.Skip(scheduleID, farmerID, reason)
}

// Statistics reports schedule adherence for one crop.
func (e *Engine) Statistics(cropID uint) (*schedrepo.Stats, error) {
	return e.sched.Statistics(cropID)
}

// ValidateMoisture rejects malformed moisture percentages at the boundary
// so they never enter the simulation loop.
func ValidateMoisture(m float64) error {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 || m > 100 {
		return fmt.Errorf("soil moisture must be in (0, 100], got %v", m)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
