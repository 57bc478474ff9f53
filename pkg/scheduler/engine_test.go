package scheduler

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"krishi/entities"
	histimp "krishi/pkg/irrigation/repositoryImp"
	schedimp "krishi/pkg/schedule/repositoryImp"
	soilimp "krishi/pkg/soil/repositoryImp"
	"krishi/pkg/stage"
)

var testToday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Farmer{}, &entities.Crop{}, &entities.SoilRecord{},
		&entities.ScheduleEntry{}, &entities.IrrigationRecord{},
	))
	eng := New(schedimp.New(db), histimp.New(db), soilimp.New(db)).
		WithClock(func() time.Time { return testToday })
	return eng, db
}

func testCrop(planting time.Time, duration int) *entities.Crop {
	return &entities.Crop{
		CropID:         1,
		FarmerID:       1,
		CropName:       "testcrop", // unknown to the knowledge base, base water need 4
		PlantingDate:   planting,
		GrowthDuration: duration,
		Status:         entities.CropActive,
	}
}

func TestGenerateMoistureStaysInBounds(t *testing.T) {
	eng, _ := newTestEngine(t)
	crop := testCrop(testToday, 120)

	for _, initial := range []float64{5.1, 50, 100} {
		entries, err := eng.GenerateLifecycleSchedule(crop, initial, DefaultBaseET0)
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		for _, e := range entries {
			assert.GreaterOrEqual(t, e.EstimatedMoisture, 15.0)
			assert.LessOrEqual(t, e.EstimatedMoisture, 85.0)
		}
	}
}

func TestGenerateCriticalTierWinsAndScalesWater(t *testing.T) {
	eng, _ := newTestEngine(t)
	crop := testCrop(testToday, 100)

	// Initial moisture 30 drops below 35 on day 0, so the very first entry
	// is critical regardless of the irrigation gap. Initial stage Kc is
	// 0.70 and the fallback water need is 4: 4 * 0.70 * 1.2 = 3.36.
	entries, err := eng.GenerateLifecycleSchedule(crop, 30, DefaultBaseET0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	first := entries[0]
	assert.Equal(t, 0, first.DaysAfterSowing)
	assert.Equal(t, "Initial - Critical moisture level", first.Reason)
	assert.InDelta(t, 3.36, first.WaterAmount, 1e-9)
	assert.Equal(t, 0.70, first.Kc)
}

func TestGenerateClampsSaturatedInitialMoisture(t *testing.T) {
	eng, _ := newTestEngine(t)
	crop := testCrop(testToday, 120)

	// 100% is a valid reading but the soil holds at most 85: the first
	// emission must start from the clamped band, not above it.
	entries, err := eng.GenerateLifecycleSchedule(crop, 100, DefaultBaseET0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	first := entries[0]
	assert.Equal(t, 7, first.DaysAfterSowing)
	assert.Equal(t, "Initial - Maintenance irrigation", first.Reason)
	// 85 minus eight days of depletion at ET0 5 and Kc 0.70.
	assert.InDelta(t, 80.8, first.EstimatedMoisture, 1e-9)
	for _, e := range entries {
		assert.LessOrEqual(t, e.EstimatedMoisture, 85.0, "day %d", e.DaysAfterSowing)
	}
}

func TestGenerateTierReasonsCoverSchedule(t *testing.T) {
	eng, _ := newTestEngine(t)
	crop := testCrop(testToday, 120)

	entries, err := eng.GenerateLifecycleSchedule(crop, 80, DefaultBaseET0)
	require.NoError(t, err)

	for _, e := range entries {
		assert.Regexp(t, `(Critical moisture level|Regular irrigation|Maintenance irrigation)$`, e.Reason)
		assert.Positive(t, e.WaterAmount)
		assert.LessOrEqual(t, e.DaysAfterSowing, crop.GrowthDuration)
	}

	// Gaps never exceed a week: the maintenance tier fires at 7 days.
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i].DaysAfterSowing-entries[i-1].DaysAfterSowing, maintenanceGapDays)
	}
}

func TestGenerateRejectsBadInputs(t *testing.T) {
	eng, _ := newTestEngine(t)
	crop := testCrop(testToday, 100)

	_, err := eng.GenerateLifecycleSchedule(crop, 0, DefaultBaseET0)
	assert.Error(t, err)
	_, err = eng.GenerateLifecycleSchedule(crop, 101, DefaultBaseET0)
	assert.Error(t, err)
	_, err = eng.GenerateLifecycleSchedule(crop, 50, -1)
	assert.Error(t, err)

	// Below a week the stage table degenerates, so short durations are
	// rejected before simulation.
	for _, duration := range []int{0, 4, stage.MinDuration - 1} {
		bad := testCrop(testToday, duration)
		_, err = eng.GenerateLifecycleSchedule(bad, 50, DefaultBaseET0)
		assert.Error(t, err, "duration %d", duration)
	}

	ok := testCrop(testToday, stage.MinDuration)
	_, err = eng.GenerateLifecycleSchedule(ok, 50, DefaultBaseET0)
	assert.NoError(t, err)
}

func TestGenerateClassifiesPastDates(t *testing.T) {
	eng, db := newTestEngine(t)
	// Planted 20 days ago, so early entries fall in the past.
	crop := testCrop(testToday.AddDate(0, 0, -20), 100)

	// A manual irrigation on day 0 satisfies that slot.
	require.NoError(t, db.Create(&entities.IrrigationRecord{
		FarmerID: 1, CropID: 1, Stage: "Initial", WaterRequired: 4,
		RecordedAt: crop.PlantingDate.Add(10 * time.Hour),
	}).Error)

	entries, err := eng.GenerateLifecycleSchedule(crop, 30, DefaultBaseET0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	byDay := map[int]entities.ScheduleEntry{}
	for _, e := range entries {
		byDay[e.DaysAfterSowing] = e
	}
	assert.Equal(t, entities.ScheduleCompleted, byDay[0].Status)

	for _, e := range entries {
		if e.DaysAfterSowing > 0 && e.ScheduledDate.Before(testToday) {
			assert.Equal(t, entities.ScheduleMissed, e.Status, "day %d", e.DaysAfterSowing)
		}
		if !e.ScheduledDate.Before(testToday) {
			assert.Equal(t, entities.SchedulePending, e.Status, "day %d", e.DaysAfterSowing)
		}
	}
}

func TestPersistScheduleIsIdempotent(t *testing.T) {
	eng, db := newTestEngine(t)
	crop := testCrop(testToday, 100)

	entries, err := eng.GenerateLifecycleSchedule(crop, 60, DefaultBaseET0)
	require.NoError(t, err)
	require.NoError(t, eng.PersistSchedule(crop, entries))

	var first int64
	require.NoError(t, db.Model(&entities.ScheduleEntry{}).Count(&first).Error)
	assert.Equal(t, int64(len(entries)), first)

	require.NoError(t, eng.PersistSchedule(crop, entries))
	var second int64
	require.NoError(t, db.Model(&entities.ScheduleEntry{}).Count(&second).Error)
	assert.Equal(t, first, second)
}

func TestPersistSchedulePreservesCompletedEntries(t *testing.T) {
	eng, db := newTestEngine(t)
	crop := testCrop(testToday, 100)

	entries, err := eng.GenerateLifecycleSchedule(crop, 60, DefaultBaseET0)
	require.NoError(t, err)
	require.NoError(t, eng.PersistSchedule(crop, entries))

	// Farmer completes the first upcoming entry, then a recalculation
	// produces a different plan. The completed record must survive with
	// its original water amount.
	var done entities.ScheduleEntry
	require.NoError(t, db.Where("status = ?", entities.SchedulePending).
		Order("scheduled_date").First(&done).Error)
	now := testToday.Add(8 * time.Hour)
	require.NoError(t, db.Model(&entities.ScheduleEntry{}).
		Where("schedule_id = ?", done.ScheduleID).
		Updates(map[string]any{"status": entities.ScheduleCompleted, "completed_at": now}).Error)

	regen, err := eng.GenerateLifecycleSchedule(crop, 25, DefaultBaseET0)
	require.NoError(t, err)
	require.NoError(t, eng.PersistSchedule(crop, regen))

	var after entities.ScheduleEntry
	require.NoError(t, db.First(&after, "schedule_id = ?", done.ScheduleID).Error)
	assert.Equal(t, entities.ScheduleCompleted, after.Status)
	assert.Equal(t, done.WaterAmount, after.WaterAmount)
}

func TestDetectAndMarkMissedIsIdempotent(t *testing.T) {
	eng, db := newTestEngine(t)

	for _, daysAgo := range []int{5, 3} {
		require.NoError(t, db.Create(&entities.ScheduleEntry{
			FarmerID: 1, CropID: 1,
			ScheduledDate: testToday.AddDate(0, 0, -daysAgo),
			WaterAmount:   4, Stage: "Initial", Status: entities.SchedulePending,
		}).Error)
	}
	require.NoError(t, db.Create(&entities.ScheduleEntry{
		FarmerID: 1, CropID: 1,
		ScheduledDate: testToday,
		WaterAmount:   4, Stage: "Development", Status: entities.SchedulePending,
	}).Error)

	n, err := eng.DetectAndMarkMissed(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = eng.DetectAndMarkMissed(1)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Today's entry stays pending until the day is over.
	var today entities.ScheduleEntry
	require.NoError(t, db.First(&today, "scheduled_date = ?", testToday).Error)
	assert.Equal(t, entities.SchedulePending, today.Status)
}

func TestRecalculateNoopWithoutMissesOrMoisture(t *testing.T) {
	eng, _ := newTestEngine(t)
	crop := testCrop(testToday, 100)

	res, err := eng.Recalculate(crop, nil)
	require.NoError(t, err)
	assert.False(t, res.Recalculated)
	assert.Zero(t, res.MissedCount)
}

func TestRecalculateAfterMisses(t *testing.T) {
	eng, db := newTestEngine(t)
	crop := testCrop(testToday.AddDate(0, 0, -30), 100)

	for _, daysAgo := range []int{10, 6, 2} {
		require.NoError(t, db.Create(&entities.ScheduleEntry{
			FarmerID: 1, CropID: 1,
			ScheduledDate: testToday.AddDate(0, 0, -daysAgo),
			WaterAmount:   4, Stage: "Development", Status: entities.SchedulePending,
		}).Error)
	}

	res, err := eng.Recalculate(crop, nil)
	require.NoError(t, err)
	assert.True(t, res.Recalculated)
	assert.Equal(t, int64(3), res.MissedCount)
	// Pessimistic estimate: 70 - 3*5 = 55, no soil record to override it.
	assert.InDelta(t, 55, res.EstimatedMoisture, 1e-9)
	assert.False(t, res.Urgent)
	require.NotNil(t, res.NextIrrigation)
	assert.False(t, res.NextIrrigation.ScheduledDate.Before(testToday))
}

func TestRecalculateLatestSoilReadingWins(t *testing.T) {
	eng, db := newTestEngine(t)
	crop := testCrop(testToday.AddDate(0, 0, -30), 100)

	require.NoError(t, db.Create(&entities.ScheduleEntry{
		FarmerID: 1, CropID: 1,
		ScheduledDate: testToday.AddDate(0, 0, -4),
		WaterAmount:   4, Stage: "Development", Status: entities.SchedulePending,
	}).Error)
	require.NoError(t, db.Create(&entities.SoilRecord{
		FarmerID: 1, CropID: 1, Moisture: 22, Ph: 6.5,
	}).Error)

	res, err := eng.Recalculate(crop, nil)
	require.NoError(t, err)
	assert.True(t, res.Recalculated)
	assert.InDelta(t, 22, res.EstimatedMoisture, 1e-9)
	assert.True(t, res.Urgent)
}

func TestRecalculateExplicitMoistureWins(t *testing.T) {
	eng, db := newTestEngine(t)
	crop := testCrop(testToday.AddDate(0, 0, -30), 100)

	require.NoError(t, db.Create(&entities.SoilRecord{
		FarmerID: 1, CropID: 1, Moisture: 70, Ph: 6.5,
	}).Error)

	explicit := 25.0
	res, err := eng.Recalculate(crop, &explicit)
	require.NoError(t, err)
	assert.True(t, res.Recalculated)
	assert.InDelta(t, 25, res.EstimatedMoisture, 1e-9)
	assert.True(t, res.Urgent)

	bad := 0.0
	_, err = eng.Recalculate(crop, &bad)
	assert.Error(t, err)
}

func TestMarkDoneCompletesAndRecordsHistory(t *testing.T) {
	eng, db := newTestEngine(t)
	crop := testCrop(testToday.AddDate(0, 0, -30), 100)

	entry := entities.ScheduleEntry{
		FarmerID: 1, CropID: 1,
		ScheduledDate: testToday,
		WaterAmount:   4.56, Stage: "Development",
		Reason: "Development - Regular irrigation",
		Status: entities.SchedulePending,
	}
	require.NoError(t, db.Create(&entry).Error)

	actual := 5.0
	require.NoError(t, eng.MarkDone(crop, entry.ScheduleID, &actual, "Warangal"))

	var after entities.ScheduleEntry
	require.NoError(t, db.First(&after, "schedule_id = ?", entry.ScheduleID).Error)
	assert.Equal(t, entities.ScheduleCompleted, after.Status)
	require.NotNil(t, after.ActualWater)
	assert.InDelta(t, 5.0, *after.ActualWater, 1e-9)
	require.NotNil(t, after.CompletedAt)

	var rec entities.IrrigationRecord
	require.NoError(t, db.First(&rec, "crop_id = ?", 1).Error)
	assert.Equal(t, "Warangal", rec.City)
	assert.InDelta(t, 5.0, rec.WaterRequired, 1e-9)
	assert.Equal(t, "Scheduled irrigation completed - Development - Regular irrigation", rec.Decision)

	// Completing twice is rejected and writes no second record.
	err := eng.MarkDone(crop, entry.ScheduleID, &actual, "Warangal")
	assert.Error(t, err)
	var count int64
	require.NoError(t, db.Model(&entities.IrrigationRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkSkippedRequiresPending(t *testing.T) {
	eng, db := newTestEngine(t)

	entry := entities.ScheduleEntry{
		FarmerID: 1, CropID: 1,
		ScheduledDate: testToday,
		WaterAmount:   4, Stage: "Development",
		Status: entities.SchedulePending,
	}
	require.NoError(t, db.Create(&entry).Error)

	require.NoError(t, eng.MarkSkipped(1, entry.ScheduleID, "rain expected"))

	var after entities.ScheduleEntry
	require.NoError(t, db.First(&after, "schedule_id = ?", entry.ScheduleID).Error)
	assert.Equal(t, entities.ScheduleSkipped, after.Status)
	assert.Contains(t, after.Reason, "rain expected")

	assert.Error(t, eng.MarkSkipped(1, entry.ScheduleID, "again"))
}
