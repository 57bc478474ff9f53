package controllerImp

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"krishi/entities"
	croprepo "krishi/pkg/crop/repository"
	farmerrepo "krishi/pkg/farmer/repository"
	mw "krishi/pkg/middleware"
	repo "krishi/pkg/schedule/repository"
	"krishi/pkg/scheduler"
	soilrepo "krishi/pkg/soil/repository"
	"krishi/pkg/stage"
)

// generationDefaultMoisture seeds a first-time schedule when the crop has
// no soil reading at all.
const generationDefaultMoisture = 60.0

type ScheduleCtrl struct {
	engine  *scheduler.Engine
	sched   repo.ScheduleRepository
	crops   croprepo.CropRepository
	soil    soilrepo.SoilRepository
	farmers farmerrepo.FarmerRepository
}

func New(engine *scheduler.Engine, sched repo.ScheduleRepository, crops croprepo.CropRepository,
	soil soilrepo.SoilRepository, farmers farmerrepo.FarmerRepository) *ScheduleCtrl {
	return &ScheduleCtrl{engine: engine, sched: sched, crops: crops, soil: soil, farmers: farmers}
}

func (h *ScheduleCtrl) loadCrop(c echo.Context) (*entities.Crop, error) {
	fid := mw.FarmerID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "bad crop id")
	}
	crop, err := h.crops.FindByIDAndFarmer(uint(id), fid)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "crop not found")
	}
	return crop, nil
}

func (h *ScheduleCtrl) initialMoisture(cropID uint, explicit *float64) float64 {
	if explicit != nil {
		return *explicit
	}
	latest, err := h.soil.LatestForCrop(cropID)
	if err != nil || latest == nil {
		return generationDefaultMoisture
	}
	return latest.Moisture
}

// Get returns the crop's full schedule, generating it on first access.
// Overdue entries are reconciled before the list is read.
func (h *ScheduleCtrl) Get(c echo.Context) error {
	crop, err := h.loadCrop(c)
	if err != nil {
		return err
	}

	entries, err := h.sched.ListByCrop(crop.CropID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	generated := false
	if len(entries) == 0 {
		moisture := h.initialMoisture(crop.CropID, nil)
		candidates, err := h.engine.GenerateLifecycleSchedule(crop, moisture, scheduler.DefaultBaseET0)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		if err := h.engine.PersistSchedule(crop, candidates); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		generated = true
	}

	missed, err := h.engine.DetectAndMarkMissed(crop.CropID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	entries, err = h.sched.ListByCrop(crop.CropID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	stats, err := h.engine.Statistics(crop.CropID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	out := map[string]any{
		"crop":         crop,
		"schedule":     entries,
		"stats":        stats,
		"stage_info":   stage.Current(crop.PlantingDate, crop.GrowthDuration, time.Now()),
		"missed_count": missed,
		"generated":    generated,
	}
	if latest, err := h.soil.LatestForCrop(crop.CropID); err == nil && latest != nil {
		out["current_moisture"] = latest.Moisture
	}
	return c.JSON(http.StatusOK, out)
}

type generateReq struct {
	SoilMoisture *float64 `json:"soil_moisture"`
}

// Generate regenerates the schedule. An explicit moisture value always
// wins over the stored reading.
func (h *ScheduleCtrl) Generate(c echo.Context) error {
	crop, err := h.loadCrop(c)
	if err != nil {
		return err
	}
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	moisture := h.initialMoisture(crop.CropID, req.SoilMoisture)
	candidates, err := h.engine.GenerateLifecycleSchedule(crop, moisture, scheduler.DefaultBaseET0)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	if err := h.engine.PersistSchedule(crop, candidates); err != nil {
		log.Printf("[schedule] persist crop %d: %v", crop.CropID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"generated":     len(candidates),
		"soil_moisture": moisture,
	})
}

type completeReq struct {
	ActualWater *float64 `json:"actual_water"`
}

func (h *ScheduleCtrl) Complete(c echo.Context) error {
	fid := mw.FarmerID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad schedule id"})
	}
	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	entry, err := h.sched.FindByIDAndFarmer(uint(id), fid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "schedule entry not found"})
	}
	crop, err := h.crops.FindByIDAndFarmer(entry.CropID, fid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}
	farmer, err := h.farmers.FindByID(fid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	if err := h.engine.MarkDone(crop, uint(id), req.ActualWater, farmer.Location); err != nil {
		if errors.Is(err, repo.ErrNotPending) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "schedule entry is not pending"})
		}
		log.Printf("[schedule] complete %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule_id": id, "status": entities.ScheduleCompleted})
}

type skipReq struct {
	Reason string `json:"reason"`
}

func (h *ScheduleCtrl) Skip(c echo.Context) error {
	fid := mw.FarmerID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad schedule id"})
	}
	var req skipReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Reason == "" {
		req.Reason = "Skipped by farmer"
	}
	if err := h.engine.MarkSkipped(fid, uint(id), req.Reason); err != nil {
		if errors.Is(err, repo.ErrNotPending) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "schedule entry is not pending"})
		}
		return c.JSON(http.StatusNotFound, map[string]string{"error": "schedule entry not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule_id": id, "status": entities.ScheduleSkipped})
}

// Recalculate reconciles missed entries and rebuilds the plan. With an
// explicit soil_moisture the rebuild is unconditional.
func (h *ScheduleCtrl) Recalculate(c echo.Context) error {
	crop, err := h.loadCrop(c)
	if err != nil {
		return err
	}
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	res, err := h.engine.Recalculate(crop, req.SoilMoisture)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

// Export streams the schedule as an xlsx workbook.
func (h *ScheduleCtrl) Export(c echo.Context) error {
	crop, err := h.loadCrop(c)
	if err != nil {
		return err
	}
	entries, err := h.sched.ListByCrop(crop.CropID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	x := excelize.NewFile()
	defer x.Close()
	sheet := "Schedule"
	x.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Day", "Stage", "Kc", "Water (L/plant)", "Est. Moisture (%)", "Status", "Reason"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		x.SetCellValue(sheet, cell, hd)
	}
	for row, e := range entries {
		values := []any{
			e.ScheduledDate.Format("2006-01-02"),
			e.DaysAfterSowing,
			e.Stage,
			e.Kc,
			e.WaterAmount,
			e.EstimatedMoisture,
			string(e.Status),
			e.Reason,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			x.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("schedule_%s_%d.xlsx", crop.CropName, crop.CropID)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return x.Write(c.Response())
}
