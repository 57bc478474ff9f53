package controllerImp

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"krishi/entities"
	croprepo "krishi/pkg/crop/repository"
	farmerrepo "krishi/pkg/farmer/repository"
	"krishi/pkg/irrigation"
	repo "krishi/pkg/irrigation/repository"
	mw "krishi/pkg/middleware"
	"krishi/pkg/ml"
	"krishi/pkg/scheduler"
	soilrepo "krishi/pkg/soil/repository"
	"krishi/pkg/stage"
	"krishi/pkg/weather"
)

// defaultMoisture is assumed when a crop has no soil reading yet.
const defaultMoisture = 50.0

type IrrigationCtrl struct {
	history repo.HistoryRepository
	crops   croprepo.CropRepository
	soil    soilrepo.SoilRepository
	farmers farmerrepo.FarmerRepository
	weather weather.Provider
}

func New(history repo.HistoryRepository, crops croprepo.CropRepository, soil soilrepo.SoilRepository,
	farmers farmerrepo.FarmerRepository, w weather.Provider) *IrrigationCtrl {
	return &IrrigationCtrl{history: history, crops: crops, soil: soil, farmers: farmers, weather: w}
}

func (h *IrrigationCtrl) loadCrop(c echo.Context) (*entities.Crop, uint, error) {
	fid := mw.FarmerID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, fid, echo.NewHTTPError(http.StatusBadRequest, "bad crop id")
	}
	crop, err := h.crops.FindByIDAndFarmer(uint(id), fid)
	if err != nil {
		return nil, fid, echo.NewHTTPError(http.StatusNotFound, "crop not found")
	}
	return crop, fid, nil
}

func (h *IrrigationCtrl) baselineMoisture(cropID uint) float64 {
	latest, err := h.soil.LatestForCrop(cropID)
	if err != nil || latest == nil {
		return defaultMoisture
	}
	return latest.Moisture
}

// Advice returns the context for the advice view: crop, stage, baseline
// moisture, latest record and current weather. Weather failure degrades
// to a field in the payload rather than an error status.
func (h *IrrigationCtrl) Advice(c echo.Context) error {
	crop, fid, err := h.loadCrop(c)
	if err != nil {
		return err
	}

	info := stage.Current(crop.PlantingDate, crop.GrowthDuration, time.Now())
	out := map[string]any{
		"crop":             crop,
		"stage_info":       info,
		"current_moisture": h.baselineMoisture(crop.CropID),
	}

	if recent, err := h.history.ListByCrop(crop.CropID, 1); err == nil && len(recent) > 0 {
		out["latest_irrigation"] = recent[0]
	}

	farmer, err := h.farmers.FindByID(fid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if obs, werr := h.weather.Current(farmer.Location); werr == nil {
		out["weather"] = obs
	} else {
		out["weather_error"] = werr.Error()
	}
	return c.JSON(http.StatusOK, out)
}

type calcReq struct {
	SoilMoisture float64 `json:"soil_moisture"`
}

// Calculate computes advice from the farmer's entered moisture and current
// weather, and appends the result to the irrigation history.
func (h *IrrigationCtrl) Calculate(c echo.Context) error {
	crop, fid, err := h.loadCrop(c)
	if err != nil {
		return err
	}
	var req calcReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := scheduler.ValidateMoisture(req.SoilMoisture); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	farmer, err := h.farmers.FindByID(fid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	obs, err := h.weather.Current(farmer.Location)
	if err != nil {
		log.Printf("[irrigation] weather %q: %v", farmer.Location, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "weather service unavailable"})
	}

	info := stage.Current(crop.PlantingDate, crop.GrowthDuration, time.Now())
	advice := irrigation.Calculate(obs.Temp, obs.Rain, info.Kc, req.SoilMoisture)

	rec := &entities.IrrigationRecord{
		FarmerID:        fid,
		CropID:          crop.CropID,
		City:            farmer.Location,
		Stage:           info.StageName,
		DaysAfterSowing: info.DaysAfterSowing,
		ET0:             advice.ET0,
		Kc:              info.Kc,
		WaterRequired:   advice.NetWater,
		Decision:        advice.Decision,
	}
	if err := h.history.Create(rec); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"result":     advice,
		"record":     rec,
		"stage_info": info,
		"weather":    obs,
	})
}

// Weekly builds a 5-day plan from the forecast for the farmer's location.
func (h *IrrigationCtrl) Weekly(c echo.Context) error {
	crop, fid, err := h.loadCrop(c)
	if err != nil {
		return err
	}
	farmer, err := h.farmers.FindByID(fid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	moisture := h.baselineMoisture(crop.CropID)
	baseWater := ml.WaterNeed(crop.CropName)
	info := stage.Current(crop.PlantingDate, crop.GrowthDuration, time.Now())

	out := map[string]any{
		"crop":          crop,
		"stage_info":    info,
		"soil_moisture": moisture,
	}
	forecast, err := h.weather.Forecast(farmer.Location)
	if err != nil {
		out["forecast_error"] = err.Error()
		return c.JSON(http.StatusOK, out)
	}
	plan := irrigation.WeeklyPlan(forecast, baseWater, moisture)
	var saved float64
	for _, d := range plan {
		saved += d.Saved
	}
	out["weekly_plan"] = plan
	out["total_saved"] = math.Round(saved*100) / 100
	return c.JSON(http.StatusOK, out)
}

func (h *IrrigationCtrl) History(c echo.Context) error {
	fid := mw.FarmerID(c)
	records, err := h.history.ListByFarmer(fid, 100)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, records)
}

type liveWeatherReq struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *IrrigationCtrl) LiveWeather(c echo.Context) error {
	var req liveWeatherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Latitude == nil || req.Longitude == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "latitude and longitude are required"})
	}
	obs, err := h.weather.CurrentByCoords(*req.Latitude, *req.Longitude)
	if err != nil {
		log.Printf("[irrigation] live weather (%v, %v): %v", *req.Latitude, *req.Longitude, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "weather service unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]any{"weather": obs})
}
