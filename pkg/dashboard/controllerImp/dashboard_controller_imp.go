package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"krishi/entities"
	croprepo "krishi/pkg/crop/repository"
	farmerrepo "krishi/pkg/farmer/repository"
	histrepo "krishi/pkg/irrigation/repository"
	mw "krishi/pkg/middleware"
	schedrepo "krishi/pkg/schedule/repository"
	soilrepo "krishi/pkg/soil/repository"
	"krishi/pkg/stage"
	"krishi/pkg/weather"
)

// upcomingWindowDays is how far ahead the dashboard looks for scheduled
// irrigations.
const upcomingWindowDays = 7

type DashboardCtrl struct {
	farmers farmerrepo.FarmerRepository
	crops   croprepo.CropRepository
	soil    soilrepo.SoilRepository
	history histrepo.HistoryRepository
	sched   schedrepo.ScheduleRepository
	weather weather.Provider
}

func New(farmers farmerrepo.FarmerRepository, crops croprepo.CropRepository, soil soilrepo.SoilRepository,
	history histrepo.HistoryRepository, sched schedrepo.ScheduleRepository, w weather.Provider) *DashboardCtrl {
	return &DashboardCtrl{farmers: farmers, crops: crops, soil: soil, history: history, sched: sched, weather: w}
}

type dashboardCrop struct {
	entities.Crop
	stage.Info
	LastMoisture *float64 `json:"last_moisture,omitempty"`
}

// Get assembles the farmer's home view: active crops with live stage
// info, recent history, saved-water count and current weather. Weather
// failures degrade to a note in the payload.
func (h *DashboardCtrl) Get(c echo.Context) error {
	fid := mw.FarmerID(c)
	farmer, err := h.farmers.FindByID(fid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}

	crops, err := h.crops.ListByFarmer(fid, entities.CropActive)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	now := time.Now()
	enriched := make([]dashboardCrop, 0, len(crops))
	for _, crop := range crops {
		dc := dashboardCrop{
			Crop: crop,
			Info: stage.Current(crop.PlantingDate, crop.GrowthDuration, now),
		}
		if latest, err := h.soil.LatestForCrop(crop.CropID); err == nil && latest != nil {
			m := latest.Moisture
			dc.LastMoisture = &m
		}
		enriched = append(enriched, dc)
	}

	recent, err := h.history.ListByFarmer(fid, 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	saved, err := h.history.SavedEvents(fid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	active, err := h.crops.CountActive(fid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	upcoming, err := h.sched.Upcoming(fid, today, today.AddDate(0, 0, upcomingWindowDays))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	out := map[string]any{
		"farmer":         farmer,
		"crops":          enriched,
		"active_crops":   active,
		"upcoming":       upcoming,
		"recent_history": recent,
		"saved_events":   saved,
	}
	if obs, werr := h.weather.Current(farmer.Location); werr == nil {
		out["weather"] = obs
	} else {
		out["weather_error"] = werr.Error()
	}
	return c.JSON(http.StatusOK, out)
}
