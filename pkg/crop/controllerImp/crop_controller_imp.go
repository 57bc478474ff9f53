package controllerImp

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"krishi/entities"
	repo "krishi/pkg/crop/repository"
	mw "krishi/pkg/middleware"
	"krishi/pkg/ml"
	"krishi/pkg/stage"
	"krishi/pkg/weather"
)

type CropCtrl struct {
	crops     repo.CropRepository
	weather   weather.Provider
	predictor ml.Predictor
}

func New(crops repo.CropRepository, w weather.Provider, p ml.Predictor) *CropCtrl {
	return &CropCtrl{crops: crops, weather: w, predictor: p}
}

// cropView is a crop enriched with its live growth-stage info.
type cropView struct {
	entities.Crop
	stage.Info
}

func (h *CropCtrl) List(c echo.Context) error {
	fid := mw.FarmerID(c)
	status := entities.CropStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown status"})
	}
	crops, err := h.crops.ListByFarmer(fid, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	now := time.Now()
	out := make([]cropView, 0, len(crops))
	for _, crop := range crops {
		out = append(out, cropView{
			Crop: crop,
			Info: stage.Current(crop.PlantingDate, crop.GrowthDuration, now),
		})
	}
	return c.JSON(http.StatusOK, out)
}

type recommendReq struct {
	N         float64 `json:"n"`
	P         float64 `json:"p"`
	K         float64 `json:"k"`
	Ph        float64 `json:"ph"`
	Moisture  float64 `json:"moisture"`
	Sand      float64 `json:"sand"`
	Clay      float64 `json:"clay"`
	City      string  `json:"city"`
	Month     int     `json:"month"`
	FieldName string  `json:"field_name"`
}

// recommendation is returned to the client and echoed back on confirm.
type recommendation struct {
	recommendReq
	Temperature     float64 `json:"temperature"`
	Humidity        float64 `json:"humidity"`
	Rainfall        float64 `json:"rainfall"`
	SoilFertility   string  `json:"soil_fertility"`
	SoilNature      string  `json:"soil_nature"`
	Season          string  `json:"season"`
	RecommendedCrop string  `json:"recommended_crop"`
	GrowthDuration  int     `json:"growth_duration"`
}

func (h *CropCtrl) Recommend(c echo.Context) error {
	var req recommendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	req.City = strings.TrimSpace(req.City)
	if req.City == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "city is required"})
	}
	if req.Ph < 0 || req.Ph > 14 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pH must be between 0 and 14"})
	}
	if req.Month < 1 || req.Month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "month must be between 1 and 12"})
	}
	if req.FieldName == "" {
		req.FieldName = "My Field"
	}

	obs, err := h.weather.Current(req.City)
	if err != nil {
		if errors.Is(err, weather.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{
				"error":       "city not found",
				"suggestions": weather.SimilarDistricts(req.City, 3),
			})
		}
		log.Printf("[crop] weather %q: %v", req.City, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "weather service unavailable"})
	}

	fertility, err := h.predictor.PredictSoilFertility(req.N, req.P, req.K, req.Ph, req.Moisture)
	if err != nil {
		log.Printf("[crop] soil prediction: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "prediction service unavailable"})
	}
	crop, err := h.predictor.PredictCrop(req.N, req.P, req.K, req.Ph, obs.Temp, obs.Humidity, obs.Rain)
	if err != nil {
		log.Printf("[crop] crop prediction: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "prediction service unavailable"})
	}

	rec := recommendation{
		recommendReq:    req,
		Temperature:     obs.Temp,
		Humidity:        obs.Humidity,
		Rainfall:        obs.Rain,
		SoilFertility:   fertility,
		SoilNature:      ml.SoilNature(req.Sand, req.Clay),
		Season:          ml.DetectSeason(req.Month),
		RecommendedCrop: crop,
		GrowthDuration:  ml.Duration(crop),
	}
	return c.JSON(http.StatusOK, map[string]any{"recommendation": rec, "weather": obs})
}

type confirmReq struct {
	recommendation
	PlantingDate string `json:"planting_date"`
}

func (h *CropCtrl) Confirm(c echo.Context) error {
	fid := mw.FarmerID(c)
	var req confirmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.RecommendedCrop == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no recommendation to confirm"})
	}
	planting, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid planting date, use YYYY-MM-DD"})
	}
	duration := req.GrowthDuration
	if duration <= 0 {
		duration = ml.Duration(req.RecommendedCrop)
	}
	if duration < stage.MinDuration {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("growth duration must be at least %d days", stage.MinDuration)})
	}

	crop := &entities.Crop{
		FarmerID:       fid,
		CropName:       req.RecommendedCrop,
		FieldName:      req.FieldName,
		PlantingDate:   planting,
		GrowthDuration: duration,
		Status:         entities.CropActive,
	}
	soil := &entities.SoilRecord{
		FarmerID:      fid,
		N:             req.N,
		P:             req.P,
		K:             req.K,
		Ph:            req.Ph,
		Moisture:      req.Moisture,
		Sand:          req.Sand,
		Clay:          req.Clay,
		SoilFertility: req.SoilFertility,
	}
	if err := h.crops.CreateWithSoil(crop, soil); err != nil {
		log.Printf("[crop] confirm: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, crop)
}

func (h *CropCtrl) Harvest(c echo.Context) error {
	return h.setStatus(c, entities.CropHarvested)
}

func (h *CropCtrl) Fail(c echo.Context) error {
	return h.setStatus(c, entities.CropFailed)
}

func (h *CropCtrl) setStatus(c echo.Context, status entities.CropStatus) error {
	fid := mw.FarmerID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad crop id"})
	}
	if err := h.crops.UpdateStatus(uint(id), fid, status); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"crop_id": id, "status": status})
}

func (h *CropCtrl) Delete(c echo.Context) error {
	fid := mw.FarmerID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad crop id"})
	}
	if _, err := h.crops.FindByIDAndFarmer(uint(id), fid); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}
	if err := h.crops.Delete(uint(id), fid); err != nil {
		log.Printf("[crop] delete %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
