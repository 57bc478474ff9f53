package controllerImp

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"krishi/entities"
	croprepo "krishi/pkg/crop/repository"
	mw "krishi/pkg/middleware"
	"krishi/pkg/ml"
	"krishi/pkg/scheduler"
	repo "krishi/pkg/soil/repository"
)

type SoilCtrl struct {
	soil      repo.SoilRepository
	crops     croprepo.CropRepository
	predictor ml.Predictor
}

func New(soil repo.SoilRepository, crops croprepo.CropRepository, p ml.Predictor) *SoilCtrl {
	return &SoilCtrl{soil: soil, crops: crops, predictor: p}
}

type soilReq struct {
	CropID   uint    `json:"crop_id"`
	N        float64 `json:"n"`
	P        float64 `json:"p"`
	K        float64 `json:"k"`
	Ph       float64 `json:"ph"`
	Moisture float64 `json:"moisture"`
	Sand     float64 `json:"sand"`
	Clay     float64 `json:"clay"`
}

func (h *SoilCtrl) Create(c echo.Context) error {
	fid := mw.FarmerID(c)
	var req soilReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Ph < 0 || req.Ph > 14 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pH must be between 0 and 14"})
	}
	if err := scheduler.ValidateMoisture(req.Moisture); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if _, err := h.crops.FindByIDAndFarmer(req.CropID, fid); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}

	// Fertility is re-classified on every reading so the record reflects
	// the soil as measured, not as it was at planting.
	fertility, err := h.predictor.PredictSoilFertility(req.N, req.P, req.K, req.Ph, req.Moisture)
	if err != nil {
		log.Printf("[soil] fertility prediction: %v", err)
		fertility = ""
	}

	rec := &entities.SoilRecord{
		FarmerID:      fid,
		CropID:        req.CropID,
		N:             req.N,
		P:             req.P,
		K:             req.K,
		Ph:            req.Ph,
		Moisture:      req.Moisture,
		Sand:          req.Sand,
		Clay:          req.Clay,
		SoilFertility: fertility,
	}
	if err := h.soil.Create(rec); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *SoilCtrl) List(c echo.Context) error {
	fid := mw.FarmerID(c)
	if q := c.QueryParam("crop_id"); q != "" {
		id, err := strconv.Atoi(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad crop id"})
		}
		if _, err := h.crops.FindByIDAndFarmer(uint(id), fid); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
		}
		latest, err := h.soil.LatestForCrop(uint(id))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if latest == nil {
			return c.JSON(http.StatusOK, []entities.SoilRecord{})
		}
		return c.JSON(http.StatusOK, []entities.SoilRecord{*latest})
	}
	out, err := h.soil.ListByFarmer(fid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, out)
}
