package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishi/pkg/ml"
	"krishi/pkg/weather"
)

// WeatherCtrl serves the reference data that registration and the
// recommendation form need: the district list and model accuracies.
type WeatherCtrl struct{ predictor ml.Predictor }

func New(p ml.Predictor) *WeatherCtrl { return &WeatherCtrl{predictor: p} }

func (h *WeatherCtrl) Districts(c echo.Context) error {
	if q := c.QueryParam("q"); q != "" {
		return c.JSON(http.StatusOK, weather.SearchDistricts(q))
	}
	return c.JSON(http.StatusOK, weather.Districts)
}

func (h *WeatherCtrl) Accuracies(c echo.Context) error {
	soil, crop, err := h.predictor.Accuracies()
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "prediction service unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]float64{"soil": soil, "crop": crop})
}
