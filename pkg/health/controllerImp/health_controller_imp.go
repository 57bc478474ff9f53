package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type HealthCtrl struct{ db *gorm.DB }

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db} }

func (h *HealthCtrl) Health(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": "down"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
