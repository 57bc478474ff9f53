package controller

import "github.com/labstack/echo/v4"

type ScheduleController interface {
	Get(c echo.Context) error
	Generate(c echo.Context) error
	Complete(c echo.Context) error
	Skip(c echo.Context) error
	Recalculate(c echo.Context) error
	Export(c echo.Context) error
}
