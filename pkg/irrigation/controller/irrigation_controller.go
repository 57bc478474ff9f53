package controller

import "github.com/labstack/echo/v4"

type IrrigationController interface {
	Advice(c echo.Context) error
	Calculate(c echo.Context) error
	Weekly(c echo.Context) error
	History(c echo.Context) error
	LiveWeather(c echo.Context) error
}
