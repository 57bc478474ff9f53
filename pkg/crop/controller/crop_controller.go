package controller

import "github.com/labstack/echo/v4"

type CropController interface {
	List(c echo.Context) error
	Recommend(c echo.Context) error
	Confirm(c echo.Context) error
	Harvest(c echo.Context) error
	Fail(c echo.Context) error
	Delete(c echo.Context) error
}
