package router

import (
	"github.com/labstack/echo/v4"

	authctrl "krishi/pkg/auth/controller"
	cropctrl "krishi/pkg/crop/controller"
	irrctrl "krishi/pkg/irrigation/controller"
	"krishi/pkg/middleware"
	schedctrl "krishi/pkg/schedule/controller"
)

func New(
	e *echo.Echo,
	jwtSecret string,
	authCtrl authctrl.AuthController,
	dashCtrl interface{ Get(echo.Context) error },
	cropCtrl cropctrl.CropController,
	soilCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
	},
	irrCtrl irrctrl.IrrigationController,
	schedCtrl schedctrl.ScheduleController,
	weatherCtrl interface {
		Districts(echo.Context) error
		Accuracies(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api")
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.GET("/districts", weatherCtrl.Districts)

	// Everything below requires a farmer token.
	auth := api.Group("", middleware.JWT(jwtSecret))
	auth.GET("/auth/me", authCtrl.Me)
	auth.GET("/dashboard", dashCtrl.Get)
	auth.GET("/models/accuracies", weatherCtrl.Accuracies)

	auth.GET("/crops", cropCtrl.List)
	auth.POST("/crops/recommend", cropCtrl.Recommend)
	auth.POST("/crops/confirm", cropCtrl.Confirm)
	auth.POST("/crops/:id/harvest", cropCtrl.Harvest)
	auth.POST("/crops/:id/fail", cropCtrl.Fail)
	auth.DELETE("/crops/:id", cropCtrl.Delete)

	auth.POST("/soil", soilCtrl.Create)
	auth.GET("/soil", soilCtrl.List)

	auth.GET("/irrigation/history", irrCtrl.History)
	auth.POST("/irrigation/weather/live", irrCtrl.LiveWeather)
	auth.GET("/irrigation/:id", irrCtrl.Advice)
	auth.POST("/irrigation/:id", irrCtrl.Calculate)
	auth.GET("/irrigation/:id/weekly", irrCtrl.Weekly)

	auth.GET("/irrigation/:id/schedule", schedCtrl.Get)
	auth.POST("/irrigation/:id/schedule/generate", schedCtrl.Generate)
	auth.POST("/irrigation/:id/schedule/recalculate", schedCtrl.Recalculate)
	auth.GET("/irrigation/:id/schedule/export", schedCtrl.Export)
	auth.POST("/schedule/:id/complete", schedCtrl.Complete)
	auth.POST("/schedule/:id/skip", schedCtrl.Skip)

	return e
}
