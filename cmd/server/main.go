package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"krishi/config"
	"krishi/database"
	"krishi/router"

	authCtrlImp "krishi/pkg/auth/controllerImp"
	cropCtrlImp "krishi/pkg/crop/controllerImp"
	cropRepoImp "krishi/pkg/crop/repositoryImp"
	dashCtrlImp "krishi/pkg/dashboard/controllerImp"
	farmerRepoImp "krishi/pkg/farmer/repositoryImp"
	healthCtrlImp "krishi/pkg/health/controllerImp"
	irrCtrlImp "krishi/pkg/irrigation/controllerImp"
	histRepoImp "krishi/pkg/irrigation/repositoryImp"
	"krishi/pkg/ml"
	schedCtrlImp "krishi/pkg/schedule/controllerImp"
	schedRepoImp "krishi/pkg/schedule/repositoryImp"
	"krishi/pkg/scheduler"
	soilCtrlImp "krishi/pkg/soil/controllerImp"
	soilRepoImp "krishi/pkg/soil/repositoryImp"
	"krishi/pkg/weather"
	weatherCtrlImp "krishi/pkg/weather/controllerImp"
)

func main() {
	cfg := config.Load()

	db := database.OpenSQLite(cfg.DBPath)

	// External services fall back to deterministic mocks when no
	// credentials are configured, so the app runs out of the box.
	var wp weather.Provider
	if cfg.WeatherAPIKey != "" {
		wp = weather.NewOpenWeather(cfg.WeatherBaseURL, cfg.WeatherAPIKey)
	} else {
		log.Printf("[main] no weather api key, using mock provider")
		wp = weather.NewMock()
	}
	var predictor ml.Predictor
	if cfg.MLEndpoint != "" {
		predictor = ml.NewHTTP(cfg.MLEndpoint)
	} else {
		log.Printf("[main] no ml endpoint, using mock predictor")
		predictor = ml.NewMock()
	}

	farmerRepo := farmerRepoImp.New(db)
	cropRepo := cropRepoImp.New(db)
	soilRepo := soilRepoImp.New(db)
	histRepo := histRepoImp.New(db)
	schedRepo := schedRepoImp.New(db)

	engine := scheduler.New(schedRepo, histRepo, soilRepo)

	authCtrl := authCtrlImp.New(farmerRepo, cfg.JWTSecret)
	dashCtrl := dashCtrlImp.New(farmerRepo, cropRepo, soilRepo, histRepo, schedRepo, wp)
	cropCtrl := cropCtrlImp.New(cropRepo, wp, predictor)
	soilCtrl := soilCtrlImp.New(soilRepo, cropRepo, predictor)
	irrCtrl := irrCtrlImp.New(histRepo, cropRepo, soilRepo, farmerRepo, wp)
	schedCtrl := schedCtrlImp.New(engine, schedRepo, cropRepo, soilRepo, farmerRepo)
	weatherCtrl := weatherCtrlImp.New(predictor)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	e := echo.New()
	e.Use(echoMiddleware.Recover())

	r := router.New(e, cfg.JWTSecret,
		authCtrl, dashCtrl, cropCtrl, soilCtrl, irrCtrl, schedCtrl, weatherCtrl, healthCtrl)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
