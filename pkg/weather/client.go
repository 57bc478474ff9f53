package weather

import "errors"

// Failure classes callers may branch on. Operations that can proceed on a
// stored moisture value catch these and degrade instead of failing.
var (
	ErrLocationNotFound = errors.New("weather: location not found")
	ErrServiceFailed    = errors.New("weather: service error")
	ErrTimeout          = errors.New("weather: service timeout")
	ErrBadPayload       = errors.New("weather: invalid payload")
)

type Observation struct {
	City     string  `json:"city"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
	Wind     float64 `json:"wind"`
	Rain     float64 `json:"rain"`
	Desc     string  `json:"desc"`
	Icon     string  `json:"icon"`
}

type ForecastDay struct {
	Date     string  `json:"date"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Rain     float64 `json:"rain"`
}

type Provider interface {
	Current(city string) (*Observation, error)
	CurrentByCoords(lat, lon float64) (*Observation, error)
	// Forecast returns one entry per day for the next five days.
	Forecast(city string) ([]ForecastDay, error)
}
