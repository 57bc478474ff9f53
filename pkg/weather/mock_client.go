package weather

import (
	"fmt"
	"time"
)

// mockProvider serves fixed readings when no API key is configured, so
// the rest of the app stays usable in development.
type mockProvider struct{}

func NewMock() Provider { return &mockProvider{} }

func (m *mockProvider) Current(city string) (*Observation, error) {
	return &Observation{
		City:     city,
		Temp:     31.0,
		Humidity: 58,
		Pressure: 1008,
		Wind:     3.4,
		Rain:     0,
		Desc:     "Clear Sky (mock)",
		Icon:     "01d",
	}, nil
}

func (m *mockProvider) CurrentByCoords(lat, lon float64) (*Observation, error) {
	obs, _ := m.Current(fmt.Sprintf("(%.2f, %.2f)", lat, lon))
	return obs, nil
}

func (m *mockProvider) Forecast(city string) ([]ForecastDay, error) {
	out := make([]ForecastDay, 0, 5)
	temps := []float64{30, 32, 35, 29, 31}
	rains := []float64{0, 0, 0, 6.5, 1.2}
	for i := 0; i < 5; i++ {
		out = append(out, ForecastDay{
			Date:     time.Now().AddDate(0, 0, i+1).Format("2006-01-02"),
			Temp:     temps[i],
			Humidity: 60,
			Rain:     rains[i],
		})
	}
	return out, nil
}
