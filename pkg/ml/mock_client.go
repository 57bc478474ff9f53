package ml

// mockPredictor is a deterministic stand-in used when no inference
// endpoint is configured. The rules are crude but stable, which is all
// the rest of the system needs from the oracle.
type mockPredictor struct{}

func NewMock() Predictor { return &mockPredictor{} }

func (m *mockPredictor) PredictSoilFertility(n, p, k, ph, moisture float64) (string, error) {
	score := n + p + k
	switch {
	case score > 200 && ph >= 5.5 && ph <= 7.5:
		return "High Fertile", nil
	case score > 120:
		return "Moderately Fertile", nil
	default:
		return "Less Fertile", nil
	}
}

func (m *mockPredictor) PredictCrop(n, p, k, ph, temperature, humidity, rainfall float64) (string, error) {
	switch {
	case rainfall > 200 && humidity > 80:
		return "rice", nil
	case temperature > 30 && rainfall < 60:
		return "cotton", nil
	case ph < 6 && temperature < 25:
		return "potato", nil
	case n > 80 && temperature >= 18 && temperature <= 27:
		return "wheat", nil
	default:
		return "maize", nil
	}
}

func (m *mockPredictor) Accuracies() (float64, float64, error) {
	return 92.5, 95.1, nil
}
