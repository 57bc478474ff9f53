package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	assert.Equal(t, 120, Duration("rice"))
	assert.Equal(t, 300, Duration(" Sugarcane "))
	assert.Equal(t, DefaultDuration, Duration("dragonfruit"))
}

func TestWaterNeed(t *testing.T) {
	assert.Equal(t, 6.0, WaterNeed("rice"))
	assert.Equal(t, 4.0, WaterNeed("WHEAT"))
	assert.Equal(t, float64(DefaultWaterNeed), WaterNeed("unknown"))
}

func TestDetectSeason(t *testing.T) {
	assert.Equal(t, "Monsoon", DetectSeason(7))
	assert.Equal(t, "Winter", DetectSeason(12))
	assert.Equal(t, "Winter", DetectSeason(1))
	assert.Equal(t, "Summer", DetectSeason(4))
}

func TestSoilNature(t *testing.T) {
	assert.Equal(t, "Sandy", SoilNature(70, 10))
	assert.Equal(t, "Clayey", SoilNature(30, 50))
	assert.Equal(t, "Loamy", SoilNature(40, 30))
}

func TestMockPredictorDeterministic(t *testing.T) {
	m := NewMock()
	a, err := m.PredictCrop(90, 40, 40, 6.5, 22, 60, 80)
	assert.NoError(t, err)
	b, _ := m.PredictCrop(90, 40, 40, 6.5, 22, 60, 80)
	assert.Equal(t, a, b)

	label, err := m.PredictSoilFertility(80, 80, 80, 6.5, 50)
	assert.NoError(t, err)
	assert.Equal(t, "High Fertile", label)
}
