package ml

import "strings"

// Crop knowledge base: growth durations and base daily water needs for
// the crops the recommendation models can emit. Unknown crops fall back
// to the defaults.

var cropDuration = map[string]int{
	"rice": 120, "wheat": 110, "maize": 100,
	"cotton": 160, "potato": 90, "sugarcane": 300,
	"soybean": 100, "groundnut": 110, "chickpea": 100,
	"mango": 365, "tomato": 90, "onion": 120,
	"banana": 270, "mustard": 100, "barley": 90,
	"lentil": 100, "orange": 365, "apple": 365,
	"grapes": 365, "watermelon": 80, "muskmelon": 85,
	"papaya": 240, "pomegranate": 365, "jute": 120,
	"coffee": 365, "coconut": 365, "blackgram": 75,
	"motherbeans": 90, "pigeonpeas": 130, "kidneybeans": 90,
}

const DefaultDuration = 100

var cropWaterNeed = map[string]float64{
	"rice": 6, "wheat": 4, "maize": 5, "cotton": 5,
	"potato": 4, "mango": 2, "sugarcane": 7,
	"soybean": 4, "groundnut": 4, "chickpea": 3,
}

const DefaultWaterNeed = 4

// Duration returns the growth duration in days for a crop.
func Duration(cropName string) int {
	if d, ok := cropDuration[normalize(cropName)]; ok {
		return d
	}
	return DefaultDuration
}

// WaterNeed returns the base daily water need in litres per plant.
func WaterNeed(cropName string) float64 {
	if w, ok := cropWaterNeed[normalize(cropName)]; ok {
		return w
	}
	return DefaultWaterNeed
}

// DetectSeason returns the farming season for a month number (1-12).
func DetectSeason(month int) string {
	switch month {
	case 6, 7, 8, 9:
		return "Monsoon"
	case 10, 11, 12, 1:
		return "Winter"
	default:
		return "Summer"
	}
}

// SoilNature classifies soil texture from sand/clay percentages.
func SoilNature(sand, clay float64) string {
	switch {
	case sand > 60:
		return "Sandy"
	case clay > 40:
		return "Clayey"
	default:
		return "Loamy"
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
