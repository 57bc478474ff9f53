package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchDistricts(t *testing.T) {
	got := SearchDistricts("wa")
	assert.Equal(t, []string{"Wanaparthy", "Warangal"}, got)

	assert.Empty(t, SearchDistricts("zz"))
}

func TestApiCityAliases(t *testing.T) {
	assert.Equal(t, "Warangal", apiCity("Hanumakonda"))
	assert.Equal(t, "Hyderabad", apiCity("rangareddy"))
	assert.Equal(t, "Jangaon", apiCity("jongoan"))
	assert.Equal(t, "Nalgonda", apiCity(" Nalgonda "))
}

func TestSimilarDistricts(t *testing.T) {
	got := SimilarDistricts("waran", 3)
	assert.Contains(t, got, "Warangal")

	got = SimilarDistricts("jang", 3)
	assert.Contains(t, got, "Jangaon")

	assert.LessOrEqual(t, len(SimilarDistricts("a", 3)), 3)
}
