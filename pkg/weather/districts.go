package weather

import (
	"sort"
	"strings"
)

// Districts of Telangana offered in the location picker.
var Districts = []string{
	"Adilabad", "Bhadradri Kothagudem", "Hanumakonda", "Hyderabad",
	"Jagtial", "Jangaon", "Jayashankar Bhupalpally", "Jogulamba Gadwal",
	"Kamareddy", "Karimnagar", "Khammam", "Komaram Bheem Asifabad",
	"Mahabubabad", "Mahabubnagar", "Mancherial", "Medak",
	"Medchal-Malkajgiri", "Mulugu", "Nagarkurnool", "Nalgonda",
	"Narayanpet", "Nirmal", "Nizamabad", "Peddapalli",
	"Rajanna Sircilla", "Rangareddy", "Sangareddy",
	"Siddipet", "Suryapet", "Vikarabad", "Wanaparthy",
	"Warangal", "Yadadri Bhuvanagiri",
}

// districtAlias maps districts the upstream API does not know to the
// name of a nearby station it does, plus common misspellings.
var districtAlias = map[string]string{
	"bhadradri kothagudem":    "Kothagudem",
	"jayashankar bhupalpally": "Bhupalpally",
	"jogulamba gadwal":        "Gadwal",
	"komaram bheem asifabad":  "Asifabad",
	"medchal-malkajgiri":      "Medchal",
	"rajanna sircilla":        "Sircilla",
	"yadadri bhuvanagiri":     "Bhuvanagiri",
	"rangareddy":              "Hyderabad",
	"hanumakonda":             "Warangal",
	"mulugu":                  "Warangal",
	"jongoan":                 "Jangaon",
	"jongaon":                 "Jangaon",
	"jongan":                  "Jangaon",
}

func init() { sort.Strings(Districts) }

// apiCity resolves the name to hand to the upstream API.
func apiCity(city string) string {
	if mapped, ok := districtAlias[strings.ToLower(strings.TrimSpace(city))]; ok {
		return mapped
	}
	return strings.TrimSpace(city)
}

// SearchDistricts returns districts whose name starts with the prefix,
// case-insensitively.
func SearchDistricts(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := []string{}
	for _, d := range Districts {
		if strings.HasPrefix(strings.ToLower(d), prefix) {
			out = append(out, d)
		}
	}
	return out
}

// SimilarDistricts suggests up to max district names resembling the input,
// for "did you mean" hints on a failed lookup.
func SimilarDistricts(city string, max int) []string {
	cityLower := strings.ToLower(strings.TrimSpace(city))
	var out []string
	for _, d := range Districts {
		dl := strings.ToLower(d)
		switch {
		case strings.Contains(dl, cityLower) || strings.Contains(cityLower, dl):
			out = append(out, d)
		case len(cityLower) >= 3 && strings.HasPrefix(dl, cityLower[:3]):
			out = append(out, d)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}
