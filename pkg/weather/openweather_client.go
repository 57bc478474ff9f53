package weather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var descTitle = cases.Title(language.English)

type openWeather struct {
	baseURL string
	apiKey  string
	client  *retryablehttp.Client
}

func NewOpenWeather(baseURL, apiKey string) Provider {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.HTTPClient.Timeout = 10 * time.Second
	c.Logger = nil
	return &openWeather{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: c}
}

type owmCurrent struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (w *openWeather) Current(city string) (*Observation, error) {
	q := url.Values{}
	q.Set("q", apiCity(city)+",IN")
	data, err := w.get("/weather", q, city)
	if err != nil {
		return nil, err
	}
	obs, err := decodeCurrent(data)
	if err != nil {
		return nil, err
	}
	obs.City = city
	return obs, nil
}

func (w *openWeather) CurrentByCoords(lat, lon float64) (*Observation, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	data, err := w.get("/weather", q, fmt.Sprintf("(%.2f, %.2f)", lat, lon))
	if err != nil {
		return nil, err
	}
	obs, err := decodeCurrent(data)
	if err != nil {
		return nil, err
	}
	return obs, nil
}

func decodeCurrent(data []byte) (*Observation, error) {
	var cur owmCurrent
	if err := json.Unmarshal(data, &cur); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(cur.Weather) == 0 {
		return nil, fmt.Errorf("%w: missing weather block", ErrBadPayload)
	}
	return &Observation{
		City:     cur.Name,
		Temp:     cur.Main.Temp,
		Humidity: cur.Main.Humidity,
		Pressure: cur.Main.Pressure,
		Wind:     cur.Wind.Speed,
		Rain:     cur.Rain.OneH,
		Desc:     descTitle.String(cur.Weather[0].Description),
		Icon:     cur.Weather[0].Icon,
	}, nil
}

func (w *openWeather) Forecast(city string) ([]ForecastDay, error) {
	q := url.Values{}
	q.Set("q", apiCity(city)+",IN")
	data, err := w.get("/forecast", q, city)
	if err != nil {
		return nil, err
	}

	var fc struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				Humidity float64 `json:"humidity"`
			} `json:"main"`
			Rain struct {
				ThreeH float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	// The API returns 3-hourly slots; take one per day for five days.
	out := []ForecastDay{}
	limit := len(fc.List)
	if limit > 40 {
		limit = 40
	}
	for i := 0; i < limit; i += 8 {
		item := fc.List[i]
		out = append(out, ForecastDay{
			Date:     strings.SplitN(item.DtTxt, " ", 2)[0],
			Temp:     item.Main.Temp,
			Humidity: item.Main.Humidity,
			Rain:     item.Rain.ThreeH,
		})
	}
	return out, nil
}

func (w *openWeather) get(path string, q url.Values, place string) ([]byte, error) {
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")

	req, err := retryablehttp.NewRequest(http.MethodGet, w.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrServiceFailed, err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		if ue, ok := err.(*url.Error); ok && ue.Timeout() {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, place)
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		msg := place
		if sugg := SimilarDistricts(place, 3); len(sugg) > 0 {
			msg += " (did you mean: " + strings.Join(sugg, ", ") + "?)"
		}
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, msg)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrServiceFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrBadPayload, err)
	}
	return data, nil
}
