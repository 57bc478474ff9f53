package ml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// httpPredictor calls an external inference service that hosts the trained
// soil-fertility and crop-recommendation models.
type httpPredictor struct {
	endpoint string
	client   *retryablehttp.Client
}

func NewHTTP(endpoint string) Predictor {
	c := retryablehttp.NewClient()
	c.RetryMax = 1
	c.HTTPClient.Timeout = 15 * time.Second
	c.Logger = nil
	return &httpPredictor{endpoint: strings.TrimRight(endpoint, "/"), client: c}
}

func (p *httpPredictor) post(path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrPrediction, err)
	}
	req, err := retryablehttp.NewRequest(http.MethodPost, p.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrPrediction, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrediction, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: non-2xx %s: %s", ErrPrediction, resp.Status, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrPrediction, err)
	}
	return nil
}

func (p *httpPredictor) PredictSoilFertility(n, pv, k, ph, moisture float64) (string, error) {
	var out struct {
		Label string `json:"label"`
	}
	err := p.post("/predict/soil", map[string]float64{
		"N": n, "P": pv, "K": k, "ph": ph, "moisture": moisture,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Label, nil
}

func (p *httpPredictor) PredictCrop(n, pv, k, ph, temperature, humidity, rainfall float64) (string, error) {
	var out struct {
		Crop string `json:"crop"`
	}
	err := p.post("/predict/crop", map[string]float64{
		"N": n, "P": pv, "K": k, "ph": ph,
		"temperature": temperature, "humidity": humidity, "rainfall": rainfall,
	}, &out)
	if err != nil {
		return "", err
	}
	return strings.ToLower(out.Crop), nil
}

func (p *httpPredictor) Accuracies() (float64, float64, error) {
	var out struct {
		Soil float64 `json:"soil"`
		Crop float64 `json:"crop"`
	}
	req, err := retryablehttp.NewRequest(http.MethodGet, p.endpoint+"/accuracies", nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: build request: %v", ErrPrediction, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrPrediction, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("%w: non-2xx %s", ErrPrediction, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, fmt.Errorf("%w: decode response: %v", ErrPrediction, err)
	}
	return out.Soil, out.Crop, nil
}
