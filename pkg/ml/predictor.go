package ml

import "errors"

// ErrPrediction is wrapped by every failure of the inference service so
// callers can distinguish oracle trouble from their own input errors.
// Predictions are never retried beyond the transport layer.
var ErrPrediction = errors.New("ml: prediction failed")

// Predictor is the classification oracle: pure, deterministic functions
// from numeric features to labels. Construct one implementation at startup
// and pass it by handle; there is no process-wide model cache.
type Predictor interface {
	PredictSoilFertility(n, p, k, ph, moisture float64) (string, error)
	PredictCrop(n, p, k, ph, temperature, humidity, rainfall float64) (string, error)
	Accuracies() (soil, crop float64, err error)
}
