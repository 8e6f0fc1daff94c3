// Package handler provides HTTP handlers for the AquaWatch API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aquawatch/aquawatch/internal/dataset"
	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/prediction"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// StationCatalog is the read side of the station catalog.
type StationCatalog interface {
	Lookup(id int) (geography.Station, error)
	Stations(f geography.Filter) []geography.Station
	States() []string
	Cities(state string) []string
	Len() int
}

// Pipeline runs predictions and assessments.
type Pipeline interface {
	Predict(ctx context.Context, req waterquality.Request) (*prediction.Report, error)
	AssessMeasured(values waterquality.PredictionResult) (prediction.Evaluation, error)
	ModelInfo() prediction.ModelInfo
}

// DatasetSource provides the historical dataset, if it loaded.
type DatasetSource interface {
	Dataset() (*dataset.Dataset, error)
	Status() dataset.Status
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
