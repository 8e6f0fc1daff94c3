package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/aquawatch/aquawatch/internal/api/models"
	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/inference"
	"github.com/aquawatch/aquawatch/internal/prediction"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// PredictCmd predicts pollutant levels for one station and year.
type PredictCmd struct {
	Station int  `required:"" help:"Station id."`
	Year    int  `required:"" help:"Year to predict."`
	JSON    bool `name:"json" help:"Print the prediction as JSON."`
}

func (c *PredictCmd) Run(a *app) error {
	catalog, err := a.catalog()
	if err != nil {
		return err
	}
	predictor, err := a.predictor()
	if err != nil {
		return err
	}
	untrained, err := prediction.CheckColumns(predictor.ExpectedColumns(), catalog)
	if err != nil {
		return err
	}
	if slices.Contains(untrained, c.Station) {
		a.logger.Warn().Int("station_id", c.Station).Msg("model has no column for this station, prediction uses the year only")
	}

	svc := prediction.NewService(prediction.ServiceConfig{
		Catalog:   catalog,
		Predictor: predictor,
		Logger:    a.logger,
	})
	report, err := svc.Predict(context.Background(), waterquality.Request{StationID: c.Station, Year: c.Year})
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(a.out, models.NewPrediction(report))
	}
	fmt.Fprintf(a.out, "%s (%s, %s), %d\n\n", report.Station.Label(), report.Station.City, report.Station.State, report.Year)
	return writeEvaluation(a.out, report.Evaluation)
}

// AssessCmd scores measured pollutant values without the model.
type AssessCmd struct {
	O2   float64 `name:"o2" required:"" help:"Dissolved oxygen (mg/L)."`
	NO3  float64 `name:"no3" required:"" help:"Nitrate (mg/L)."`
	NO2  float64 `name:"no2" required:"" help:"Nitrite (mg/L)."`
	SO4  float64 `name:"so4" required:"" help:"Sulfate (mg/L)."`
	PO4  float64 `name:"po4" required:"" help:"Phosphate (mg/L)."`
	CL   float64 `name:"cl" required:"" help:"Chloride (mg/L)."`
	JSON bool    `name:"json" help:"Print the assessment as JSON."`
}

func (c *AssessCmd) Run(a *app) error {
	values := waterquality.PredictionResult{c.O2, c.NO3, c.NO2, c.SO4, c.PO4, c.CL}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number", waterquality.PredictedParameters()[i])
		}
	}

	e, err := prediction.Evaluate(values)
	if err != nil {
		return fmt.Errorf("no3 + so4 + cl is too large: %w", err)
	}
	if c.JSON {
		return writeJSON(a.out, models.NewEvaluation(e))
	}
	return writeEvaluation(a.out, e)
}

// StationsCmd lists catalog stations.
type StationsCmd struct {
	State string `help:"Only stations in this state."`
	City  string `help:"Only stations in this city."`
	JSON  bool   `name:"json" help:"Print the stations as JSON."`
}

func (c *StationsCmd) Run(a *app) error {
	catalog, err := a.catalog()
	if err != nil {
		return err
	}
	stations := catalog.Stations(geography.Filter{State: c.State, City: c.City})

	if c.JSON {
		items := make([]models.Station, 0, len(stations))
		for _, s := range stations {
			items = append(items, models.NewStation(s))
		}
		return writeJSON(a.out, models.NewList(items))
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATE\tCITY\tLOCATION")
	for _, s := range stations {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.State, s.City, s.Location)
	}
	return tw.Flush()
}

// CheckModelCmd loads the model artifacts and checks them against the catalog.
type CheckModelCmd struct{}

func (c *CheckModelCmd) Run(a *app) error {
	catalog, err := a.catalog()
	if err != nil {
		return err
	}
	predictor, err := a.predictor()
	if err != nil {
		return err
	}
	untrained, err := prediction.CheckColumns(predictor.ExpectedColumns(), catalog)
	if err != nil {
		return err
	}

	info := inference.Describe(predictor)
	fmt.Fprintf(a.out, "model:    %s, %d features\n", info.Type, info.Features)
	fmt.Fprintf(a.out, "stations: %d of %d trained\n", catalog.Len()-len(untrained), catalog.Len())
	if len(untrained) > 0 {
		ids := make([]string, len(untrained))
		for i, id := range untrained {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(a.out, "untrained: %s\n", strings.Join(ids, ", "))
	}
	return nil
}

func writeEvaluation(w io.Writer, e prediction.Evaluation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tVALUE\tVERDICT\tSEVERITY\tMESSAGE")
	for _, p := range e.Assessment.Parameters {
		fmt.Fprintf(tw, "%s\t%.2f %s\t%s\t%s\t%s\n", p.Parameter, p.Value, waterquality.Unit, p.Verdict, p.Severity, p.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	a := e.Assessment
	fmt.Fprintf(w, "\nTDS band: %s\n", e.TDSBand.Label())
	fmt.Fprintf(w, "Score:    %.1f/%.0f (%.1f%%)\n", a.TotalScore, a.MaxScore, a.Percentage)
	fmt.Fprintf(w, "Tier:     %s, %s\n", a.Tier, a.Summary())
	fmt.Fprintf(w, "Advice:   %s\n", a.Recommendation())
	for _, issue := range a.Issues {
		fmt.Fprintf(w, "  - %s\n", issue)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
