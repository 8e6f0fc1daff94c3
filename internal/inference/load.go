package inference

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquawatch/aquawatch/internal/resilience"
)

// Config selects and locates the model artifacts.
type Config struct {
	Kind        Kind
	ModelPath   string
	ColumnsPath string
	ServerURL   string
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// Load reads the column artifact and builds the configured Predictor.
func Load(cfg Config) (Predictor, error) {
	columns, err := LoadColumns(cfg.ColumnsPath)
	if err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case KindLinear, "":
		m, err := LoadLinear(cfg.ModelPath, columns)
		if err != nil {
			return nil, err
		}
		cfg.Logger.Info().
			Str("path", cfg.ModelPath).
			Int("features", len(columns)).
			Msg("loaded linear model")
		return m, nil

	case KindRemote:
		rc := resilience.DefaultConfig("model-server")
		if cfg.Timeout > 0 {
			rc.Timeout = cfg.Timeout
		}
		rc.Logger = cfg.Logger
		m, err := NewRemote(cfg.ServerURL, columns, resilience.NewClient(rc))
		if err != nil {
			return nil, err
		}
		cfg.Logger.Info().
			Str("url", cfg.ServerURL).
			Int("features", len(columns)).
			Msg("using remote model server")
		return m, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
