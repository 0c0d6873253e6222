package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/mweegram/tickful/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Engine holds the CLI flag for the optional engine tunables file. The file
// is TOML:
//
//	[engine]
//	sla_minutes = 15
//	acceptable_minutes = 15
//	top_limit = 3
//	session_ttl_hours = 12
//
//	[[queue]]
//	name = "Forensics"
//
// Absent file or absent keys fall back to the defaults.
type Engine struct {
	path string
}

// NewEngine builds an Engine config bound to a fixed file path, bypassing
// flag parsing.
func NewEngine(path string) *Engine {
	return &Engine{path: path}
}

type engineFile struct {
	Engine engineSection `toml:"engine"`
	Queues []seedQueue   `toml:"queue"`
}

type engineSection struct {
	SLAMinutes        *int `toml:"sla_minutes"`
	AcceptableMinutes *int `toml:"acceptable_minutes"`
	TopLimit          *int `toml:"top_limit"`
	SessionTTLHours   *int `toml:"session_ttl_hours"`
}

type seedQueue struct {
	Name string `toml:"name"`
}

// Flags returns CLI flags for engine configuration
func (e *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the engine tunables TOML file",
			Sources:     cli.EnvVars("TICKFUL_CONFIG"),
			Destination: &e.path,
		},
	}
}

// Configure loads the tunables file and returns the engine config plus the
// seed queue names to ensure at startup.
func (e *Engine) Configure() (*domainConfig.Engine, []string, error) {
	cfg := domainConfig.DefaultEngine()
	if e.path == "" {
		return cfg, nil, nil
	}

	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read engine config", goerr.V("path", e.path))
	}

	var file engineFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to parse engine config", goerr.V("path", e.path))
	}

	if v := file.Engine.SLAMinutes; v != nil {
		cfg.SLAMinutes = *v
	}
	if v := file.Engine.AcceptableMinutes; v != nil {
		cfg.AcceptableMinutes = *v
	}
	if v := file.Engine.TopLimit; v != nil {
		cfg.TopLimit = *v
	}
	if v := file.Engine.SessionTTLHours; v != nil {
		cfg.SessionTTL = time.Duration(*v) * time.Hour
	}

	if err := validateEngine(cfg); err != nil {
		return nil, nil, err
	}

	var queues []string
	for _, q := range file.Queues {
		if q.Name == "" {
			return nil, nil, goerr.New("seed queue name is required", goerr.V("path", e.path))
		}
		queues = append(queues, q.Name)
	}

	return cfg, queues, nil
}

func validateEngine(cfg *domainConfig.Engine) error {
	if cfg.SLAMinutes <= 0 {
		return goerr.New("sla_minutes must be positive", goerr.V("value", cfg.SLAMinutes))
	}
	if cfg.AcceptableMinutes <= 0 {
		return goerr.New("acceptable_minutes must be positive", goerr.V("value", cfg.AcceptableMinutes))
	}
	if cfg.TopLimit <= 0 {
		return goerr.New("top_limit must be positive", goerr.V("value", cfg.TopLimit))
	}
	if cfg.SessionTTL <= 0 {
		return goerr.New("session_ttl_hours must be positive", goerr.V("value", cfg.SessionTTL))
	}
	return nil
}
