package control

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"
	"github.com/goliatone/go-reaction-control/pkg/activity"
)

// EnvPrefix is prepended to every environment variable read by ConfigFromEnv.
const EnvPrefix = "REACTIONCTL_"

// Config is the file/environment form of the wrapper options.
type Config struct {
	ReplayOnResume bool           `toml:"replay_on_resume" env:"REPLAY_ON_RESUME"`
	StrictKeys     bool           `toml:"strict_keys" env:"STRICT_KEYS"`
	Evaluator      string         `toml:"evaluator" env:"EVALUATOR"`
	Activity       ActivityConfig `toml:"activity" envPrefix:"ACTIVITY_"`
}

// ActivityConfig controls activity emission from configuration.
type ActivityConfig struct {
	Disabled bool   `toml:"disabled" env:"DISABLED"`
	Channel  string `toml:"channel" env:"CHANNEL"`
	ActorID  string `toml:"actor_id" env:"ACTOR_ID"`
}

// LoadConfig reads a TOML config file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("control: config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("control: config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv overlays REACTIONCTL_* environment variables onto base.
// Variables that are not set leave the base value untouched.
func ConfigFromEnv(base Config) (Config, error) {
	return configFromEnv(base, nil)
}

func configFromEnv(base Config, environment map[string]string) (Config, error) {
	cfg := base
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("control: config env parse failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the evaluator name.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Evaluator)) {
	case "", "expr", "cel":
		return nil
	case "js":
		if !jsEvaluatorAvailable() {
			return fmt.Errorf("control: js evaluator requires the js_eval build tag")
		}
		return nil
	default:
		return fmt.Errorf("control: unknown evaluator %q", c.Evaluator)
	}
}

// Options converts the config into wrapper options.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []Option{
		WithReplayOnResume(c.ReplayOnResume),
		WithStrictKeys(c.StrictKeys),
		WithActivityConfig(activity.Config{
			Enabled: !c.Activity.Disabled,
			Channel: c.Activity.Channel,
		}),
	}
	if c.Activity.ActorID != "" {
		opts = append(opts, WithActivityActor(c.Activity.ActorID))
	}
	switch strings.ToLower(strings.TrimSpace(c.Evaluator)) {
	case "cel":
		opts = append(opts, WithEvaluator(NewCELEvaluator()))
	case "js":
		opts = append(opts, WithEvaluator(NewJSEvaluator()))
	}
	return opts, nil
}
