package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"othello/experiments/metrics"
	"othello/game/othello"
	"othello/meta"
)

var ErrInvalidConfig = errors.New("invalid config")

var (
	agentKinds = []string{"minimax", "mcts", "random"}
	evaluators = []string{"uniform", "linear"}
)

type Config struct {
	LogLevel    string                `mapstructure:"log_level"`
	Seed        uint64                `mapstructure:"seed"`
	Simulations int                   `mapstructure:"num_simulations"`
	CPuct       float64               `mapstructure:"c_puct"`
	Depth       int                   `mapstructure:"depth"`
	Heuristic   string                `mapstructure:"heuristic"`
	Temperature float64               `mapstructure:"temperature"`
	Evaluator   string                `mapstructure:"evaluator"`
	Games       int                   `mapstructure:"games"`
	MaxMoves    int                   `mapstructure:"max_moves"`
	Concurrency int                   `mapstructure:"concurrency"`
	OutputDir   string                `mapstructure:"output_dir"`
	Agents      []metrics.AgentConfig `mapstructure:"agents"`
	MatchUps    [][]int               `mapstructure:"match_ups"`
}

// Load reads the optional file at path and OTHELLO_* environment variables
// on top of the built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("OTHELLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if len(cfg.Agents) == 0 {
		cfg.Agents = DefaultAgents()
	}
	if len(cfg.MatchUps) == 0 {
		cfg.MatchUps = [][]int{{cfg.Agents[0].ID, cfg.Agents[len(cfg.Agents)-1].ID}}
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 1)
	v.SetDefault("num_simulations", meta.SIMULATIONS)
	v.SetDefault("c_puct", meta.C_PUCT)
	v.SetDefault("depth", meta.DEPTH)
	v.SetDefault("heuristic", "mean")
	v.SetDefault("temperature", meta.TEMPERATURE)
	v.SetDefault("evaluator", "uniform")
	v.SetDefault("games", meta.GAMES)
	v.SetDefault("max_moves", meta.MAX_MOVES)
	v.SetDefault("concurrency", meta.GO_ROUTINES)
	v.SetDefault("output_dir", "")
}

func DefaultAgents() []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: 1, Kind: "minimax"},
		{ID: 2, Kind: "mcts"},
	}
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Simulations <= 0 {
		return fmt.Errorf("%w: num_simulations must be positive, got %d", ErrInvalidConfig, c.Simulations)
	}
	if c.CPuct < 0 {
		return fmt.Errorf("%w: c_puct cannot be negative, got %g", ErrInvalidConfig, c.CPuct)
	}
	if c.Depth < 0 {
		return fmt.Errorf("%w: depth cannot be negative, got %d", ErrInvalidConfig, c.Depth)
	}
	if _, err := othello.Heuristic(c.Heuristic); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !lo.Contains(evaluators, c.Evaluator) {
		return fmt.Errorf("%w: evaluator %q", ErrInvalidConfig, c.Evaluator)
	}
	if c.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if c.MaxMoves <= 0 {
		return fmt.Errorf("%w: max_moves must be positive, got %d", ErrInvalidConfig, c.MaxMoves)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}

	for _, a := range c.Agents {
		if !lo.Contains(agentKinds, a.Kind) {
			return fmt.Errorf("%w: agent %d has unknown kind %q", ErrInvalidConfig, a.ID, a.Kind)
		}
		resolved := c.Agent(a)
		if _, err := othello.Heuristic(resolved.Heuristic); err != nil {
			return fmt.Errorf("%w: agent %d: %v", ErrInvalidConfig, a.ID, err)
		}
		if !lo.Contains(evaluators, resolved.Evaluator) {
			return fmt.Errorf("%w: agent %d has unknown evaluator %q", ErrInvalidConfig, a.ID, resolved.Evaluator)
		}
		if resolved.Depth < 0 || resolved.Simulations < 0 || resolved.CPuct < 0 {
			return fmt.Errorf("%w: agent %d has a negative setting", ErrInvalidConfig, a.ID)
		}
	}
	if dup := lo.FindDuplicatesBy(c.Agents, func(a metrics.AgentConfig) int { return a.ID }); len(dup) > 0 {
		return fmt.Errorf("%w: agent id %d is used twice", ErrInvalidConfig, dup[0].ID)
	}

	for _, m := range c.MatchUps {
		if len(m) != 2 {
			return fmt.Errorf("%w: match-up %v must name two agents", ErrInvalidConfig, m)
		}
		for _, id := range m {
			if _, ok := c.FindAgent(id); !ok {
				return fmt.Errorf("%w: match-up %v names unknown agent %d", ErrInvalidConfig, m, id)
			}
		}
	}
	return nil
}

// Agent fills the unset fields of a with the global settings.
func (c *Config) Agent(a metrics.AgentConfig) metrics.AgentConfig {
	if a.Depth == 0 {
		a.Depth = c.Depth
	}
	if a.Heuristic == "" {
		a.Heuristic = c.Heuristic
	}
	if a.Simulations == 0 {
		a.Simulations = c.Simulations
	}
	if a.CPuct == 0 {
		a.CPuct = c.CPuct
	}
	if a.Temperature == 0 {
		a.Temperature = c.Temperature
	}
	if a.Evaluator == "" {
		a.Evaluator = c.Evaluator
	}
	return a
}

// FindAgent returns the resolved agent with the given id.
func (c *Config) FindAgent(id int) (metrics.AgentConfig, bool) {
	a, ok := lo.Find(c.Agents, func(a metrics.AgentConfig) bool { return a.ID == id })
	if !ok {
		return metrics.AgentConfig{}, false
	}
	return c.Agent(a), true
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
