// Package config loads settings from flags, AZUL_* environment variables
// and an optional config file, in that order of precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/azul/rules"
)

const (
	ConfigDebug            = "debug"
	ConfigConfigFile       = "config-file"
	ConfigNumColors        = "num-colors"
	ConfigNumFactories     = "num-factories"
	ConfigFactorySize      = "factory-size"
	ConfigFloorPenalties   = "floor-penalties"
	ConfigMaxRounds        = "max-rounds"
	ConfigSeed             = "seed"
	ConfigRewardType       = "reward-type"
	ConfigEmptyPickPenalty = "empty-pick-penalty"
	ConfigAgent            = "agent"
	ConfigAdversary        = "adversary"
	ConfigGames            = "games"
	ConfigThreads          = "threads"
	ConfigOutputFile       = "output-file"
	ConfigSummaryFile      = "summary-file"
	ConfigMode             = "mode"
)

const (
	ModeSelfPlay = "selfplay"
	ModeEpisode  = "episode"
)

type Config struct {
	*viper.Viper
}

func DefaultConfig() Config {
	c := Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigConfigFile, "")
	c.SetDefault(ConfigNumColors, rules.DefaultNumColors)
	c.SetDefault(ConfigNumFactories, rules.DefaultNumFactories)
	c.SetDefault(ConfigFactorySize, rules.DefaultFactorySize)
	c.SetDefault(ConfigFloorPenalties, penaltiesString(rules.DefaultFloorPenalties))
	c.SetDefault(ConfigMaxRounds, 100)
	c.SetDefault(ConfigSeed, uint64(0))
	c.SetDefault(ConfigRewardType, "score")
	c.SetDefault(ConfigEmptyPickPenalty, 0.1)
	c.SetDefault(ConfigAgent, "greedy")
	c.SetDefault(ConfigAdversary, "random")
	c.SetDefault(ConfigGames, 100)
	c.SetDefault(ConfigThreads, runtime.NumCPU())
	c.SetDefault(ConfigOutputFile, "")
	c.SetDefault(ConfigSummaryFile, "")
	c.SetDefault(ConfigMode, ModeSelfPlay)
}

// Load reads settings from args, then the environment, then the config
// file named by --config-file if any. Unset keys keep their defaults.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("azul", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "path to a YAML config file")
	fs.Int(ConfigNumColors, rules.DefaultNumColors, "number of tile colors")
	fs.Int(ConfigNumFactories, rules.DefaultNumFactories, "number of factory displays")
	fs.Int(ConfigFactorySize, rules.DefaultFactorySize, "tiles per factory display")
	fs.String(ConfigFloorPenalties, penaltiesString(rules.DefaultFloorPenalties), "comma-separated floor penalty per slot")
	fs.Int(ConfigMaxRounds, 100, "end a game after this many rounds")
	fs.Uint64(ConfigSeed, 0, "random seed; 0 picks one")
	fs.String(ConfigRewardType, "score", "environment reward: score or win")
	fs.Float64(ConfigEmptyPickPenalty, 0.1, "environment penalty for an empty pick")
	fs.String(ConfigAgent, "greedy", "strategy for the first player")
	fs.String(ConfigAdversary, "random", "strategy for the second player")
	fs.Int(ConfigGames, 100, "number of games to play")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of games to play at once")
	fs.String(ConfigOutputFile, "", "write a per-turn CSV log here")
	fs.String(ConfigSummaryFile, "", "write a YAML summary here")
	fs.String(ConfigMode, ModeSelfPlay, "selfplay: play many games and summarize; episode: step one environment episode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// Only explicitly set flags override the environment and config file.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if err := c.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}

	c.SetEnvPrefix("azul")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return nil
}

// pathKeys name settings that hold local file paths. They are masked when
// settings are logged.
var pathKeys = []string{ConfigConfigFile, ConfigOutputFile, ConfigSummaryFile}

const masked = "<set>"

// SanitizedSettings returns a copy of all settings that is safe to log.
// Non-empty file paths are replaced by a placeholder.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for _, k := range pathKeys {
		if v, ok := settings[k]; ok && fmt.Sprint(v) != "" {
			settings[k] = masked
		}
	}
	return settings
}

// Rules builds and validates the table rules from the settings.
func (c *Config) Rules() (rules.Rules, error) {
	penalties, err := rules.ParsePenalties(c.GetString(ConfigFloorPenalties))
	if err != nil {
		return rules.Rules{}, err
	}
	r := rules.Rules{
		NumColors:      c.GetInt(ConfigNumColors),
		NumFactories:   c.GetInt(ConfigNumFactories),
		FactorySize:    c.GetInt(ConfigFactorySize),
		FloorPenalties: penalties,
	}
	if err := r.Validate(); err != nil {
		return rules.Rules{}, err
	}
	return r, nil
}

func penaltiesString(p []int) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
