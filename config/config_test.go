package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/azul/rules"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	r, err := cfg.Rules()
	is.NoErr(err)
	is.Equal(r, rules.DefaultRules())
	is.Equal(cfg.GetString(ConfigAgent), "greedy")
	is.Equal(cfg.GetString(ConfigAdversary), "random")
	is.Equal(cfg.GetInt(ConfigMaxRounds), 100)
	is.True(!cfg.GetBool(ConfigDebug))
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--games=7", "--floor-penalties=-1,-2,-3", "--debug"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigGames), 7)
	is.True(cfg.GetBool(ConfigDebug))
	r, err := cfg.Rules()
	is.NoErr(err)
	is.Equal(r.FloorPenalties, []int{-1, -2, -3})
	is.Equal(r.NumColors, 5)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("AZUL_NUM_FACTORIES", "7")
	t.Setenv("AZUL_ADVERSARY", "greedy")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetString(ConfigAdversary), "greedy")
	r, err := cfg.Rules()
	is.NoErr(err)
	is.Equal(r.NumFactories, 7)

	// flags win over the environment
	is.NoErr(cfg.Load([]string{"--num-factories=3"}))
	r, err = cfg.Rules()
	is.NoErr(err)
	is.Equal(r.NumFactories, 3)
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "azul.yaml")
	err := os.WriteFile(path, []byte("seed: 99\nreward-type: win\nthreads: 2\n"), 0o644)
	is.NoErr(err)

	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", path, "--threads=3"}))
	is.Equal(cfg.GetUint64(ConfigSeed), uint64(99))
	is.Equal(cfg.GetString(ConfigRewardType), "win")
	is.Equal(cfg.GetInt(ConfigThreads), 3)

	is.True(cfg.Load([]string{"--config-file", filepath.Join(t.TempDir(), "missing.yaml")}) != nil)
}

func TestBadRules(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--num-colors=1"}))
	_, err := cfg.Rules()
	is.True(errors.Is(err, rules.ErrInvalidRules))

	is.NoErr(cfg.Load([]string{"--floor-penalties=a,b"}))
	_, err = cfg.Rules()
	is.True(errors.Is(err, rules.ErrInvalidRules))
}

func TestSanitizedSettingsMasksPaths(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--output-file=/home/me/turns.csv", "--games=3"}))
	s := cfg.SanitizedSettings()
	is.Equal(s[ConfigOutputFile], masked)
	is.Equal(s[ConfigSummaryFile], "")
	is.Equal(cfg.GetInt(ConfigGames), 3)
	is.Equal(cfg.GetString(ConfigOutputFile), "/home/me/turns.csv") // source settings untouched
	_, ok := s[ConfigAgent]
	is.True(ok)
}
