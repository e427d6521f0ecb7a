// Package config holds the runtime settings for the engine, the players
// and the evolution harness. Settings come from defaults, an optional
// YAML file, REVERSI_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug        = "debug"
	ConfigConfigFile   = "config-file"
	ConfigBoardSize    = "board-size"
	ConfigSearchDepth  = "search-depth"
	ConfigDynamicDepth = "dynamic-depth"

	ConfigDepthShallow       = "depth-shallow"
	ConfigDepthOpening       = "depth-opening"
	ConfigDepthMidgame       = "depth-midgame"
	ConfigDepthEndgame       = "depth-endgame"
	ConfigDepthMidgamePieces = "depth-midgame-pieces"
	ConfigDepthEndgamePieces = "depth-endgame-pieces"
	ConfigDepthInnerNum      = "depth-inner-num"
	ConfigDepthInnerDen      = "depth-inner-den"

	ConfigPopulationSize  = "population-size"
	ConfigSurvivors       = "survivors"
	ConfigMutations       = "mutations"
	ConfigCrossovers      = "crossovers"
	ConfigRandoms         = "randoms"
	ConfigGenerations     = "generations"
	ConfigStartPercent    = "start-percent"
	ConfigThreads         = "threads"
	ConfigTournamentDepth = "tournament-depth"
	ConfigPopulationFile  = "population-file"
	ConfigMatchLog        = "match-log"
	ConfigSeed            = "seed"
	ConfigCPUProfile      = "cpu-profile"

	ConfigBlackGenome = "black-genome"
	ConfigWhiteGenome = "white-genome"
)

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the default values.
func DefaultConfig() *Config {
	c := &Config{viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigBoardSize, 8)
	c.SetDefault(ConfigSearchDepth, 6)
	c.SetDefault(ConfigDynamicDepth, true)

	c.SetDefault(ConfigDepthShallow, 5)
	c.SetDefault(ConfigDepthOpening, 6)
	c.SetDefault(ConfigDepthMidgame, 7)
	c.SetDefault(ConfigDepthEndgame, 12)
	c.SetDefault(ConfigDepthMidgamePieces, 32)
	c.SetDefault(ConfigDepthEndgamePieces, 52)
	c.SetDefault(ConfigDepthInnerNum, 2)
	c.SetDefault(ConfigDepthInnerDen, 3)

	c.SetDefault(ConfigPopulationSize, 16)
	c.SetDefault(ConfigSurvivors, 7)
	c.SetDefault(ConfigMutations, 4)
	c.SetDefault(ConfigCrossovers, 4)
	c.SetDefault(ConfigRandoms, 1)
	c.SetDefault(ConfigGenerations, 10)
	c.SetDefault(ConfigStartPercent, 0.68)
	c.SetDefault(ConfigThreads, 1)
	c.SetDefault(ConfigTournamentDepth, 3)
	c.SetDefault(ConfigPopulationFile, "")
	c.SetDefault(ConfigMatchLog, "")
	c.SetDefault(ConfigSeed, "")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigBlackGenome, "default")
	c.SetDefault(ConfigWhiteGenome, "evo8c")
}

// Load parses command-line args (without the program name), then merges
// the environment and the config file named by --config-file, if any.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("reversi", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "optional YAML file with settings")
	fs.Int(ConfigBoardSize, 8, "rows and columns of a new board")
	fs.Int(ConfigSearchDepth, 6, "fixed search depth in plies")
	fs.Bool(ConfigDynamicDepth, true, "pick the search depth from the game phase")

	fs.Int(ConfigDepthShallow, 5, "depth while the inner ring is sparsely filled")
	fs.Int(ConfigDepthOpening, 6, "depth before the midgame piece threshold")
	fs.Int(ConfigDepthMidgame, 7, "depth between the midgame and endgame thresholds")
	fs.Int(ConfigDepthEndgame, 12, "depth from the endgame threshold on")
	fs.Int(ConfigDepthMidgamePieces, 32, "piece count at which the midgame starts")
	fs.Int(ConfigDepthEndgamePieces, 52, "piece count at which the endgame starts")
	fs.Int(ConfigDepthInnerNum, 2, "numerator of the inner ring occupancy needed to leave the shallow depth")
	fs.Int(ConfigDepthInnerDen, 3, "denominator of the inner ring occupancy fraction")

	fs.Int(ConfigPopulationSize, 16, "genomes per generation")
	fs.Int(ConfigSurvivors, 7, "top genomes carried over unchanged")
	fs.Int(ConfigMutations, 4, "mutants per generation")
	fs.Int(ConfigCrossovers, 4, "crossover children per generation")
	fs.Int(ConfigRandoms, 1, "fully random genomes per generation")
	fs.Int(ConfigGenerations, 10, "number of generations to run")
	fs.Float64(ConfigStartPercent, 0.68, "fraction of the board filled in the tournament start position")
	fs.Int(ConfigThreads, 1, "matches played at once")
	fs.Int(ConfigTournamentDepth, 3, "search depth of tournament players")
	fs.String(ConfigPopulationFile, "", "YAML list of genomes to start from and save to")
	fs.String(ConfigMatchLog, "", "CSV file to write match results to")
	fs.String(ConfigSeed, "", "seed for reproducible runs")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigBlackGenome, "default", "genome preset for black in self-play")
	fs.String(ConfigWhiteGenome, "evo8c", "genome preset for white in self-play")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("REVERSI")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	return nil
}

// SanitizedSettings returns all settings as a printable string.
func (c *Config) SanitizedSettings() string {
	return fmt.Sprintf("%v", c.AllSettings())
}
