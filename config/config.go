package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                  = "debug"
	ConfigHeuristic              = "heuristic"
	ConfigMaxDepth               = "max-depth"
	ConfigMaxNodes               = "max-nodes"
	ConfigTargetOnly             = "target-only"
	ConfigHeuristicCache         = "heuristic-cache"
	ConfigHeuristicCacheFraction = "heuristic-cache-fraction"
	ConfigBatchThreads           = "batch-threads"
	ConfigCPUProfile             = "cpu-profile"
	ConfigTraceFile              = "trace-file"
	ConfigConfigFile             = "config-file"
)

type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config with every default set and nothing read
// from flags, the environment or files.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigHeuristic, "blocking")
	c.SetDefault(ConfigMaxDepth, 0)
	c.SetDefault(ConfigMaxNodes, 0)
	c.SetDefault(ConfigTargetOnly, false)
	c.SetDefault(ConfigHeuristicCache, true)
	c.SetDefault(ConfigHeuristicCacheFraction, 0.01)
	c.SetDefault(ConfigBatchThreads, 4)
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigTraceFile, "")
	c.SetDefault(ConfigConfigFile, "")
}

// Load reads configuration from args, then OSKA_* environment variables,
// then an optional YAML file named by --config-file. Flags given on the
// command line win over the environment, which wins over the file.
// Flags must come before any other argument; the rest are kept, see Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("oska", pflag.ContinueOnError)
	// Flags come first; everything from the first argument on is a shell
	// command line and may contain its own -options and rows like "---".
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.String(ConfigHeuristic, "blocking", "heuristic to use: blocking or custom")
	fs.Int(ConfigMaxDepth, 0, "maximum plies to look ahead; 0 for no limit")
	fs.Int(ConfigMaxNodes, 0, "maximum nodes to expand; 0 for no limit")
	fs.Bool(ConfigTargetOnly, false, "only a win for the solving side ends the search")
	fs.Bool(ConfigHeuristicCache, true, "cache heuristic estimates by zobrist hash")
	fs.Float64(ConfigHeuristicCacheFraction, 0.01, "fraction of system memory for the heuristic cache")
	fs.Int(ConfigBatchThreads, 4, "scenarios solved at once in batch mode")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigTraceFile, "", "write a search trace to this file")
	fs.String(ConfigConfigFile, "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("oska")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// Args returns the non-flag arguments from the last Load.
func (c *Config) Args() []string {
	return c.args
}
