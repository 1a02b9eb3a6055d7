package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetString(ConfigHeuristic), "blocking")
	is.Equal(c.GetInt(ConfigMaxDepth), 0)
	is.True(c.GetBool(ConfigHeuristicCache))
	is.Equal(c.GetFloat64(ConfigHeuristicCacheFraction), 0.01)
}

func TestLoadFlagsAndArgs(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	err := c.Load([]string{"--heuristic=custom", "--max-depth", "6", "solve", "wwww/---/--/---/bbbb"})
	is.NoErr(err)
	is.Equal(c.GetString(ConfigHeuristic), "custom")
	is.Equal(c.GetInt(ConfigMaxDepth), 6)
	is.Equal(c.GetInt(ConfigMaxNodes), 0)
	is.Equal(c.Args(), []string{"solve", "wwww/---/--/---/bbbb"})
}

func TestLoadStopsAtFirstArg(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	err := c.Load([]string{"--debug", "solve", "-depth", "3", "--max-nodes", "5"})
	is.NoErr(err)
	is.True(c.GetBool(ConfigDebug))
	is.Equal(c.GetInt(ConfigMaxNodes), 0)
	is.Equal(c.Args(), []string{"solve", "-depth", "3", "--max-nodes", "5"})

	err = c.Load([]string{"load", "wwww", "---", "--", "---", "bbbb"})
	is.NoErr(err)
	is.Equal(c.Args(), []string{"load", "wwww", "---", "--", "---", "bbbb"})
}

func TestLoadEnvAndFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "oska.yaml")
	err := os.WriteFile(path, []byte("max-nodes: 500\nheuristic: custom\n"), 0o644)
	is.NoErr(err)

	t.Setenv("OSKA_MAX_DEPTH", "3")
	t.Setenv("OSKA_HEURISTIC", "blocking")

	c := &Config{}
	err = c.Load([]string{"--config-file", path})
	is.NoErr(err)
	is.Equal(c.GetInt(ConfigMaxNodes), 500)
	// the environment wins over the file
	is.Equal(c.GetString(ConfigHeuristic), "blocking")
	is.Equal(c.GetInt(ConfigMaxDepth), 3)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	err := c.Load([]string{"--no-such-flag"})
	is.True(err != nil)
}
