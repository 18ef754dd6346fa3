package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/types"
	"github.com/vulnboard/vulnboard/pkg/utils"
)

type Config struct {
	CacheDir string       `toml:"cache_dir"`
	LogMode  string       `toml:"log_mode"`
	Filter   types.Filter `toml:"filter"`
	API      API          `toml:"api"`
	Server   Server       `toml:"server"`
}

type API struct {
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

type Server struct {
	Addr string `toml:"addr"`
}

func Default() Config {
	return Config{
		CacheDir: utils.CacheDir(),
		LogMode:  "development",
		API: API{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads a TOML file on top of the defaults. An empty path or a missing
// file yields the defaults.
func Load(path string) (Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return conf, nil
	} else if err != nil {
		return Config{}, xerrors.Errorf("failed to read config: %w", err)
	}

	md, err := toml.Decode(string(b), &conf)
	if err != nil {
		return Config{}, xerrors.Errorf("failed to decode TOML (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, xerrors.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	if conf.LogMode != "development" && conf.LogMode != "production" {
		return Config{}, xerrors.Errorf("invalid log_mode %q", conf.LogMode)
	}
	return conf, nil
}
