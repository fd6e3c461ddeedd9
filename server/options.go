package server

import (
	"github.com/Serdnad/rtdb/internal/options"
	"github.com/Serdnad/rtdb/storage"
)

// WithAddr sets the listen address on a Config built by NewConfig.
func WithAddr(addr string) *options.Func[*Config] {
	return options.NoError(func(c *Config) { c.Addr = addr })
}

// WithDataDir sets the data directory on a Config built by NewConfig.
func WithDataDir(dir string) *options.Func[*Config] {
	return options.NoError(func(c *Config) { c.DataDir = dir })
}

// NewConfig builds a Config from functional options, starting from rtdb's
// conventional defaults (127.0.0.1:4280, storage.DefaultDataRoot).
func NewConfig(opts ...options.Option[*Config]) (Config, error) {
	cfg := &Config{Addr: "127.0.0.1:4280", DataDir: storage.DefaultDataRoot}
	if err := options.Apply(cfg, opts...); err != nil {
		return Config{}, err
	}

	return *cfg, nil
}
