package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config carries the optional meshctl defaults loaded from a TOML file.
type Config struct {
	// DefaultProtocol is used by `meshctl verify` when --protocol is
	// not given; empty means full-mesh verification.
	DefaultProtocol string `toml:"default_protocol"`
	// Annotated selects the annotated canonical text form for the mesh
	// printed by `meshctl example`; plain JSON otherwise. `meshctl
	// verify` always prints its info tree in the annotated form.
	Annotated bool `toml:"annotated"`
}

func loadConfig() (Config, error) {
	cfg := Config{Annotated: true}
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
