package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/style"
	pubcfg "github.com/buildpacks/stager/pkg/config"
)

const DefaultStagesRepo = "stager/stages"

type Config struct {
	StagesRepo      string            `toml:"stages-repo,omitempty"`
	Parallelism     int               `toml:"parallelism,omitempty"`
	PullPolicy      string            `toml:"pull-policy,omitempty"`
	RegistryMirrors map[string]string `toml:"registry-mirrors,omitempty"`
}

func DefaultConfigPath() (string, error) {
	home, err := StagerHome()
	if err != nil {
		return "", errors.Wrap(err, "getting stager home")
	}
	return filepath.Join(home, "config.toml"), nil
}

func StagerHome() (string, error) {
	stagerHome := os.Getenv("STAGER_HOME")
	if stagerHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "getting user home")
		}
		stagerHome = filepath.Join(home, ".stager")
	}
	return stagerHome, nil
}

func Read(path string) (Config, error) {
	cfg := Config{}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(err, "failed to read config file at path %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("unknown configuration elements %s in %s", ParseUndecodedKeys(undecoded), path)
	}

	return cfg, cfg.validate()
}

func Write(cfg Config, path string) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()

	return toml.NewEncoder(w).Encode(cfg)
}

// GetStagesRepo returns the repository holding stage images.
func (c Config) GetStagesRepo() string {
	if c.StagesRepo == "" {
		return DefaultStagesRepo
	}
	return c.StagesRepo
}

// GetParallelism returns the number of applications built at once.
func (c Config) GetParallelism() int {
	if c.Parallelism <= 0 {
		return runtime.NumCPU()
	}
	return c.Parallelism
}

func (c Config) GetPullPolicy() (pubcfg.PullPolicy, error) {
	return pubcfg.ParsePullPolicy(c.PullPolicy)
}

func (c Config) validate() error {
	if c.StagesRepo != "" {
		if _, err := name.NewRepository(c.StagesRepo, name.WeakValidation); err != nil {
			return errors.Wrapf(err, "invalid stages repository %s", style.Symbol(c.StagesRepo))
		}
	}
	if c.Parallelism < 0 {
		return errors.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	if _, err := c.GetPullPolicy(); err != nil {
		return err
	}
	for registry, mirror := range c.RegistryMirrors {
		if registry != "*" {
			if _, err := name.NewRegistry(registry, name.WeakValidation); err != nil {
				return errors.Wrapf(err, "invalid registry %s", style.Symbol(registry))
			}
		}
		if _, err := name.NewRegistry(mirror, name.WeakValidation); err != nil {
			return errors.Wrapf(err, "invalid mirror %s for registry %s", style.Symbol(mirror), style.Symbol(registry))
		}
	}
	return nil
}
