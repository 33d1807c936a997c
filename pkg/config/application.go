package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/style"
)

// Shell holds the commands run by each hook stage.
type Shell struct {
	BeforeInstall []string `toml:"before_install" yaml:"before_install"`
	Install       []string `toml:"install" yaml:"install"`
	BeforeSetup   []string `toml:"before_setup" yaml:"before_setup"`
	Setup         []string `toml:"setup" yaml:"setup"`
	BuildArtifact []string `toml:"build_artifact" yaml:"build_artifact"`
}

// Commands returns the commands for the named hook stage, or nil when none are set.
func (s Shell) Commands(stage string) []string {
	switch stage {
	case "before_install":
		return s.BeforeInstall
	case "install":
		return s.Install
	case "before_setup":
		return s.BeforeSetup
	case "setup":
		return s.Setup
	case "build_artifact":
		return s.BuildArtifact
	}
	return nil
}

// Docker holds the image configuration applied by the docker_instructions stage.
type Docker struct {
	Env        map[string]string `toml:"env" yaml:"env"`
	Label      map[string]string `toml:"label" yaml:"label"`
	Expose     []string          `toml:"expose" yaml:"expose"`
	Volume     []string          `toml:"volume" yaml:"volume"`
	Workdir    string            `toml:"workdir" yaml:"workdir"`
	User       string            `toml:"user" yaml:"user"`
	Cmd        []string          `toml:"cmd" yaml:"cmd"`
	Entrypoint []string          `toml:"entrypoint" yaml:"entrypoint"`
}

func (d Docker) IsEmpty() bool {
	return len(d.Changes()) == 0
}

// Changes renders the instructions as Dockerfile lines in a stable order.
func (d Docker) Changes() []string {
	var changes []string
	for _, k := range sortedKeys(d.Env) {
		changes = append(changes, fmt.Sprintf("ENV %s=%s", k, d.Env[k]))
	}
	for _, k := range sortedKeys(d.Label) {
		changes = append(changes, fmt.Sprintf("LABEL %s=%s", k, quote(d.Label[k])))
	}
	for _, p := range d.Expose {
		changes = append(changes, "EXPOSE "+p)
	}
	for _, v := range d.Volume {
		changes = append(changes, "VOLUME "+v)
	}
	if d.Workdir != "" {
		changes = append(changes, "WORKDIR "+d.Workdir)
	}
	if d.User != "" {
		changes = append(changes, "USER "+d.User)
	}
	if len(d.Cmd) > 0 {
		changes = append(changes, "CMD "+execForm(d.Cmd))
	}
	if len(d.Entrypoint) > 0 {
		changes = append(changes, "ENTRYPOINT "+execForm(d.Entrypoint))
	}
	return changes
}

// Application is the build configuration of one image.
type Application struct {
	Name   string
	From   string
	Shell  Shell
	Docker Docker

	GitArtifactLocal GitArtifactLocal
}

func (a *Application) Validate() error {
	if a.Name == "" {
		return errors.New("image name must not be empty")
	}
	if a.From == "" {
		return errors.Errorf("image %s must define %s", style.Symbol(a.Name), style.Symbol("from"))
	}
	return nil
}

// Artifacts returns the local artifacts declared through GitArtifactLocal.
func (a *Application) Artifacts() []*GitArtifactLocalExport {
	return a.GitArtifactLocal.Exports()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func execForm(args []string) string {
	b, _ := json.Marshal(args)
	return string(b)
}
