package v01

import (
	"bytes"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/internal/style"
	pubcfg "github.com/buildpacks/stager/pkg/config"
)

type Git struct {
	Add               string              `toml:"add" yaml:"add"`
	To                string              `toml:"to" yaml:"to"`
	IncludePaths      []string            `toml:"include_paths" yaml:"include_paths"`
	ExcludePaths      []string            `toml:"exclude_paths" yaml:"exclude_paths"`
	Owner             string              `toml:"owner" yaml:"owner"`
	Group             string              `toml:"group" yaml:"group"`
	StageDependencies map[string][]string `toml:"stage_dependencies" yaml:"stage_dependencies"`
}

type Image struct {
	Name   string        `toml:"name" yaml:"name"`
	From   string        `toml:"from" yaml:"from"`
	Shell  pubcfg.Shell  `toml:"shell" yaml:"shell"`
	Docker pubcfg.Docker `toml:"docker" yaml:"docker"`
	Git    []Git         `toml:"git" yaml:"git"`
}

type Project struct {
	SchemaVersion string `toml:"schema-version" yaml:"schema-version"`
}

type Descriptor struct {
	Project Project `toml:"_" yaml:"_"`
	Images  []Image `toml:"image" yaml:"image"`
}

func (d Descriptor) ApplicationsFromToml(contents string) ([]*pubcfg.Application, error) {
	md, err := toml.Decode(contents, &d)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown configuration elements %s", config.ParseUndecodedKeys(undecoded))
	}
	return d.applications()
}

func (d Descriptor) ApplicationsFromYaml(contents string) ([]*pubcfg.Application, error) {
	dec := yaml.NewDecoder(bytes.NewBufferString(contents))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return d.applications()
}

func (d Descriptor) applications() ([]*pubcfg.Application, error) {
	var apps []*pubcfg.Application
	for _, img := range d.Images {
		app := &pubcfg.Application{
			Name:   img.Name,
			From:   img.From,
			Shell:  img.Shell,
			Docker: img.Docker,
		}

		for _, g := range img.Git {
			from, err := exportSource(g.Add)
			if err != nil {
				return nil, errors.Wrapf(err, "image %s", style.Symbol(img.Name))
			}

			export := pubcfg.ArtifactExport{
				From:         from,
				To:           g.To,
				IncludePaths: g.IncludePaths,
				ExcludePaths: g.ExcludePaths,
				Owner:        g.Owner,
				Group:        g.Group,
			}
			if _, err := app.GitArtifactLocal.Add(export, declareDependencies(g.StageDependencies)); err != nil {
				return nil, errors.Wrapf(err, "image %s", style.Symbol(img.Name))
			}
		}

		apps = append(apps, app)
	}
	return apps, nil
}

func declareDependencies(deps map[string][]string) func(*pubcfg.StageDependencies) error {
	if len(deps) == 0 {
		return nil
	}

	stages := make([]string, 0, len(deps))
	for stage := range deps {
		stages = append(stages, stage)
	}
	sort.Strings(stages)

	return func(s *pubcfg.StageDependencies) error {
		for _, stage := range stages {
			if err := s.Declare(stage, deps[stage]...); err != nil {
				return err
			}
		}
		return nil
	}
}

// exportSource turns the project relative path of a git entry into an absolute path
// rooted at the project directory.
func exportSource(add string) (string, error) {
	rel := path.Clean(strings.TrimPrefix(add, "/"))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.Errorf("git path %s must stay inside the project", style.Symbol(add))
	}
	return path.Join("/", rel), nil
}
