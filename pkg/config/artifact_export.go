package config

import (
	"path"
	"sync"

	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/style"
)

// ArtifactOptions is the serialized form of an export consumed by the signature engine.
type ArtifactOptions struct {
	From               string                       `json:"from" yaml:"from" toml:"from"`
	To                 string                       `json:"to" yaml:"to" toml:"to"`
	IncludePaths       []string                     `json:"include_paths,omitempty" yaml:"include_paths,omitempty" toml:"include_paths,omitempty"`
	ExcludePaths       []string                     `json:"exclude_paths,omitempty" yaml:"exclude_paths,omitempty" toml:"exclude_paths,omitempty"`
	Owner              string                       `json:"owner,omitempty" yaml:"owner,omitempty" toml:"owner,omitempty"`
	Group              string                       `json:"group,omitempty" yaml:"group,omitempty" toml:"group,omitempty"`
	StagesDependencies map[DependencyStage][]string `json:"stages_dependencies,omitempty" yaml:"stages_dependencies,omitempty" toml:"stages_dependencies,omitempty"`
}

// ArtifactExport describes one path exported into the image.
type ArtifactExport struct {
	From         string
	To           string
	IncludePaths []string
	ExcludePaths []string
	Owner        string
	Group        string
}

func (e *ArtifactExport) Validate() error {
	if e.To == "" {
		return errors.New("artifact export must define 'to'")
	}
	if !path.IsAbs(e.To) {
		return errors.Errorf("artifact export 'to' must be an absolute path, got %s", style.Symbol(e.To))
	}
	return nil
}

func (e *ArtifactExport) ArtifactOptions() ArtifactOptions {
	return ArtifactOptions{
		From:         e.From,
		To:           e.To,
		IncludePaths: append([]string{}, e.IncludePaths...),
		ExcludePaths: append([]string{}, e.ExcludePaths...),
		Owner:        e.Owner,
		Group:        e.Group,
	}
}

// GitArtifactLocalExport is an export sourced from the local project directory.
type GitArtifactLocalExport struct {
	ArtifactExport

	once    sync.Once
	deps    *StageDependencies
	depsErr error
}

// StageDependencies returns the export's dependency declaration, creating it on the
// first call by running declare. Later calls return the same instance and ignore declare.
func (e *GitArtifactLocalExport) StageDependencies(declare func(*StageDependencies) error) (*StageDependencies, error) {
	e.once.Do(func() {
		e.deps, e.depsErr = NewStageDependencies(declare)
	})
	return e.deps, e.depsErr
}

func (e *GitArtifactLocalExport) ArtifactOptions() ArtifactOptions {
	opts := e.ArtifactExport.ArtifactOptions()
	deps, err := e.StageDependencies(nil)
	if err != nil || deps == nil {
		deps = &StageDependencies{}
	}
	opts.StagesDependencies = deps.ToMap()
	return opts
}

// LocalArtifactDeclarer is the configuration surface for local artifacts.
type LocalArtifactDeclarer interface {
	Add(export ArtifactExport, declare func(*StageDependencies) error) (*GitArtifactLocalExport, error)
}

// GitArtifactLocal collects the local artifact exports of one application.
type GitArtifactLocal struct {
	exports []*GitArtifactLocalExport
}

// Add declares a local artifact and its stage dependencies.
func (g *GitArtifactLocal) Add(export ArtifactExport, declare func(*StageDependencies) error) (*GitArtifactLocalExport, error) {
	return g.export(export, declare)
}

func (g *GitArtifactLocal) export(export ArtifactExport, declare func(*StageDependencies) error) (*GitArtifactLocalExport, error) {
	if err := export.Validate(); err != nil {
		return nil, err
	}

	e := &GitArtifactLocalExport{ArtifactExport: export}
	if _, err := e.StageDependencies(declare); err != nil {
		return nil, errors.Wrapf(err, "declaring local artifact %s", style.Symbol(export.To))
	}

	g.exports = append(g.exports, e)
	return e, nil
}

func (g *GitArtifactLocal) Exports() []*GitArtifactLocalExport {
	return g.exports
}
