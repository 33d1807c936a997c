package stage

import (
	"context"
	"encoding/json"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/config"
)

// GAArchiveStage adds the full content of every local artifact. It is only rebuilt when
// the artifact options change or a reset commit is made; later patch stages bring the
// content up to date.
type GAArchiveStage struct {
	*BaseStage
}

func NewGAArchive(app Application) []Stage {
	s := &GAArchiveStage{}
	s.BaseStage = newBaseStage(GAArchive, app, s)
	return []Stage{s}
}

func (s *GAArchiveStage) baseEmpty() bool {
	return len(s.app.Artifacts()) == 0
}

func (s *GAArchiveStage) dependencies() ([]signature.Dependency, error) {
	var deps []signature.Dependency
	for _, export := range s.app.Artifacts() {
		opts, err := json.Marshal(export.ArtifactOptions())
		if err != nil {
			return nil, errors.Wrapf(err, "encoding options of artifact %s", style.Symbol(export.To))
		}
		deps = append(deps, signature.Value(export.To, digest.FromBytes(opts).Encoded()))

		commit, err := s.app.ResetCommit(artifactRoot(s.app, export))
		if err != nil {
			return nil, errors.Wrapf(err, "looking up reset commit of artifact %s", style.Symbol(export.To))
		}
		if commit != "" {
			deps = append(deps, signature.Value(export.To+"@reset", commit))
		}
	}
	return deps, nil
}

func (s *GAArchiveStage) mutate(_ context.Context, img image.Image) error {
	for _, export := range s.app.Artifacts() {
		img.AddArtifact(toArtifact(s.app, export, nil))
	}
	return nil
}

// GAPatchStage re-applies the files an artifact declares for one dependency stage, so
// that the hook of that stage sees their current content even when ga_archive was
// cached. Patch stages are auxiliary: they are spliced by the constructor of the stage
// they serve and hidden from users.
type GAPatchStage struct {
	*BaseStage
	dependencyStage config.DependencyStage
}

func newGAPatch(name Name, app Application, dependencyStage config.DependencyStage) *GAPatchStage {
	s := &GAPatchStage{dependencyStage: dependencyStage}
	s.BaseStage = newBaseStage(name, app, s)
	s.auxiliary = true
	return s
}

// baseEmpty keeps the stage in the pipeline when its dependencies cannot be resolved,
// so that Signature reports the failure.
func (s *GAPatchStage) baseEmpty() bool {
	deps, err := s.dependencies()
	if err != nil {
		return false
	}
	return len(deps) == 0
}

func (s *GAPatchStage) dependencies() ([]signature.Dependency, error) {
	return artifactFiles(s.app, s.dependencyStage)
}

func (s *GAPatchStage) mutate(_ context.Context, img image.Image) error {
	for _, export := range s.app.Artifacts() {
		stageDeps, err := export.StageDependencies(nil)
		if err != nil {
			return err
		}
		patterns := stageDeps.Patterns(s.dependencyStage)
		if len(patterns) == 0 {
			continue
		}
		img.AddArtifact(toArtifact(s.app, export, patterns))
	}
	return nil
}

// GALatestPatchStage applies the current content of every local artifact.
type GALatestPatchStage struct {
	*BaseStage
}

func NewGALatestPatch(app Application) []Stage {
	s := &GALatestPatchStage{}
	s.BaseStage = newBaseStage(GALatestPatch, app, s)
	return []Stage{s}
}

func (s *GALatestPatchStage) baseEmpty() bool {
	return len(s.app.Artifacts()) == 0
}

func (s *GALatestPatchStage) dependencies() ([]signature.Dependency, error) {
	var deps []signature.Dependency
	for _, export := range s.app.Artifacts() {
		deps = append(deps, signature.Tree(export.To, artifactRoot(s.app, export), export.IncludePaths, export.ExcludePaths))
	}
	return deps, nil
}

func (s *GALatestPatchStage) mutate(_ context.Context, img image.Image) error {
	for _, export := range s.app.Artifacts() {
		img.AddArtifact(toArtifact(s.app, export, nil))
	}
	return nil
}

func toArtifact(app Application, export *config.GitArtifactLocalExport, patterns []string) image.Artifact {
	return image.Artifact{
		Source:   artifactRoot(app, export),
		To:       export.To,
		Include:  export.IncludePaths,
		Exclude:  export.ExcludePaths,
		Patterns: patterns,
		Owner:    export.Owner,
		Group:    export.Group,
	}
}
