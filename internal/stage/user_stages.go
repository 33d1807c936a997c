package stage

import (
	"path/filepath"

	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/pkg/config"
)

// UserStage runs the builder hook of the same name. Stages that artifacts can declare
// dependencies for depend on the matching files of every artifact.
type UserStage struct {
	*BaseStage
	dependencyStage config.DependencyStage
}

func newUserStage(name Name, app Application, dependencyStage config.DependencyStage) *UserStage {
	s := &UserStage{dependencyStage: dependencyStage}
	s.BaseStage = newBaseStage(name, app, s)
	return s
}

func NewBeforeInstall(app Application) []Stage {
	return []Stage{newUserStage(BeforeInstall, app, "")}
}

// NewInstall, NewSetup and NewBuildArtifact return the hook stage preceded by the
// auxiliary patch stage that refreshes the files it depends on.
func NewInstall(app Application) []Stage {
	return []Stage{
		newGAPatch(GAPreInstallPatch, app, config.DependencyInstall),
		newUserStage(Install, app, config.DependencyInstall),
	}
}

func NewSetup(app Application) []Stage {
	return []Stage{
		newGAPatch(GAPreSetupPatch, app, config.DependencySetup),
		newUserStage(Setup, app, config.DependencySetup),
	}
}

func NewBuildArtifact(app Application) []Stage {
	return []Stage{
		newGAPatch(GAPreBuildArtifactPatch, app, config.DependencyBuildArtifact),
		newUserStage(BuildArtifact, app, config.DependencyBuildArtifact),
	}
}

// dependencies only reads the artifacts, never the auxiliary predecessor, whose
// files are the same ones.
func (s *UserStage) dependencies() ([]signature.Dependency, error) {
	if s.dependencyStage == "" {
		return nil, nil
	}
	return artifactFiles(s.app, s.dependencyStage)
}

// artifactFiles returns a files dependency for each artifact declaring patterns for stage.
func artifactFiles(app Application, stage config.DependencyStage) ([]signature.Dependency, error) {
	var deps []signature.Dependency
	for _, export := range app.Artifacts() {
		stageDeps, err := export.StageDependencies(nil)
		if err != nil {
			return nil, err
		}

		patterns := stageDeps.Patterns(stage)
		if len(patterns) == 0 {
			continue
		}
		deps = append(deps, signature.Files(export.To, artifactRoot(app, export), patterns))
	}
	return deps, nil
}

func artifactRoot(app Application, export *config.GitArtifactLocalExport) string {
	return filepath.Join(app.ProjectDir(), filepath.FromSlash(export.From))
}
