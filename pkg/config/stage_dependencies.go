package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/style"
	stagererrors "github.com/buildpacks/stager/pkg/errors"
)

// DependencyStage names a stage that local artifacts can declare file dependencies for.
type DependencyStage string

const (
	DependencyInstall       DependencyStage = "install"
	DependencySetup         DependencyStage = "setup"
	DependencyBuildArtifact DependencyStage = "build_artifact"
)

// DependencyStages lists every stage accepted by StageDependencies, in pipeline order.
var DependencyStages = []DependencyStage{DependencyInstall, DependencySetup, DependencyBuildArtifact}

// StageDependencies records, per stage, the glob patterns of an artifact whose changes
// invalidate that stage. Patterns keep declaration order and duplicates.
type StageDependencies struct {
	install       []string
	setup         []string
	buildArtifact []string

	// first invalid pattern passed to a fluent method
	err error
}

// NewStageDependencies returns an empty declaration and, when declare is non-nil,
// runs it against the new instance.
func NewStageDependencies(declare func(*StageDependencies) error) (*StageDependencies, error) {
	deps := &StageDependencies{}
	if declare == nil {
		return deps, nil
	}
	if err := declare(deps); err != nil {
		return nil, err
	}
	if deps.err != nil {
		return nil, deps.err
	}
	return deps, nil
}

// Install, Setup and BuildArtifact append patterns for their stage. An invalid pattern
// is dropped and reported by NewStageDependencies.
func (s *StageDependencies) Install(globs ...string) *StageDependencies {
	s.install = s.appendValid(s.install, DependencyInstall, globs)
	return s
}

func (s *StageDependencies) Setup(globs ...string) *StageDependencies {
	s.setup = s.appendValid(s.setup, DependencySetup, globs)
	return s
}

func (s *StageDependencies) BuildArtifact(globs ...string) *StageDependencies {
	s.buildArtifact = s.appendValid(s.buildArtifact, DependencyBuildArtifact, globs)
	return s
}

func (s *StageDependencies) appendValid(patterns []string, stage DependencyStage, globs []string) []string {
	for _, glob := range globs {
		if err := validatePattern(stage, glob); err != nil {
			if s.err == nil {
				s.err = err
			}
			continue
		}
		patterns = append(patterns, glob)
	}
	return patterns
}

// validatePattern rejects patterns that would silently match nothing.
func validatePattern(stage DependencyStage, glob string) error {
	switch {
	case strings.TrimSpace(glob) == "":
		return errors.Wrapf(stagererrors.ErrInvalidPattern, "empty pattern for stage %s", style.Symbol(string(stage)))
	case strings.HasPrefix(glob, "!"):
		return errors.Wrapf(stagererrors.ErrInvalidPattern, "negated pattern %s for stage %s", style.Symbol(glob), style.Symbol(string(stage)))
	}
	return nil
}

// Declare is the string form of the fluent methods, used by project descriptors.
func (s *StageDependencies) Declare(stage string, globs ...string) error {
	dependencyStage := DependencyStage(stage)
	switch dependencyStage {
	case DependencyInstall, DependencySetup, DependencyBuildArtifact:
	default:
		return errors.Wrapf(stagererrors.ErrUnknownStage, "stage dependencies for %s", style.Symbol(stage))
	}

	for _, glob := range globs {
		if err := validatePattern(dependencyStage, glob); err != nil {
			return err
		}
	}

	switch dependencyStage {
	case DependencyInstall:
		s.Install(globs...)
	case DependencySetup:
		s.Setup(globs...)
	case DependencyBuildArtifact:
		s.BuildArtifact(globs...)
	}
	return nil
}

// Patterns returns a copy of the patterns declared for stage. Unknown stages have none.
func (s *StageDependencies) Patterns(stage DependencyStage) []string {
	var src []string
	switch stage {
	case DependencyInstall:
		src = s.install
	case DependencySetup:
		src = s.setup
	case DependencyBuildArtifact:
		src = s.buildArtifact
	}
	return append([]string{}, src...)
}

// ToMap returns the total mapping over DependencyStages. Every stage is present and
// maps to a non-nil slice.
func (s *StageDependencies) ToMap() map[DependencyStage][]string {
	result := make(map[DependencyStage][]string, len(DependencyStages))
	for _, stage := range DependencyStages {
		result[stage] = s.Patterns(stage)
	}
	return result
}
