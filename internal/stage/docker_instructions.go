package stage

import (
	"context"

	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/internal/signature"
)

type DockerInstructionsStage struct {
	*BaseStage
}

func NewDockerInstructions(app Application) []Stage {
	s := &DockerInstructionsStage{}
	s.BaseStage = newBaseStage(DockerInstructions, app, s)
	return []Stage{s}
}

func (s *DockerInstructionsStage) baseEmpty() bool {
	return s.app.DockerInstructions().IsEmpty()
}

func (s *DockerInstructionsStage) dependencies() ([]signature.Dependency, error) {
	var deps []signature.Dependency
	for _, change := range s.app.DockerInstructions().Changes() {
		deps = append(deps, signature.Value("docker", change))
	}
	return deps, nil
}

func (s *DockerInstructionsStage) mutate(_ context.Context, img image.Image) error {
	img.AddChanges(s.app.DockerInstructions().Changes()...)
	return nil
}
