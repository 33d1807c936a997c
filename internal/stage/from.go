package stage

import (
	"github.com/buildpacks/stager/internal/signature"
)

// FromStage starts the pipeline from the application base image. It is never empty.
type FromStage struct {
	*BaseStage
}

func NewFrom(app Application) []Stage {
	s := &FromStage{}
	s.BaseStage = newBaseStage(From, app, s)
	return []Stage{s}
}

func (s *FromStage) baseEmpty() bool {
	return false
}

func (s *FromStage) dependencies() ([]signature.Dependency, error) {
	return []signature.Dependency{signature.Value("from", s.app.BaseImage())}, nil
}
