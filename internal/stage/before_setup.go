package stage

import (
	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/pkg/config"
)

type BeforeSetupStage struct {
	*BaseStage
}

// NewBeforeSetup returns the before_setup stage preceded by the auxiliary
// ga_post_install_patch stage.
func NewBeforeSetup(app Application) []Stage {
	s := &BeforeSetupStage{}
	s.BaseStage = newBaseStage(BeforeSetup, app, s)
	return []Stage{newGAPatch(GAPostInstallPatch, app, config.DependencyInstall), s}
}

// dependencies skips the auxiliary predecessor: the patch it applies is already
// accounted for by the stage before it.
func (s *BeforeSetupStage) dependencies() ([]signature.Dependency, error) {
	if s.prev == nil || s.prev.PrevStage() == nil {
		return nil, nil
	}
	return s.prev.PrevStage().Dependencies()
}
