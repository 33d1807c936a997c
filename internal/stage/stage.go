package stage

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/config"
)

type Name string

const (
	From                    Name = "from"
	BeforeInstall           Name = "before_install"
	GAArchive               Name = "ga_archive"
	GAPreInstallPatch       Name = "ga_pre_install_patch"
	Install                 Name = "install"
	GAPostInstallPatch      Name = "ga_post_install_patch"
	BeforeSetup             Name = "before_setup"
	GAPreSetupPatch         Name = "ga_pre_setup_patch"
	Setup                   Name = "setup"
	GAPreBuildArtifactPatch Name = "ga_pre_build_artifact_patch"
	BuildArtifact           Name = "build_artifact"
	GALatestPatch           Name = "ga_latest_patch"
	DockerInstructions      Name = "docker_instructions"
)

func (n Name) String() string {
	return string(n)
}

// Builder mutates stage images with user supplied hooks.
type Builder interface {
	HasHook(stage string) bool
	HookChecksum(stage string) string
	ApplyHook(ctx context.Context, stage string, img image.Image) error
}

// Application is the read-only build context shared by the stages of one pipeline.
type Application interface {
	Name() string
	BaseImage() string
	Builder() Builder
	Artifacts() []*config.GitArtifactLocalExport
	DockerInstructions() config.Docker
	ProjectDir() string
	Checksum(deps []signature.Dependency) (string, error)
	StageImageName(signature string) string
	// ResetCommit returns the most recent commit requesting a cache reset in the
	// repository containing dir, or an empty string.
	ResetCommit(dir string) (string, error)
}

type Stage interface {
	Name() Name
	PrevStage() Stage
	// IsAuxiliary reports whether the stage is spliced into the pipeline to apply
	// artifact content and is hidden from users.
	IsAuxiliary() bool
	IsEmpty() bool
	Dependencies() ([]signature.Dependency, error)
	Signature() (string, error)
	Image(ctx context.Context) (image.Image, error)

	link(prev Stage)
}

// variant holds the per stage behavior. BaseStage provides the defaults.
type variant interface {
	baseEmpty() bool
	dependencies() ([]signature.Dependency, error)
	mutate(ctx context.Context, img image.Image) error
}

type BaseStage struct {
	name      Name
	app       Application
	prev      Stage
	auxiliary bool
	variant   variant

	imageMu sync.Mutex
	image   image.Image

	signatureMu sync.Mutex
	signature   string
}

func newBaseStage(name Name, app Application, v variant) *BaseStage {
	s := &BaseStage{
		name:    name,
		app:     app,
		variant: v,
	}
	if v == nil {
		s.variant = s
	}
	return s
}

func (s *BaseStage) Name() Name {
	return s.name
}

func (s *BaseStage) PrevStage() Stage {
	return s.prev
}

func (s *BaseStage) IsAuxiliary() bool {
	return s.auxiliary
}

func (s *BaseStage) link(prev Stage) {
	s.prev = prev
}

func (s *BaseStage) IsEmpty() bool {
	return s.variant.baseEmpty() && !s.app.Builder().HasHook(s.name.String())
}

func (s *BaseStage) Dependencies() ([]signature.Dependency, error) {
	return s.variant.dependencies()
}

// Image returns the stage image, building its description on the first successful call.
// An empty stage returns its predecessor's image.
func (s *BaseStage) Image(ctx context.Context) (image.Image, error) {
	s.imageMu.Lock()
	defer s.imageMu.Unlock()

	if s.image != nil {
		return s.image, nil
	}

	prevImage, err := s.prevImage(ctx)
	if err != nil {
		return nil, err
	}

	if s.IsEmpty() {
		s.image = prevImage
		return s.image, nil
	}

	sig, err := s.Signature()
	if err != nil {
		return nil, err
	}

	img := image.NewStageImage(s.app.StageImageName(sig), prevImage)
	if err := s.variant.mutate(ctx, img); err != nil {
		return nil, err
	}

	s.image = img
	return s.image, nil
}

func (s *BaseStage) Signature() (string, error) {
	s.signatureMu.Lock()
	defer s.signatureMu.Unlock()

	if s.signature != "" {
		return s.signature, nil
	}

	var prev string
	if s.prev != nil {
		var err error
		if prev, err = s.prev.Signature(); err != nil {
			return "", err
		}
	}

	deps, err := s.Dependencies()
	if err != nil {
		return "", errors.Wrapf(err, "resolving dependencies of stage %s", style.Symbol(s.name.String()))
	}

	checksum, err := s.app.Checksum(deps)
	if err != nil {
		return "", errors.Wrapf(err, "calculating checksum of stage %s", style.Symbol(s.name.String()))
	}

	s.signature = signature.Stage(s.name.String(), prev, s.app.Builder().HookChecksum(s.name.String()), checksum)
	return s.signature, nil
}

func (s *BaseStage) prevImage(ctx context.Context) (image.Image, error) {
	if s.prev == nil {
		return image.NewBaseImage(s.app.BaseImage()), nil
	}
	return s.prev.Image(ctx)
}

func (s *BaseStage) baseEmpty() bool {
	return true
}

func (s *BaseStage) dependencies() ([]signature.Dependency, error) {
	return nil, nil
}

func (s *BaseStage) mutate(ctx context.Context, img image.Image) error {
	return s.applyHook(ctx, img)
}

func (s *BaseStage) applyHook(ctx context.Context, img image.Image) error {
	b := s.app.Builder()
	if !b.HasHook(s.name.String()) {
		return nil
	}
	return b.ApplyHook(ctx, s.name.String(), img)
}
