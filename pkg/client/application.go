package client

import (
	"fmt"

	"github.com/buildpacks/stager/internal/builder"
	"github.com/buildpacks/stager/internal/gitrepo"
	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/internal/stage"
	"github.com/buildpacks/stager/pkg/config"
)

// application binds a configured image to the services its pipeline needs.
type application struct {
	cfg          *config.Application
	projectDir   string
	stagesRepo   string
	builder      stage.Builder
	calculator   *signature.Calculator
	resetCommits *gitrepo.ResetCommits
}

func (a *application) Name() string {
	return a.cfg.Name
}

func (a *application) BaseImage() string {
	return a.cfg.From
}

func (a *application) Builder() stage.Builder {
	return a.builder
}

func (a *application) Artifacts() []*config.GitArtifactLocalExport {
	return a.cfg.Artifacts()
}

func (a *application) DockerInstructions() config.Docker {
	return a.cfg.Docker
}

func (a *application) ProjectDir() string {
	return a.projectDir
}

func (a *application) Checksum(deps []signature.Dependency) (string, error) {
	return a.calculator.Checksum(deps)
}

func (a *application) StageImageName(sig string) string {
	return fmt.Sprintf("%s/%s:%s", a.stagesRepo, a.cfg.Name, sig)
}

func (a *application) ResetCommit(dir string) (string, error) {
	return a.resetCommits.Lookup(dir)
}

// session holds the caches shared by the applications of one client call.
type session struct {
	projectDir   string
	stagesRepo   string
	calculator   *signature.Calculator
	resetCommits *gitrepo.ResetCommits
}

func newSession(projectDir, stagesRepo string) *session {
	return &session{
		projectDir:   projectDir,
		stagesRepo:   stagesRepo,
		calculator:   signature.NewCalculator(),
		resetCommits: gitrepo.NewResetCommits(),
	}
}

func (s *session) application(cfg *config.Application) *application {
	return &application{
		cfg:          cfg,
		projectDir:   s.projectDir,
		stagesRepo:   s.stagesRepo,
		builder:      builder.NewShell(cfg.Shell),
		calculator:   s.calculator,
		resetCommits: s.resetCommits,
	}
}
