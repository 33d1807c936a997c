package stage_test

import (
	"context"
	"sync"

	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/internal/stage"
	"github.com/buildpacks/stager/pkg/config"
)

type fakeApplication struct {
	baseImage   string
	builder     stage.Builder
	artifacts   []*config.GitArtifactLocalExport
	docker      config.Docker
	projectDir  string
	calculator  *signature.Calculator
	resetCommit string
}

func newFakeApplication(builder stage.Builder) *fakeApplication {
	return &fakeApplication{
		baseImage:  "alpine:3.19",
		builder:    builder,
		calculator: signature.NewCalculator(),
	}
}

func (a *fakeApplication) Name() string                                { return "app" }
func (a *fakeApplication) BaseImage() string                           { return a.baseImage }
func (a *fakeApplication) Builder() stage.Builder                      { return a.builder }
func (a *fakeApplication) Artifacts() []*config.GitArtifactLocalExport { return a.artifacts }
func (a *fakeApplication) DockerInstructions() config.Docker           { return a.docker }
func (a *fakeApplication) ProjectDir() string                          { return a.projectDir }
func (a *fakeApplication) StageImageName(sig string) string            { return "stages/app:" + sig }
func (a *fakeApplication) ResetCommit(string) (string, error)          { return a.resetCommit, nil }
func (a *fakeApplication) Checksum(deps []signature.Dependency) (string, error) {
	return a.calculator.Checksum(deps)
}

func (a *fakeApplication) addArtifact(export config.ArtifactExport, declare func(*config.StageDependencies) error) {
	local := &config.GitArtifactLocal{}
	e, err := local.Add(export, declare)
	if err != nil {
		panic(err)
	}
	a.artifacts = append(a.artifacts, e)
}

// fakeBuilder registers a hook for every stage in commands and counts applications.
type fakeBuilder struct {
	mu       sync.Mutex
	commands map[string][]string
	calls    map[string]int
	errs     map[string][]error
}

func newFakeBuilder(commands map[string][]string) *fakeBuilder {
	return &fakeBuilder{
		commands: commands,
		calls:    map[string]int{},
		errs:     map[string][]error{},
	}
}

func (b *fakeBuilder) HasHook(stage string) bool {
	return len(b.commands[stage]) > 0
}

func (b *fakeBuilder) HookChecksum(stage string) string {
	if !b.HasHook(stage) {
		return ""
	}
	return stage + ":" + b.commands[stage][0]
}

// failNext makes the next application of the stage hook return err.
func (b *fakeBuilder) failNext(stage string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs[stage] = append(b.errs[stage], err)
}

func (b *fakeBuilder) ApplyHook(_ context.Context, stage string, img image.Image) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls[stage]++
	if errs := b.errs[stage]; len(errs) > 0 {
		b.errs[stage] = errs[1:]
		return errs[0]
	}

	img.AddCommands(b.commands[stage]...)
	return nil
}

func (b *fakeBuilder) callCount(stage string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[stage]
}
