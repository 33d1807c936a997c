package stage_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/internal/stage"
	"github.com/buildpacks/stager/pkg/config"
	h "github.com/buildpacks/stager/testhelpers"
)

func TestStage(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Stage", testStage, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testStage(t *testing.T, when spec.G, it spec.S) {
	var (
		builder *fakeBuilder
		app     *fakeApplication
		ctx     context.Context
	)

	it.Before(func() {
		builder = newFakeBuilder(map[string][]string{
			"install": {"bundle install"},
			"setup":   {"rake assets:precompile"},
		})
		app = newFakeApplication(builder)
		ctx = context.TODO()
	})

	when("#IsEmpty", func() {
		it("is never empty for from", func() {
			p := stage.NewPipeline(newFakeApplication(newFakeBuilder(nil)))
			h.AssertFalse(t, p.Get(stage.From).IsEmpty())
		})

		it("is empty for a hook stage without a hook", func() {
			p := stage.NewPipeline(app)
			h.AssertTrue(t, p.Get(stage.BeforeInstall).IsEmpty())
			h.AssertTrue(t, p.Get(stage.BuildArtifact).IsEmpty())
			h.AssertFalse(t, p.Get(stage.Install).IsEmpty())
			h.AssertFalse(t, p.Get(stage.Setup).IsEmpty())
		})

		it("is empty for git artifact stages without artifacts", func() {
			p := stage.NewPipeline(app)
			h.AssertTrue(t, p.Get(stage.GAArchive).IsEmpty())
			h.AssertTrue(t, p.Get(stage.GAPostInstallPatch).IsEmpty())
			h.AssertTrue(t, p.Get(stage.GALatestPatch).IsEmpty())
		})

		it("is not empty for git artifact stages with artifacts", func() {
			app.addArtifact(config.ArtifactExport{From: ".", To: "/app"}, func(d *config.StageDependencies) error {
				d.Install("Gemfile")
				return nil
			})

			p := stage.NewPipeline(app)
			h.AssertFalse(t, p.Get(stage.GAArchive).IsEmpty())
			h.AssertFalse(t, p.Get(stage.GAPreInstallPatch).IsEmpty())
			h.AssertFalse(t, p.Get(stage.GAPostInstallPatch).IsEmpty())
			h.AssertTrue(t, p.Get(stage.GAPreSetupPatch).IsEmpty())
			h.AssertFalse(t, p.Get(stage.GALatestPatch).IsEmpty())
		})

		it("keeps patch stages whose dependencies fail so the failure is reported", func() {
			export := &config.GitArtifactLocalExport{ArtifactExport: config.ArtifactExport{From: ".", To: "/app"}}
			_, err := export.StageDependencies(func(*config.StageDependencies) error {
				return errors.New("bad declaration")
			})
			h.AssertError(t, err, "bad declaration")
			app.artifacts = append(app.artifacts, export)

			patch := stage.NewPipeline(app).Get(stage.GAPreInstallPatch)
			h.AssertFalse(t, patch.IsEmpty())

			_, err = patch.Signature()
			h.AssertError(t, err, "bad declaration")
		})

		it("is empty for the post install patch when no artifact declares install dependencies", func() {
			app.addArtifact(config.ArtifactExport{From: ".", To: "/app"}, nil)

			p := stage.NewPipeline(app)
			h.AssertTrue(t, p.Get(stage.GAPostInstallPatch).IsEmpty())
			h.AssertFalse(t, p.Get(stage.GALatestPatch).IsEmpty())
		})

		it("depends on instructions for docker_instructions", func() {
			h.AssertTrue(t, stage.NewPipeline(app).Get(stage.DockerInstructions).IsEmpty())

			app.docker = config.Docker{Workdir: "/app"}
			h.AssertFalse(t, stage.NewPipeline(app).Get(stage.DockerInstructions).IsEmpty())
		})
	})

	when("#Image", func() {
		it("returns the predecessor image for an empty stage", func() {
			p := stage.NewPipeline(app)
			beforeInstall := p.Get(stage.BeforeInstall)
			h.AssertTrue(t, beforeInstall.IsEmpty())

			img, err := beforeInstall.Image(ctx)
			h.AssertNil(t, err)

			prevImg, err := beforeInstall.PrevStage().Image(ctx)
			h.AssertNil(t, err)

			h.AssertSameInstance(t, img, prevImg)
			h.AssertEq(t, builder.callCount("before_install"), 0)
		})

		it("derives a new image named by the signature", func() {
			p := stage.NewPipeline(app)
			install := p.Get(stage.Install)

			img, err := install.Image(ctx)
			h.AssertNil(t, err)

			sig, err := install.Signature()
			h.AssertNil(t, err)

			h.AssertEq(t, img.Name(), "stages/app:"+sig)
			h.AssertEq(t, img.Commands(), []string{"bundle install"})

			prevImg, err := install.PrevStage().Image(ctx)
			h.AssertNil(t, err)
			h.AssertSameInstance(t, img.Parent(), prevImg)
		})

		it("starts from the base image", func() {
			img, err := stage.NewPipeline(app).Get(stage.From).Image(ctx)
			h.AssertNil(t, err)

			h.AssertTrue(t, img.Parent().IsBase())
			h.AssertEq(t, img.Parent().Name(), "alpine:3.19")
		})

		it("memoizes the image and applies the hook once", func() {
			install := stage.NewPipeline(app).Get(stage.Install)

			first, err := install.Image(ctx)
			h.AssertNil(t, err)
			second, err := install.Image(ctx)
			h.AssertNil(t, err)

			h.AssertSameInstance(t, first, second)
			h.AssertEq(t, builder.callCount("install"), 1)
		})

		it("applies the hook once for concurrent callers", func() {
			setup := stage.NewPipeline(app).Get(stage.Setup)

			var wg sync.WaitGroup
			images := make([]image.Image, 8)
			for i := range images {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					images[i], _ = setup.Image(ctx)
				}(i)
			}
			wg.Wait()

			for _, img := range images {
				h.AssertSameInstance(t, img, images[0])
			}
			h.AssertEq(t, builder.callCount("setup"), 1)
			h.AssertEq(t, builder.callCount("install"), 1)
		})

		it("returns hook failures unmodified and memoizes nothing", func() {
			hookErr := errors.New("hook failed")
			builder.failNext("setup", hookErr)

			p := stage.NewPipeline(app)
			setup := p.Get(stage.Setup)

			_, err := setup.Image(ctx)
			h.AssertSameInstance(t, err, hookErr)

			img, err := setup.Image(ctx)
			h.AssertNil(t, err)
			h.AssertEq(t, img.Commands(), []string{"rake assets:precompile"})
			h.AssertEq(t, builder.callCount("setup"), 2)
			h.AssertEq(t, builder.callCount("install"), 1)
		})

		it("propagates predecessor failures", func() {
			hookErr := errors.New("install failed")
			builder.failNext("install", hookErr)

			_, err := stage.NewPipeline(app).Get(stage.BuildArtifact).Image(ctx)
			h.AssertSameInstance(t, err, hookErr)
			h.AssertEq(t, builder.callCount("setup"), 0)
		})

		it("adds artifacts in git artifact stages", func() {
			app.projectDir = "/project"
			app.addArtifact(config.ArtifactExport{From: "src", To: "/app", ExcludePaths: []string{"*.md"}, Owner: "app"}, func(d *config.StageDependencies) error {
				d.Install("Gemfile", "Gemfile.lock")
				return nil
			})
			p := stage.NewPipeline(app)

			archive, err := p.Get(stage.GAArchive).Image(ctx)
			h.AssertNil(t, err)
			h.AssertEq(t, archive.Artifacts(), []image.Artifact{
				{Source: "/project/src", To: "/app", Exclude: []string{"*.md"}, Owner: "app"},
			})

			patch, err := p.Get(stage.GAPostInstallPatch).Image(ctx)
			h.AssertNil(t, err)
			h.AssertEq(t, patch.Artifacts(), []image.Artifact{
				{Source: "/project/src", To: "/app", Exclude: []string{"*.md"}, Patterns: []string{"Gemfile", "Gemfile.lock"}, Owner: "app"},
			})
		})

		it("adds changes in docker_instructions", func() {
			app.docker = config.Docker{Workdir: "/app", User: "app"}

			img, err := stage.NewPipeline(app).Get(stage.DockerInstructions).Image(ctx)
			h.AssertNil(t, err)
			h.AssertEq(t, img.Changes(), []string{"WORKDIR /app", "USER app"})
		})
	})

	when("#Dependencies", func() {
		it.Before(func() {
			app.projectDir = "/project"
			app.addArtifact(config.ArtifactExport{From: ".", To: "/app"}, func(d *config.StageDependencies) error {
				d.Install("Gemfile").Setup("config/**")
				return nil
			})
			app.addArtifact(config.ArtifactExport{From: "assets", To: "/assets"}, func(d *config.StageDependencies) error {
				d.Install("package.json")
				return nil
			})
		})

		it("returns the declared files for the stage of every artifact", func() {
			deps, err := stage.NewPipeline(app).Get(stage.Install).Dependencies()
			h.AssertNil(t, err)

			h.AssertEq(t, len(deps), 2)
			h.AssertEq(t, deps[0].Artifact, "/app")
			h.AssertEq(t, deps[0].Root, "/project")
			h.AssertEq(t, deps[0].Patterns, []string{"Gemfile"})
			h.AssertEq(t, deps[1].Artifact, "/assets")
			h.AssertEq(t, deps[1].Root, "/project/assets")
			h.AssertEq(t, deps[1].Patterns, []string{"package.json"})
		})

		it("skips artifacts without patterns for the stage", func() {
			deps, err := stage.NewPipeline(app).Get(stage.Setup).Dependencies()
			h.AssertNil(t, err)

			h.AssertEq(t, len(deps), 1)
			h.AssertEq(t, deps[0].Patterns, []string{"config/**"})

			deps, err = stage.NewPipeline(app).Get(stage.BuildArtifact).Dependencies()
			h.AssertNil(t, err)
			h.AssertEq(t, len(deps), 0)
		})

		it("skips the auxiliary predecessor for before_setup", func() {
			beforeSetup := stage.NewPipeline(app).Get(stage.BeforeSetup)
			aux := beforeSetup.PrevStage()
			h.AssertEq(t, aux.Name(), stage.GAPostInstallPatch)
			h.AssertTrue(t, aux.IsAuxiliary())

			deps, err := beforeSetup.Dependencies()
			h.AssertNil(t, err)
			expected, err := aux.PrevStage().Dependencies()
			h.AssertNil(t, err)

			h.AssertEq(t, aux.PrevStage().Name(), stage.Install)
			h.AssertEq(t, deps, expected)
		})

		it("depends on the base image for from", func() {
			deps, err := stage.NewPipeline(app).Get(stage.From).Dependencies()
			h.AssertNil(t, err)
			h.AssertEq(t, len(deps), 1)
			h.AssertEq(t, deps[0].Value, "alpine:3.19")
		})

		it("depends on the reset commit for ga_archive", func() {
			deps, err := stage.NewPipeline(app).Get(stage.GAArchive).Dependencies()
			h.AssertNil(t, err)
			h.AssertEq(t, len(deps), 2)

			app.resetCommit = "0123abcd"
			deps, err = stage.NewPipeline(app).Get(stage.GAArchive).Dependencies()
			h.AssertNil(t, err)
			h.AssertEq(t, len(deps), 4)
			h.AssertEq(t, deps[1].Value, "0123abcd")
		})

		it("depends on the whole artifact for ga_latest_patch", func() {
			deps, err := stage.NewPipeline(app).Get(stage.GALatestPatch).Dependencies()
			h.AssertNil(t, err)
			h.AssertEq(t, len(deps), 2)
			h.AssertEq(t, string(deps[0].Kind), "tree")
		})
	})
}
