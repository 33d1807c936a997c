package client

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/heroku/color"
	"github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/stager/internal/build"
	"github.com/buildpacks/stager/internal/fakes"
	"github.com/buildpacks/stager/pkg/config"
	stagererrors "github.com/buildpacks/stager/pkg/errors"
	"github.com/buildpacks/stager/pkg/logging"
	h "github.com/buildpacks/stager/testhelpers"
)

const projectToml = `
[_]
schema-version = "0.1"

[[image]]
name = "web"
from = "ruby:3.3"

[image.shell]
install = ["bundle install"]

[image.docker]
workdir = "/app"

[[image.git]]
to = "/app"

[image.git.stage_dependencies]
install = ["Gemfile"]

[[image]]
name = "worker"
from = "alpine:3.19"
`

func TestBuild(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Build", testBuild, spec.Report(report.Terminal{}))
}

func testBuild(t *testing.T, when spec.G, it spec.S) {
	var (
		subject    *Client
		backend    *fakes.FakeBackend
		exporter   *fakeExporter
		outBuf     bytes.Buffer
		projectDir string
		ctx        context.Context
		expect     func(actual interface{}, extra ...interface{}) gomega.Assertion
	)

	it.Before(func() {
		var err error
		expect = gomega.NewWithT(t).Expect
		ctx = context.TODO()
		outBuf.Reset()

		projectDir = t.TempDir()
		h.WriteFile(t, projectDir, "stager.toml", projectToml)
		h.WriteFile(t, projectDir, "Gemfile", "source 'https://rubygems.org'")
		h.WriteFile(t, projectDir, "app.rb", "puts 'hello'")

		backend = fakes.NewFakeBackend()
		exporter = newFakeExporter()
		subject, err = NewClient(
			WithLogger(logging.NewLogWithWriters(&outBuf, &outBuf)),
			WithBackend(backend),
			WithExporter(exporter),
			WithStagesRepo("local/stages"),
		)
		h.AssertNil(t, err)
	})

	stageNames := func(stages []StageResult, filter func(StageResult) bool) []string {
		var names []string
		for _, s := range stages {
			if filter(s) {
				names = append(names, s.Name)
			}
		}
		return names
	}
	built := func(s StageResult) bool { return !s.Empty && !s.Cached }

	when("#Build", func() {
		it("builds every non empty stage of every image", func() {
			results, err := subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir}})
			h.AssertNil(t, err)
			h.AssertEq(t, len(results), 2)

			web := results[0]
			h.AssertEq(t, web.Application, "web")
			h.AssertEq(t, web.Tag, "web")
			h.AssertEq(t, len(web.Stages), 9)
			h.AssertEq(t, stageNames(web.Stages, built), []string{"from", "ga_archive", "install", "ga_latest_patch", "docker_instructions"})

			worker := results[1]
			h.AssertEq(t, stageNames(worker.Stages, built), []string{"from"})

			// web also commits its hidden ga_pre_install_patch and ga_post_install_patch stages
			h.AssertEq(t, len(backend.Commits()), 8)
			for _, name := range backend.Commits() {
				h.AssertTrue(t, strings.HasPrefix(name, "local/stages/"))
			}
			expect(backend.Pulled()).To(gomega.ConsistOf("ruby:3.3", "alpine:3.19"))

			webExport, ok := exporter.get("web")
			h.AssertTrue(t, ok)
			h.AssertEq(t, webExport.stageImage, web.Stages[8].Image)
			h.AssertEq(t, webExport.labels[build.ApplicationLabel], "web")

			workerExport, ok := exporter.get("worker")
			h.AssertTrue(t, ok)
			h.AssertEq(t, workerExport.stageImage, worker.Stages[0].Image)

			h.AssertContains(t, outBuf.String(), "Successfully built image 'web'")
		})

		it("reuses stage images that already exist", func() {
			_, err := subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir}})
			h.AssertNil(t, err)

			results, err := subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir}})
			h.AssertNil(t, err)
			h.AssertEq(t, len(backend.Commits()), 8)
			h.AssertEq(t, stageNames(results[0].Stages, built), []string(nil))
			h.AssertEq(t, stageNames(results[0].Stages, func(s StageResult) bool { return s.Cached }),
				[]string{"from", "ga_archive", "install", "ga_latest_patch", "docker_instructions"})
			h.AssertContains(t, outBuf.String(), "(cached)")
		})

		it("rebuilds from the first changed stage", func() {
			_, err := subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir}})
			h.AssertNil(t, err)

			h.WriteFile(t, projectDir, "Gemfile", "source 'https://example.com'")

			results, err := subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir, Images: []string{"web"}}})
			h.AssertNil(t, err)
			h.AssertEq(t, len(results), 1)
			h.AssertEq(t, stageNames(results[0].Stages, built), []string{"install", "ga_latest_patch", "docker_instructions"})
			// the refreshed Gemfile is committed before install runs
			commits := backend.Commits()
			h.AssertEq(t, len(commits), 13)
			h.AssertNotEq(t, commits[8], results[0].Stages[2].Image)
			h.AssertEq(t, commits[9], results[0].Stages[3].Image)
		})

		it("rebuilds everything without cache", func() {
			_, err := subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir}})
			h.AssertNil(t, err)

			_, err = subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir}, NoCache: true})
			h.AssertNil(t, err)
			h.AssertEq(t, len(backend.Commits()), 16)
		})

		it("tags images under the repository", func() {
			results, err := subject.Build(ctx, BuildOptions{
				ProjectOptions: ProjectOptions{ProjectDir: projectDir, Images: []string{"worker"}},
				Repository:     "registry.example.com/team",
				PullPolicy:     config.PullNever,
			})
			h.AssertNil(t, err)
			h.AssertEq(t, results[0].Tag, "registry.example.com/team/worker")
		})

		it("fails for unknown images", func() {
			_, err := subject.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir, Images: []string{"api"}}})
			h.AssertError(t, err, "image 'api' is not defined in 'stager.toml'")
		})

		it("reports the stage that failed", func() {
			failing := &failingBackend{FakeBackend: fakes.NewFakeBackend(), stage: "install"}
			cl, err := NewClient(
				WithLogger(logging.NewLogWithWriters(&outBuf, &outBuf)),
				WithBackend(failing),
				WithExporter(exporter),
			)
			h.AssertNil(t, err)

			_, err = cl.Build(ctx, BuildOptions{ProjectOptions: ProjectOptions{ProjectDir: projectDir, Images: []string{"web"}}})
			h.AssertError(t, err, "building stage 'install' of image 'web': container exploded")
			h.AssertTrue(t, errors.Is(err, stagererrors.ErrStageFailed))

			_, ok := exporter.get("web")
			h.AssertFalse(t, ok)
		})
	})
}
