package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/buildpacks/stager/internal/commands"
	"github.com/buildpacks/stager/internal/commands/testmocks"
	"github.com/buildpacks/stager/internal/commands/writer"
	"github.com/buildpacks/stager/pkg/client"
	"github.com/buildpacks/stager/pkg/logging"
	h "github.com/buildpacks/stager/testhelpers"
)

func TestStagesCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Commands", testStagesCommand, spec.Report(report.Terminal{}))
}

func testStagesCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command        *cobra.Command
		outBuf         bytes.Buffer
		mockController *gomock.Controller
		mockClient     *testmocks.MockStagerClient
		plans          []client.ApplicationPlan
	)

	it.Before(func() {
		outBuf.Reset()
		mockController = gomock.NewController(t)
		mockClient = testmocks.NewMockStagerClient(mockController)
		command = commands.Stages(logging.NewLogWithWriters(&outBuf, &outBuf), mockClient, writer.NewFactory())

		plans = []client.ApplicationPlan{{
			Name:      "web",
			BaseImage: "ruby:3.3",
			Tag:       "web",
			Stages: []client.StagePlan{
				{Name: "from", Signature: "0123456789abcdef", Image: "stager/stages/web:0123456789abcdef", Dependencies: []string{"from=ruby:3.3"}},
				{Name: "before_install", Signature: "fedcba9876543210", Empty: true, Dependencies: []string{}},
			},
		}}
	})

	it.After(func() {
		mockController.Finish()
	})

	when("#StagesCommand", func() {
		it("prints the stages in human readable form", func() {
			mockClient.EXPECT().Plan(gomock.Any(), gomock.Any()).Return(plans, nil)

			command.SetArgs([]string{"web"})
			h.AssertNil(t, command.Execute())

			h.AssertContains(t, outBuf.String(), "Image: 'web' (from ruby:3.3)")
			h.AssertContains(t, outBuf.String(), "STAGE")
			h.AssertContains(t, outBuf.String(), "0123456789ab")
			h.AssertNotContains(t, outBuf.String(), "0123456789abcdef")
			h.AssertContains(t, outBuf.String(), "empty")
		})

		it("prints the stages as json", func() {
			mockClient.EXPECT().Plan(gomock.Any(), gomock.Any()).Return(plans, nil)

			command.SetArgs([]string{"--output", "json"})
			h.AssertNil(t, command.Execute())

			h.AssertContains(t, outBuf.String(), `"images": [`)
			h.AssertContains(t, outBuf.String(), `"signature": "0123456789abcdef"`)
		})

		it("rejects unknown output formats", func() {
			command.SetArgs([]string{"--output", "xml"})
			h.AssertError(t, command.Execute(), "output format 'xml' is not supported")
		})

		it("forwards the flags onto the client", func() {
			var opts client.PlanOptions
			mockClient.EXPECT().
				Plan(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, o client.PlanOptions) ([]client.ApplicationPlan, error) {
					opts = o
					return plans, nil
				})

			command.SetArgs([]string{"--path", "/workspace", "--check-cache", "--changed", "-r", "registry.example.com/team", "web"})
			h.AssertNil(t, command.Execute())

			h.AssertEq(t, opts.ProjectDir, "/workspace")
			h.AssertEq(t, opts.Images, []string{"web"})
			h.AssertTrue(t, opts.CheckCache)
			h.AssertTrue(t, opts.CompareExported)
			h.AssertEq(t, opts.Repository, "registry.example.com/team")
		})

		when("--exit-code", func() {
			it("fails quietly when stages changed", func() {
				plans[0].Stale = []string{"from", "before_install"}
				mockClient.EXPECT().Plan(gomock.Any(), gomock.Any()).Return(plans, nil)

				command.SetArgs([]string{"--exit-code"})
				err := command.Execute()
				h.AssertTrue(t, commands.IsSoftError(err))
				h.AssertContains(t, outBuf.String(), "Changed stages:\n  from, before_install")
				h.AssertNotContains(t, outBuf.String(), "ERROR")
			})

			it("succeeds when nothing changed", func() {
				mockClient.EXPECT().Plan(gomock.Any(), gomock.Any()).Return(plans, nil)

				command.SetArgs([]string{"--exit-code"})
				h.AssertNil(t, command.Execute())
			})
		})
	})
}
