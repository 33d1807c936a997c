package style_test

import (
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/stager/internal/style"
	h "github.com/buildpacks/stager/testhelpers"
)

func TestStyle(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "testStyle", testStyle, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testStyle(t *testing.T, when spec.G, it spec.S) {
	when("#Symbol", func() {
		it("quotes the value", func() {
			h.AssertEq(t, style.Symbol("before_setup"), "'before_setup'")
		})

		it("quotes an empty value", func() {
			h.AssertEq(t, style.Symbol(""), "''")
		})
	})

	when("#Step", func() {
		it("marks the start of an image build", func() {
			h.AssertEq(t, style.Step("Building image %s", style.Symbol("web")), "===> Building image 'web'")
		})
	})

	when("#Prefix", func() {
		it("leaves the value alone without color", func() {
			h.AssertEq(t, style.Prefix("web"), "web")
		})
	})
}
