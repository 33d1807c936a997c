package logging_test

import (
	"bytes"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/stager/pkg/logging"
	h "github.com/buildpacks/stager/testhelpers"
)

func TestPrefixWriter(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "PrefixWriter", testPrefixWriter, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testPrefixWriter(t *testing.T, when spec.G, it spec.S) {
	var (
		outBuf bytes.Buffer
		writer *logging.PrefixWriter
	)

	it.Before(func() {
		outBuf.Reset()
		writer = logging.NewPrefixWriter(&outBuf, "install")
	})

	when("#Write", func() {
		it("prefixes each complete line", func() {
			_, err := writer.Write([]byte("one\ntwo\n"))
			h.AssertNil(t, err)
			h.AssertEq(t, outBuf.String(), "[install] one\n[install] two\n")
		})

		it("buffers partial lines until a line feed arrives", func() {
			_, err := writer.Write([]byte("par"))
			h.AssertNil(t, err)
			h.AssertEq(t, outBuf.String(), "")

			_, err = writer.Write([]byte("tial\n"))
			h.AssertNil(t, err)
			h.AssertEq(t, outBuf.String(), "[install] partial\n")
		})

		it("drops carriage returns", func() {
			_, err := writer.Write([]byte("line\r\n"))
			h.AssertNil(t, err)
			h.AssertEq(t, outBuf.String(), "[install] line\n")
		})
	})

	when("#Close", func() {
		it("flushes pending data", func() {
			_, err := writer.Write([]byte("tail"))
			h.AssertNil(t, err)
			h.AssertNil(t, writer.Close())
			h.AssertEq(t, outBuf.String(), "[install] tail")
		})
	})
}
