package name_test

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/stager/internal/name"
	h "github.com/buildpacks/stager/testhelpers"
)

func TestTranslateRegistry(t *testing.T) {
	spec.Run(t, "TranslateRegistry", testTranslateRegistry, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testTranslateRegistry(t *testing.T, when spec.G, it spec.S) {
	assert := h.NewAssertionManager(t)

	when("#TranslateRegistry", func() {
		it("doesn't translate when there are no mirrors", func() {
			output, translated, err := name.TranslateRegistry("ruby:3.3", nil)
			assert.Nil(err)
			assert.Equal(output, "ruby:3.3")
			assert.Equal(translated, false)
		})

		it("doesn't translate when no mirror matches", func() {
			output, translated, err := name.TranslateRegistry("index.docker.io/library/ruby:3.3", map[string]string{
				"us.gcr.io": "10.0.0.1",
			})
			assert.Nil(err)
			assert.Equal(output, "index.docker.io/library/ruby:3.3")
			assert.Equal(translated, false)
		})

		it("translates short names of the default registry", func() {
			output, translated, err := name.TranslateRegistry("ruby:3.3", map[string]string{
				"index.docker.io": "10.0.0.1",
			})
			assert.Nil(err)
			assert.Equal(output, "10.0.0.1/library/ruby:3.3")
			assert.Equal(translated, true)
		})

		it("prefers the wildcard mirror", func() {
			output, _, err := name.TranslateRegistry("index.docker.io/my/app:0.1", map[string]string{
				"index.docker.io": "10.0.0.1",
				"*":               "10.0.0.2",
			})
			assert.Nil(err)
			assert.Equal(output, "10.0.0.2/my/app:0.1")
		})

		it("keeps digests", func() {
			digest := "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
			output, _, err := name.TranslateRegistry("gcr.io/my/app@"+digest, map[string]string{
				"gcr.io": "mirror.example.com",
			})
			assert.Nil(err)
			assert.Equal(output, "mirror.example.com/my/app@"+digest)
		})

		it("fails for invalid mirrors", func() {
			_, _, err := name.TranslateRegistry("ruby:3.3", map[string]string{"*": "Not A Mirror"})
			assert.ErrorContains(err, "could not parse reference")
		})
	})
}
