package build_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/errdefs"
	"github.com/golang/mock/gomock"
	"github.com/heroku/color"
	"github.com/pkg/errors"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/stager/internal/build"
	"github.com/buildpacks/stager/pkg/config"
	"github.com/buildpacks/stager/pkg/logging"
	h "github.com/buildpacks/stager/testhelpers"
	"github.com/buildpacks/stager/testmocks"
)

func TestFetcher(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Fetcher", testFetcher, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testFetcher(t *testing.T, when spec.G, it spec.S) {
	var (
		mockController *gomock.Controller
		mockDocker     *testmocks.MockDockerClient
		outBuf         bytes.Buffer
		subject        *build.Fetcher
		ctx            context.Context
		notFound       error
	)

	it.Before(func() {
		mockController = gomock.NewController(t)
		mockDocker = testmocks.NewMockDockerClient(mockController)
		subject = build.NewFetcher(logging.NewLogWithWriters(&outBuf, &outBuf), mockDocker)
		ctx = context.TODO()
		notFound = errdefs.NotFound(errors.New("no such image"))
	})

	it.After(func() {
		mockController.Finish()
	})

	pullStream := func() io.ReadCloser {
		return io.NopCloser(strings.NewReader(`{"status":"Pull complete","id":"abc"}` + "\n"))
	}

	when("pull policy is never", func() {
		it("does not pull a missing image", func() {
			mockDocker.EXPECT().ImageInspectWithRaw(ctx, "alpine:3.19").Return(types.ImageInspect{}, nil, notFound)

			err := subject.Fetch(ctx, "alpine:3.19", config.PullNever)
			h.AssertTrue(t, errors.Is(err, build.ErrNotFound))
		})
	})

	when("pull policy is if-not-present", func() {
		it("uses the image on the daemon", func() {
			mockDocker.EXPECT().ImageInspectWithRaw(ctx, "alpine:3.19").Return(types.ImageInspect{ID: "sha256:1"}, nil, nil)

			h.AssertNil(t, subject.Fetch(ctx, "alpine:3.19", config.PullIfNotPresent))
		})

		it("pulls a missing image", func() {
			gomock.InOrder(
				mockDocker.EXPECT().ImageInspectWithRaw(ctx, "alpine:3.19").Return(types.ImageInspect{}, nil, notFound),
				mockDocker.EXPECT().ImagePull(ctx, "alpine:3.19", gomock.Any()).Return(pullStream(), nil),
				mockDocker.EXPECT().ImageInspectWithRaw(ctx, "alpine:3.19").Return(types.ImageInspect{ID: "sha256:1"}, nil, nil),
			)

			h.AssertNil(t, subject.Fetch(ctx, "alpine:3.19", config.PullIfNotPresent))
			h.AssertContains(t, outBuf.String(), "Pull complete")
		})
	})

	when("pull policy is always", func() {
		it("pulls the image", func() {
			gomock.InOrder(
				mockDocker.EXPECT().ImagePull(ctx, "alpine:3.19", gomock.Any()).Return(pullStream(), nil),
				mockDocker.EXPECT().ImageInspectWithRaw(ctx, "alpine:3.19").Return(types.ImageInspect{ID: "sha256:1"}, nil, nil),
			)

			h.AssertNil(t, subject.Fetch(ctx, "alpine:3.19", config.PullAlways))
		})

		it("reports images missing from the registry", func() {
			mockDocker.EXPECT().ImagePull(ctx, "alpine:3.19", gomock.Any()).Return(nil, notFound)

			err := subject.Fetch(ctx, "alpine:3.19", config.PullAlways)
			h.AssertError(t, err, "image 'alpine:3.19' does not exist in the registry")
		})
	})

	when("registry mirrors are configured", func() {
		it("pulls from the mirror and tags the original name", func() {
			subject = build.NewFetcher(
				logging.NewLogWithWriters(&outBuf, &outBuf),
				mockDocker,
				build.WithRegistryMirrors(map[string]string{"index.docker.io": "mirror.example.com"}),
			)

			gomock.InOrder(
				mockDocker.EXPECT().ImagePull(ctx, "mirror.example.com/library/alpine:3.19", gomock.Any()).Return(pullStream(), nil),
				mockDocker.EXPECT().ImageTag(ctx, "mirror.example.com/library/alpine:3.19", "alpine:3.19").Return(nil),
				mockDocker.EXPECT().ImageInspectWithRaw(ctx, "alpine:3.19").Return(types.ImageInspect{ID: "sha256:1"}, nil, nil),
			)

			h.AssertNil(t, subject.Fetch(ctx, "alpine:3.19", config.PullAlways))
		})
	})
}
