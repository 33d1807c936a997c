package build

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	dcontainer "github.com/docker/docker/api/types/container"
	"github.com/docker/docker/errdefs"
	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/archive"
	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/config"
	"github.com/buildpacks/stager/pkg/logging"
)

const (
	// StageLabel names the stage that produced an image.
	StageLabel = "io.buildpacks.stager.stage"

	artifactsMountPath = "/.stager/artifacts"
)

// DockerBackend builds stage images with the Docker daemon. Each stage runs in one
// container whose file system is committed as the stage image.
type DockerBackend struct {
	docker      DockerClient
	logger      logging.Logger
	fetcher     *Fetcher
	fetcherOpts []FetcherOption
	tmpDir      string
}

type BackendOption func(*DockerBackend)

// WithTempDir sets the host directory for artifact archives. The directory must be
// reachable by the Docker daemon for bind mounts.
func WithTempDir(dir string) BackendOption {
	return func(b *DockerBackend) {
		b.tmpDir = dir
	}
}

// WithFetcherOptions configures how base images are pulled.
func WithFetcherOptions(opts ...FetcherOption) BackendOption {
	return func(b *DockerBackend) {
		b.fetcherOpts = append(b.fetcherOpts, opts...)
	}
}

func NewDockerBackend(logger logging.Logger, docker DockerClient, opts ...BackendOption) *DockerBackend {
	b := &DockerBackend{
		docker: docker,
		logger: logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.fetcher = NewFetcher(logger, docker, b.fetcherOpts...)
	return b
}

func (b *DockerBackend) Exists(ctx context.Context, name string) (bool, error) {
	_, _, err := b.docker.ImageInspectWithRaw(ctx, name)
	if err == nil {
		return true, nil
	}
	if errdefs.IsNotFound(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "inspecting image %s", style.Symbol(name))
}

func (b *DockerBackend) Pull(ctx context.Context, ref string, policy config.PullPolicy) error {
	return b.fetcher.Fetch(ctx, ref, policy)
}

func (b *DockerBackend) Commit(ctx context.Context, stage string, img image.Image) error {
	parent := img.Parent()
	if parent == nil {
		return errors.Errorf("image %s has no parent", style.Symbol(img.Name()))
	}

	commands := img.Commands()
	artifacts := img.Artifacts()
	changes := img.Changes()

	if len(commands) == 0 && len(artifacts) == 0 && len(changes) == 0 {
		b.logger.Debugf("Tagging %s as %s", style.Symbol(parent.Name()), style.Symbol(img.Name()))
		return errors.Wrapf(b.docker.ImageTag(ctx, parent.Name(), img.Name()), "tagging image %s", style.Symbol(img.Name()))
	}

	parentInspect, _, err := b.docker.ImageInspectWithRaw(ctx, parent.Name())
	if err != nil {
		return errors.Wrapf(err, "inspecting image %s", style.Symbol(parent.Name()))
	}

	artifactDir, err := os.MkdirTemp(b.tmpDir, "stager-artifacts")
	if err != nil {
		return errors.Wrap(err, "creating artifacts directory")
	}
	defer os.RemoveAll(artifactDir)

	script, err := prepareArtifacts(artifactDir, artifacts)
	if err != nil {
		return err
	}
	script = append(script, commands...)

	hostConf := &dcontainer.HostConfig{}
	if len(artifacts) > 0 {
		hostConf.Binds = []string{fmt.Sprintf("%s:%s:ro", artifactDir, artifactsMountPath)}
	}

	infoWriter := logging.NewPrefixWriter(logging.GetWriterForLevel(b.logger, logging.InfoLevel), stage)
	defer infoWriter.Close()
	errorWriter := logging.NewPrefixWriter(logging.GetWriterForLevel(b.logger, logging.ErrorLevel), stage)
	defer errorWriter.Close()

	phase := &Phase{
		name:        stage,
		infoWriter:  infoWriter,
		errorWriter: errorWriter,
		docker:      b.docker,
		ctrConf: &dcontainer.Config{
			Image:      parent.Name(),
			Entrypoint: []string{"/bin/sh", "-ec"},
			Cmd:        []string{strings.Join(script, "\n")},
			User:       "0",
			Labels:     map[string]string{StageLabel: stage},
		},
		hostConf: hostConf,
		commitOpts: dcontainer.CommitOptions{
			Reference: img.Name(),
			Changes:   changes,
			Config:    restoreConfig(parentInspect.Config),
		},
	}
	defer func() {
		if err := phase.Cleanup(); err != nil {
			b.logger.Debugf("Failed to remove %s container: %s", stage, err)
		}
	}()

	if _, err := phase.Run(ctx); err != nil {
		return err
	}
	return nil
}

// restoreConfig keeps the process configuration of the parent image instead of the one
// used to run the stage.
func restoreConfig(parent *dcontainer.Config) *dcontainer.Config {
	if parent == nil {
		return &dcontainer.Config{}
	}
	return &dcontainer.Config{
		Entrypoint: parent.Entrypoint,
		Cmd:        parent.Cmd,
		User:       parent.User,
	}
}

// prepareArtifacts archives each artifact into dir and returns the commands that extract
// them in the container.
func prepareArtifacts(dir string, artifacts []image.Artifact) ([]string, error) {
	var script []string
	for i, a := range artifacts {
		tarName := fmt.Sprintf("%d.tar", i)
		if err := archive.WriteDirToTarFile(filepath.Join(dir, tarName), a.Source, a.To, -1, -1, -1, artifactFilter(a)); err != nil {
			return nil, errors.Wrapf(err, "archiving artifact %s", style.Symbol(a.To))
		}

		script = append(script,
			"mkdir -p "+shellQuote(a.To),
			fmt.Sprintf("tar -xf %s -C /", shellQuote(path.Join(artifactsMountPath, tarName))),
		)
		if a.Owner != "" || a.Group != "" {
			script = append(script, fmt.Sprintf("chown -R %s %s", shellQuote(a.Owner+":"+a.Group), shellQuote(a.To)))
		}
	}
	return script, nil
}

func artifactFilter(a image.Artifact) archive.Filter {
	if len(a.Include) == 0 && len(a.Exclude) == 0 && len(a.Patterns) == 0 {
		return nil
	}
	selected := signature.Matcher(a.Include, a.Exclude)
	if len(a.Patterns) == 0 {
		return selected
	}
	patterns := signature.Matcher(a.Patterns, nil)
	return func(rel string) bool {
		return selected(rel) && patterns(rel)
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
