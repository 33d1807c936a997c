/*
Package client provides the functionality of stager as a library through a go api.

# Prerequisites

Building images requires a Docker daemon. Planning stages only reads the project.
*/
package client

import (
	"context"
	"os"

	dockerClient "github.com/docker/docker/client"
	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/build"
	iconfig "github.com/buildpacks/stager/internal/config"
	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/pkg/logging"
)

// ImageExporter publishes the last stage image of an application under the application tag.
type ImageExporter interface {
	Export(ctx context.Context, stageImage, tag string, labels map[string]string) (build.ExportResult, error)
	// Records returns the stage signatures of a previously exported application image.
	Records(ctx context.Context, tag string) ([]signature.Record, bool, error)
}

// Client builds the images described by a stager project.
// All settings on this object should be changed through Option functions.
type Client struct {
	logger   logging.Logger
	docker   dockerClient.CommonAPIClient
	backend  image.Backend
	exporter ImageExporter

	stagesRepo      string
	parallelism     int
	registryMirrors map[string]string
}

// Option is a type of function that mutate settings on the client.
type Option func(c *Client)

// WithLogger supply your own logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithDockerClient supply your own docker client.
func WithDockerClient(docker dockerClient.CommonAPIClient) Option {
	return func(c *Client) {
		c.docker = docker
	}
}

// WithBackend supply your own backend. A backend materializes stage images.
func WithBackend(backend image.Backend) Option {
	return func(c *Client) {
		c.backend = backend
	}
}

// WithExporter supply your own exporter.
func WithExporter(exporter ImageExporter) Option {
	return func(c *Client) {
		c.exporter = exporter
	}
}

// WithStagesRepo sets the repository that stage images are stored in.
func WithStagesRepo(repo string) Option {
	return func(c *Client) {
		c.stagesRepo = repo
	}
}

// WithParallelism sets how many applications are built at the same time.
func WithParallelism(n int) Option {
	return func(c *Client) {
		c.parallelism = n
	}
}

// WithRegistryMirrors sets mirrors to pull base images from.
func WithRegistryMirrors(registryMirrors map[string]string) Option {
	return func(c *Client) {
		c.registryMirrors = registryMirrors
	}
}

// NewClient allocates and returns a Client configured with the specified options.
func NewClient(opts ...Option) (*Client, error) {
	client := &Client{}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger == nil {
		client.logger = logging.NewLogWithWriters(os.Stdout, os.Stderr)
	}

	if client.stagesRepo == "" {
		client.stagesRepo = iconfig.DefaultStagesRepo
	}

	if client.parallelism <= 0 {
		client.parallelism = iconfig.Config{}.GetParallelism()
	}

	if client.docker == nil && (client.backend == nil || client.exporter == nil) {
		var err error
		client.docker, err = dockerClient.NewClientWithOpts(
			dockerClient.FromEnv,
			dockerClient.WithAPIVersionNegotiation(),
		)
		if err != nil {
			return nil, errors.Wrap(err, "creating docker client")
		}
	}

	if client.backend == nil {
		client.backend = build.NewDockerBackend(client.logger, client.docker,
			build.WithFetcherOptions(build.WithRegistryMirrors(client.registryMirrors)),
		)
	}

	if client.exporter == nil {
		client.exporter = build.NewExporter(client.docker)
	}

	return client, nil
}
