package client

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/buildpacks/stager/internal/build"
	"github.com/buildpacks/stager/internal/stage"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/config"
	stagererrors "github.com/buildpacks/stager/pkg/errors"
)

// BuildOptions define the project, the images to build and how to build them.
type BuildOptions struct {
	ProjectOptions

	// PullPolicy controls how base images are made available to the daemon.
	PullPolicy config.PullPolicy

	// NoCache rebuilds every stage even when its image already exists.
	NoCache bool

	// Repository prefixes the tags of the application images. Images are tagged with
	// their name when empty.
	Repository string
}

type StageResult struct {
	Name      string
	Signature string
	Image     string
	Empty     bool
	Cached    bool
}

type BuildResult struct {
	Application string
	Tag         string
	ImageID     string
	Size        int64
	Duration    time.Duration
	Stages      []StageResult
}

// Build builds every selected application of the project. Applications are built in
// parallel, stages of one application in order.
func (c *Client) Build(ctx context.Context, opts BuildOptions) ([]BuildResult, error) {
	projectDir, apps, err := c.loadProject(opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	s := newSession(projectDir, c.stagesRepo)
	results := make([]BuildResult, len(apps))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i, cfg := range apps {
		i, app := i, s.application(cfg)
		g.Go(func() error {
			result, err := c.buildApplication(groupCtx, app, opts)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) buildApplication(ctx context.Context, app *application, opts BuildOptions) (BuildResult, error) {
	start := time.Now()
	result := BuildResult{Application: app.Name(), Tag: applicationTag(opts.Repository, app.Name())}

	c.logger.Info(style.Step("Building image %s", style.Symbol(app.Name())))
	if err := c.backend.Pull(ctx, app.BaseImage(), opts.PullPolicy); err != nil {
		return BuildResult{}, errors.Wrapf(err, "fetching base image of %s", style.Symbol(app.Name()))
	}

	pipeline := stage.NewPipeline(app)
	for _, s := range pipeline.Stages() {
		stageResult, err := c.buildStage(ctx, app, s, opts.NoCache)
		if err != nil {
			return BuildResult{}, &stagererrors.StageError{Application: app.Name(), Stage: s.Name().String(), Err: err}
		}
		if !s.IsAuxiliary() {
			result.Stages = append(result.Stages, stageResult)
		}
	}

	last, err := pipeline.Last().Image(ctx)
	if err != nil {
		return BuildResult{}, err
	}
	records, err := pipeline.Records()
	if err != nil {
		return BuildResult{}, err
	}
	labels, err := build.ExportLabels(app.Name(), records)
	if err != nil {
		return BuildResult{}, err
	}

	exported, err := c.exporter.Export(ctx, last.Name(), result.Tag, labels)
	if err != nil {
		return BuildResult{}, errors.Wrapf(err, "exporting image %s", style.Symbol(result.Tag))
	}

	result.ImageID = exported.ID
	result.Size = exported.Size
	result.Duration = time.Since(start)
	c.logger.Infof("Successfully built image %s (%s, %s)",
		style.Symbol(result.Tag),
		humanize.Bytes(uint64(result.Size)),
		result.Duration.Round(time.Millisecond),
	)
	return result, nil
}

func (c *Client) buildStage(ctx context.Context, app *application, s stage.Stage, noCache bool) (StageResult, error) {
	result := StageResult{Name: s.Name().String()}

	sig, err := s.Signature()
	if err != nil {
		return StageResult{}, err
	}
	result.Signature = sig

	if s.IsEmpty() {
		result.Empty = true
		return result, nil
	}

	img, err := s.Image(ctx)
	if err != nil {
		return StageResult{}, err
	}
	result.Image = img.Name()

	if !noCache {
		exists, err := c.backend.Exists(ctx, img.Name())
		if err != nil {
			return StageResult{}, err
		}
		if exists {
			c.logger.Infof("%s %s %s", style.Prefix(app.Name()), s.Name(), style.Cached("(cached)"))
			result.Cached = true
			return result, nil
		}
	}

	c.logger.Infof("%s %s", style.Prefix(app.Name()), s.Name())
	if err := c.backend.Commit(ctx, s.Name().String(), img); err != nil {
		return StageResult{}, err
	}
	return result, nil
}

func applicationTag(repository, appName string) string {
	if repository == "" {
		return appName
	}
	return repository + "/" + appName
}
