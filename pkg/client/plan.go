package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/internal/stage"
	"github.com/buildpacks/stager/internal/style"
)

type PlanOptions struct {
	ProjectOptions

	// CheckCache looks up whether the image of each stage already exists.
	CheckCache bool

	// Repository prefixes the tags of the application images, as in BuildOptions. When
	// CompareExported is set, the stages of the image under that tag are compared.
	Repository string

	// CompareExported reports the stages that changed since the application image was
	// last exported.
	CompareExported bool
}

type StagePlan struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	Signature    string   `json:"signature" yaml:"signature" toml:"signature"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	Empty        bool     `json:"empty" yaml:"empty" toml:"empty"`
	Cached       bool     `json:"cached" yaml:"cached" toml:"cached"`
	Dependencies []string `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

type ApplicationPlan struct {
	Name      string      `json:"name" yaml:"name" toml:"name"`
	BaseImage string      `json:"from" yaml:"from" toml:"from"`
	Tag       string      `json:"tag" yaml:"tag" toml:"tag"`
	Stages    []StagePlan `json:"stages" yaml:"stages" toml:"stages"`
	// Stale names the stages that would be rebuilt compared to the exported image.
	Stale []string `json:"stale,omitempty" yaml:"stale,omitempty" toml:"stale,omitempty"`
}

// Plan calculates the stages of every selected application without building them.
func (c *Client) Plan(ctx context.Context, opts PlanOptions) ([]ApplicationPlan, error) {
	projectDir, apps, err := c.loadProject(opts.ProjectOptions)
	if err != nil {
		return nil, err
	}

	s := newSession(projectDir, c.stagesRepo)

	var plans []ApplicationPlan
	for _, cfg := range apps {
		plan, err := c.planApplication(ctx, s.application(cfg), opts)
		if err != nil {
			return nil, errors.Wrapf(err, "planning image %s", style.Symbol(cfg.Name))
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (c *Client) planApplication(ctx context.Context, app *application, opts PlanOptions) (ApplicationPlan, error) {
	plan := ApplicationPlan{
		Name:      app.Name(),
		BaseImage: app.BaseImage(),
		Tag:       applicationTag(opts.Repository, app.Name()),
	}

	pipeline := stage.NewPipeline(app)
	for _, s := range pipeline.Visible() {
		stagePlan, err := c.planStage(ctx, s, opts.CheckCache)
		if err != nil {
			return ApplicationPlan{}, err
		}
		plan.Stages = append(plan.Stages, stagePlan)
	}

	if opts.CompareExported {
		previous, ok, err := c.exporter.Records(ctx, plan.Tag)
		if err != nil {
			return ApplicationPlan{}, err
		}
		current, err := pipeline.Records()
		if err != nil {
			return ApplicationPlan{}, err
		}
		if ok {
			plan.Stale = signature.Stale(previous, current)
		} else {
			for _, r := range current {
				plan.Stale = append(plan.Stale, r.Name)
			}
		}
	}

	return plan, nil
}

func (c *Client) planStage(ctx context.Context, s stage.Stage, checkCache bool) (StagePlan, error) {
	sig, err := s.Signature()
	if err != nil {
		return StagePlan{}, err
	}

	deps, err := s.Dependencies()
	if err != nil {
		return StagePlan{}, err
	}

	plan := StagePlan{
		Name:         s.Name().String(),
		Signature:    sig,
		Empty:        s.IsEmpty(),
		Dependencies: []string{},
	}
	for _, d := range deps {
		plan.Dependencies = append(plan.Dependencies, d.String())
	}

	if plan.Empty {
		return plan, nil
	}

	img, err := s.Image(ctx)
	if err != nil {
		return StagePlan{}, err
	}
	plan.Image = img.Name()

	if checkCache {
		if plan.Cached, err = c.backend.Exists(ctx, plan.Image); err != nil {
			return StagePlan{}, err
		}
	}
	return plan, nil
}
