package build

import (
	"context"
	"io"

	dcontainer "github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/container"
)

// Phase runs one container from ctrConf and commits the result.
type Phase struct {
	name          string
	infoWriter    io.Writer
	errorWriter   io.Writer
	docker        DockerClient
	ctrConf       *dcontainer.Config
	hostConf      *dcontainer.HostConfig
	commitOpts    dcontainer.CommitOptions
	createdCtrIDs []string
}

func (p *Phase) Run(ctx context.Context) (string, error) {
	ctrID, err := p.createContainer(ctx)
	if err != nil {
		return "", err
	}

	if err := container.Run(ctx, p.docker, ctrID, p.infoWriter, p.errorWriter); err != nil {
		return "", errors.Wrapf(err, "running %s", p.name)
	}

	resp, err := p.docker.ContainerCommit(ctx, ctrID, p.commitOpts)
	if err != nil {
		return "", errors.Wrapf(err, "committing %s", p.name)
	}

	return resp.ID, nil
}

func (p *Phase) createContainer(ctx context.Context) (string, error) {
	ctr, err := p.docker.ContainerCreate(ctx, p.ctrConf, p.hostConf, nil, nil, "")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create '%s' container", p.name)
	}

	p.createdCtrIDs = append(p.createdCtrIDs, ctr.ID)
	return ctr.ID, nil
}

func (p *Phase) Cleanup() error {
	var err error
	for _, ctrID := range p.createdCtrIDs {
		if rmErr := p.docker.ContainerRemove(context.Background(), ctrID, dcontainer.RemoveOptions{Force: true}); rmErr != nil {
			err = rmErr
		}
	}
	return err
}
