package client

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/config"
	"github.com/buildpacks/stager/pkg/project"
)

// ProjectOptions locate a project and select its images.
type ProjectOptions struct {
	// ProjectDir is the directory artifacts are read from. Defaults to the working directory.
	ProjectDir string

	// DescriptorPath is the project descriptor, relative to ProjectDir unless absolute.
	// Defaults to the first of project.DescriptorNames found in ProjectDir.
	DescriptorPath string

	// Images restricts the operation to the named images. All images are selected when empty.
	Images []string
}

func (c *Client) loadProject(opts ProjectOptions) (string, []*config.Application, error) {
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", nil, errors.Wrapf(err, "resolving project directory %s", style.Symbol(opts.ProjectDir))
	}

	descriptorPath := opts.DescriptorPath
	switch {
	case descriptorPath == "":
		if descriptorPath, err = project.FindDescriptor(projectDir); err != nil {
			return "", nil, err
		}
	case !filepath.IsAbs(descriptorPath):
		descriptorPath = filepath.Join(projectDir, descriptorPath)
	}
	c.logger.Debugf("Using project descriptor located at %s", style.Symbol(descriptorPath))

	descriptor, err := project.ReadProjectDescriptor(descriptorPath)
	if err != nil {
		return "", nil, err
	}

	if len(opts.Images) == 0 {
		return projectDir, descriptor.Applications, nil
	}

	var apps []*config.Application
	for _, n := range opts.Images {
		app, ok := descriptor.Application(n)
		if !ok {
			return "", nil, errors.Errorf("image %s is not defined in %s", style.Symbol(n), style.Symbol(filepath.Base(descriptorPath)))
		}
		apps = append(apps, app)
	}
	return projectDir, apps, nil
}
