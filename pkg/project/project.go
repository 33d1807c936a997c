package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/config"
	v01 "github.com/buildpacks/stager/pkg/project/v01"
)

const defaultSchemaVersion = "0.1"

// DescriptorNames lists the file names searched for in a project directory, in order.
var DescriptorNames = []string{"stager.toml", "stager.yaml", "stager.yml"}

type schema interface {
	ApplicationsFromToml(contents string) ([]*config.Application, error)
	ApplicationsFromYaml(contents string) ([]*config.Application, error)
}

var supportedSchemas = map[string]schema{
	"0.1": v01.Descriptor{},
}

type Descriptor struct {
	SchemaVersion *semver.Version
	Applications  []*config.Application
}

// Application returns the application with the given name.
func (d Descriptor) Application(appName string) (*config.Application, bool) {
	for _, app := range d.Applications {
		if app.Name == appName {
			return app, true
		}
	}
	return nil, false
}

type versionDescriptor struct {
	Project struct {
		Version string `toml:"schema-version" yaml:"schema-version"`
	} `toml:"_" yaml:"_"`
}

// FindDescriptor returns the path of the project descriptor in dir.
func FindDescriptor(dir string) (string, error) {
	for _, n := range DescriptorNames {
		p := filepath.Join(dir, n)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.Errorf("no project descriptor found in %s, expected one of %s", style.Symbol(dir), strings.Join(DescriptorNames, ", "))
}

func ReadProjectDescriptor(pathToFile string) (Descriptor, error) {
	contents, err := os.ReadFile(filepath.Clean(pathToFile))
	if err != nil {
		return Descriptor{}, err
	}

	isYaml := false
	switch filepath.Ext(pathToFile) {
	case ".toml":
	case ".yaml", ".yml":
		isYaml = true
	default:
		return Descriptor{}, errors.Errorf("unsupported project descriptor format %s", style.Symbol(filepath.Base(pathToFile)))
	}

	var vd versionDescriptor
	if isYaml {
		err = yaml.Unmarshal(contents, &vd)
	} else {
		_, err = toml.Decode(string(contents), &vd)
	}
	if err != nil {
		return Descriptor{}, errors.Wrap(err, "parsing schema version")
	}

	version := vd.Project.Version
	if version == "" {
		version = defaultSchemaVersion
	}
	schemaVersion, err := semver.NewVersion(version)
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "parsing schema version %s", style.Symbol(version))
	}
	// patch releases of a schema share its decoder
	s, ok := supportedSchemas[fmt.Sprintf("%d.%d", schemaVersion.Major(), schemaVersion.Minor())]
	if !ok {
		return Descriptor{}, errors.Errorf("unknown project descriptor schema version %s", style.Symbol(version))
	}

	var apps []*config.Application
	if isYaml {
		apps, err = s.ApplicationsFromYaml(string(contents))
	} else {
		apps, err = s.ApplicationsFromToml(string(contents))
	}
	if err != nil {
		return Descriptor{}, errors.Wrapf(err, "reading %s", style.Symbol(filepath.Base(pathToFile)))
	}

	descriptor := Descriptor{SchemaVersion: schemaVersion, Applications: apps}
	return descriptor, validate(descriptor)
}

func validate(d Descriptor) error {
	if len(d.Applications) == 0 {
		return errors.New("project descriptor must define at least one image")
	}

	seen := map[string]bool{}
	for _, app := range d.Applications {
		if err := app.Validate(); err != nil {
			return err
		}
		if seen[app.Name] {
			return errors.Errorf("image %s is defined more than once", style.Symbol(app.Name))
		}
		seen[app.Name] = true

		if _, err := name.ParseReference(app.From, name.WeakValidation); err != nil {
			return errors.Wrapf(err, "invalid base image %s for image %s", style.Symbol(app.From), style.Symbol(app.Name))
		}
		if _, err := name.NewRepository(app.Name, name.WeakValidation); err != nil {
			return errors.Wrapf(err, "invalid image name %s", style.Symbol(app.Name))
		}
	}
	return nil
}
