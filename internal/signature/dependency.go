package signature

import (
	"fmt"
	"strings"
)

type Kind string

const (
	// KindFiles depends on the files of an artifact matching glob patterns.
	KindFiles Kind = "files"
	// KindTree depends on every file of an artifact, filtered by its include and exclude paths.
	KindTree Kind = "tree"
	// KindValue depends on a literal value.
	KindValue Kind = "value"
)

// Dependency is one input to a stage signature.
type Dependency struct {
	Kind     Kind     `json:"kind" yaml:"kind" toml:"kind"`
	Artifact string   `json:"artifact,omitempty" yaml:"artifact,omitempty" toml:"artifact,omitempty"`
	Root     string   `json:"-" yaml:"-" toml:"-"`
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty" toml:"patterns,omitempty"`
	Include  []string `json:"include,omitempty" yaml:"include,omitempty" toml:"include,omitempty"`
	Exclude  []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// Files returns a dependency on the files under root matching patterns.
func Files(artifact, root string, patterns []string) Dependency {
	return Dependency{
		Kind:     KindFiles,
		Artifact: artifact,
		Root:     root,
		Patterns: append([]string{}, patterns...),
	}
}

// Tree returns a dependency on every file under root selected by include and exclude.
func Tree(artifact, root string, include, exclude []string) Dependency {
	return Dependency{
		Kind:     KindTree,
		Artifact: artifact,
		Root:     root,
		Include:  append([]string{}, include...),
		Exclude:  append([]string{}, exclude...),
	}
}

func Value(name, value string) Dependency {
	return Dependency{
		Kind:  KindValue,
		Name:  name,
		Value: value,
	}
}

func (d Dependency) String() string {
	switch d.Kind {
	case KindFiles:
		return fmt.Sprintf("%s:%s", d.Artifact, strings.Join(d.Patterns, ","))
	case KindTree:
		s := d.Artifact
		if len(d.Include) > 0 {
			s += " include=" + strings.Join(d.Include, ",")
		}
		if len(d.Exclude) > 0 {
			s += " exclude=" + strings.Join(d.Exclude, ",")
		}
		return s
	default:
		return fmt.Sprintf("%s=%s", d.Name, d.Value)
	}
}
