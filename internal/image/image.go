package image

import (
	"sync"
)

// Image describes a stage image: a parent plus the commands, artifacts and config
// changes that produce the next layer.
type Image interface {
	Name() string
	Parent() Image
	// IsBase reports whether the image is a base image that is pulled rather than built.
	IsBase() bool

	AddCommands(commands ...string)
	AddArtifact(artifact Artifact)
	AddChanges(changes ...string)

	Commands() []string
	Artifacts() []Artifact
	Changes() []string
}

// Artifact is host content copied into an image.
type Artifact struct {
	Source  string
	To      string
	Include []string
	Exclude []string
	// Patterns further restricts the copied files when not empty.
	Patterns []string
	Owner    string
	Group    string
}

type StageImage struct {
	mu        sync.Mutex
	name      string
	parent    Image
	commands  []string
	artifacts []Artifact
	changes   []string
}

func NewBaseImage(ref string) *StageImage {
	return &StageImage{name: ref}
}

func NewStageImage(name string, parent Image) *StageImage {
	return &StageImage{name: name, parent: parent}
}

func (i *StageImage) Name() string {
	return i.name
}

func (i *StageImage) Parent() Image {
	if i.parent == nil {
		return nil
	}
	return i.parent
}

func (i *StageImage) IsBase() bool {
	return i.parent == nil
}

func (i *StageImage) AddCommands(commands ...string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.commands = append(i.commands, commands...)
}

func (i *StageImage) AddArtifact(artifact Artifact) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.artifacts = append(i.artifacts, artifact)
}

func (i *StageImage) AddChanges(changes ...string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.changes = append(i.changes, changes...)
}

func (i *StageImage) Commands() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string{}, i.commands...)
}

func (i *StageImage) Artifacts() []Artifact {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]Artifact{}, i.artifacts...)
}

func (i *StageImage) Changes() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string{}, i.changes...)
}
