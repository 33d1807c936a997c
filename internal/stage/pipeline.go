package stage

import (
	"github.com/buildpacks/stager/internal/signature"
)

// Constructor creates the nodes one pipeline position contributes, in build order.
type Constructor func(app Application) []Stage

// DefaultConstructors builds the standard pipeline.
var DefaultConstructors = []Constructor{
	NewFrom,
	NewBeforeInstall,
	NewGAArchive,
	NewInstall,
	NewBeforeSetup,
	NewSetup,
	NewBuildArtifact,
	NewGALatestPatch,
	NewDockerInstructions,
}

// Pipeline is the chain of stages of one application.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(app Application) *Pipeline {
	return Assemble(app, DefaultConstructors...)
}

// Assemble links the nodes returned by constructors, each to the one created before it.
func Assemble(app Application, constructors ...Constructor) *Pipeline {
	p := &Pipeline{}

	var prev Stage
	for _, construct := range constructors {
		for _, s := range construct(app) {
			s.link(prev)
			p.stages = append(p.stages, s)
			prev = s
		}
	}

	return p
}

// Stages returns every stage, auxiliary ones included, in build order.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage{}, p.stages...)
}

// Visible returns the stages shown to users.
func (p *Pipeline) Visible() []Stage {
	var visible []Stage
	for _, s := range p.stages {
		if !s.IsAuxiliary() {
			visible = append(visible, s)
		}
	}
	return visible
}

func (p *Pipeline) Last() Stage {
	if len(p.stages) == 0 {
		return nil
	}
	return p.stages[len(p.stages)-1]
}

// Get returns the stage with name, or nil.
func (p *Pipeline) Get(name Name) Stage {
	for _, s := range p.stages {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// Records returns the signatures of the visible stages.
func (p *Pipeline) Records() ([]signature.Record, error) {
	var records []signature.Record
	for _, s := range p.Visible() {
		sig, err := s.Signature()
		if err != nil {
			return nil, err
		}
		records = append(records, signature.Record{Name: s.Name().String(), Signature: sig})
	}
	return records, nil
}
