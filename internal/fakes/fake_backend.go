package fakes

import (
	"context"
	"sync"

	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/pkg/config"
)

// FakeBackend records pulled and committed images without building them.
type FakeBackend struct {
	mu      sync.Mutex
	images  map[string]image.Image
	pulled  []string
	commits []string
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{images: map[string]image.Image{}}
}

func (f *FakeBackend) Exists(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.images[name]
	return ok, nil
}

func (f *FakeBackend) Pull(_ context.Context, ref string, _ config.PullPolicy) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulled = append(f.pulled, ref)
	return nil
}

func (f *FakeBackend) Commit(_ context.Context, _ string, img image.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[img.Name()] = img
	f.commits = append(f.commits, img.Name())
	return nil
}

// Commits returns the names of committed images in commit order.
func (f *FakeBackend) Commits() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.commits...)
}

func (f *FakeBackend) Pulled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.pulled...)
}
