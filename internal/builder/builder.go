package builder

import (
	"context"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/buildpacks/stager/internal/image"
	"github.com/buildpacks/stager/pkg/config"
)

// Shell registers one hook per stage from the shell commands of an application.
type Shell struct {
	config config.Shell
}

func NewShell(cfg config.Shell) *Shell {
	return &Shell{config: cfg}
}

func (s *Shell) HasHook(stage string) bool {
	return len(s.config.Commands(stage)) > 0
}

// HookChecksum digests the commands of the stage hook. Stages without a hook have an
// empty checksum.
func (s *Shell) HookChecksum(stage string) string {
	commands := s.config.Commands(stage)
	if len(commands) == 0 {
		return ""
	}
	return digest.FromString(strings.Join(commands, "\n")).Encoded()
}

func (s *Shell) ApplyHook(_ context.Context, stage string, img image.Image) error {
	img.AddCommands(s.config.Commands(stage)...)
	return nil
}

// None registers no hooks.
type None struct{}

func (None) HasHook(string) bool { return false }

func (None) HookChecksum(string) string { return "" }

func (None) ApplyHook(context.Context, string, image.Image) error { return nil }
