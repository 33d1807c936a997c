package build

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/pkg/errors"

	iname "github.com/buildpacks/stager/internal/name"
	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/config"
	"github.com/buildpacks/stager/pkg/logging"
)

var ErrNotFound = errors.New("not found")

// Fetcher makes base images available on the daemon.
type Fetcher struct {
	docker          DockerClient
	logger          logging.Logger
	keychain        authn.Keychain
	registryMirrors map[string]string
}

type FetcherOption func(*Fetcher)

// WithRegistryMirrors pulls images through mirrors, keyed by registry. The "*" key
// mirrors every registry.
func WithRegistryMirrors(registryMirrors map[string]string) FetcherOption {
	return func(f *Fetcher) {
		f.registryMirrors = registryMirrors
	}
}

func NewFetcher(logger logging.Logger, docker DockerClient, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		logger:   logger,
		docker:   docker,
		keychain: authn.DefaultKeychain,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, name string, pullPolicy config.PullPolicy) error {
	switch pullPolicy {
	case config.PullNever:
		return f.checkDaemonImage(ctx, name)
	case config.PullIfNotPresent:
		err := f.checkDaemonImage(ctx, name)
		if err == nil || !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	pullName, mirrored, err := iname.TranslateRegistry(name, f.registryMirrors)
	if err != nil {
		return errors.Wrapf(err, "translating image %s to a registry mirror", style.Symbol(name))
	}

	f.logger.Debugf("Pulling image %s", style.Symbol(pullName))
	if err := f.pullImage(ctx, pullName); err != nil {
		return err
	}

	if mirrored {
		if err := f.docker.ImageTag(ctx, pullName, name); err != nil {
			return errors.Wrapf(err, "tagging image %s as %s", style.Symbol(pullName), style.Symbol(name))
		}
	}

	return f.checkDaemonImage(ctx, name)
}

func (f *Fetcher) checkDaemonImage(ctx context.Context, name string) error {
	_, _, err := f.docker.ImageInspectWithRaw(ctx, name)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return errors.Wrapf(ErrNotFound, "image %s does not exist on the daemon", style.Symbol(name))
		}
		return errors.Wrapf(err, "inspecting image %s", style.Symbol(name))
	}
	return nil
}

func (f *Fetcher) pullImage(ctx context.Context, imageID string) error {
	regAuth, err := f.registryAuth(imageID)
	if err != nil {
		return err
	}

	rc, err := f.docker.ImagePull(ctx, imageID, image.PullOptions{RegistryAuth: regAuth})
	if err != nil {
		if errdefs.IsNotFound(err) {
			return errors.Wrapf(ErrNotFound, "image %s does not exist in the registry", style.Symbol(imageID))
		}

		return errors.Wrapf(err, "pulling image %s", style.Symbol(imageID))
	}
	defer rc.Close()

	writer := logging.GetWriterForLevel(f.logger, logging.InfoLevel)
	termFd, isTerm := logging.IsTerminal(writer)

	return jsonmessage.DisplayJSONMessagesStream(rc, &colorizedWriter{writer}, termFd, isTerm, nil)
}

func (f *Fetcher) registryAuth(ref string) (string, error) {
	parsed, err := name.ParseReference(ref, name.WeakValidation)
	if err != nil {
		return "", errors.Wrapf(err, "parsing image reference %s", style.Symbol(ref))
	}

	authenticator, err := f.keychain.Resolve(parsed.Context().Registry)
	if err != nil {
		return "", errors.Wrapf(err, "resolve auth for ref %s", ref)
	}
	authConfig, err := authenticator.Authorization()
	if err != nil {
		return "", err
	}

	dataJSON, err := json.Marshal(authConfig)
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(dataJSON), nil
}

type colorizedWriter struct {
	writer io.Writer
}

type colorFunc = func(string, ...interface{}) string

func (w *colorizedWriter) Write(p []byte) (n int, err error) {
	msg := string(p)
	colorizers := map[string]colorFunc{
		"Waiting":           style.Waiting,
		"Pulling fs layer":  style.Waiting,
		"Downloading":       style.Working,
		"Download complete": style.Working,
		"Extracting":        style.Working,
		"Pull complete":     style.Complete,
		"Already exists":    style.Complete,
		"=":                 style.ProgressBar,
		">":                 style.ProgressBar,
	}
	for pattern, colorize := range colorizers {
		msg = strings.ReplaceAll(msg, pattern, colorize(pattern))
	}
	_, err = w.writer.Write([]byte(msg))
	return len(p), err
}
