package gitrepo

import (
	"regexp"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/style"
)

// ResetCommitRegexp matches commit messages that force a rebuild of the git archive.
var ResetCommitRegexp = regexp.MustCompile(`(\[stager reset\])|(\[reset stager\])`)

// ResetCommits looks up reset commits and caches them by directory.
type ResetCommits struct {
	mu    sync.Mutex
	cache map[string]string
}

func NewResetCommits() *ResetCommits {
	return &ResetCommits{cache: map[string]string{}}
}

// Lookup returns the hash of the most recent commit reachable from HEAD whose message
// matches ResetCommitRegexp, in the repository containing dir. It returns an empty
// string when dir is not in a repository, the repository has no commits or no commit
// matches.
func (r *ResetCommits) Lookup(dir string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if commit, ok := r.cache[dir]; ok {
		return commit, nil
	}

	commit, err := resetCommit(dir)
	if err != nil {
		return "", err
	}

	r.cache[dir] = commit
	return commit, nil
}

func resetCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", errors.Wrapf(err, "opening git repository at %s", style.Symbol(dir))
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", errors.Wrap(err, "resolving HEAD")
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", errors.Wrap(err, "reading git log")
	}
	defer iter.Close()

	var found string
	err = iter.ForEach(func(c *object.Commit) error {
		if ResetCommitRegexp.MatchString(c.Message) {
			found = c.Hash.String()
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "walking git log")
	}

	return found, nil
}
