package signature

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/buildpacks/stager/internal/stringset"
	"github.com/buildpacks/stager/internal/style"
)

// Calculator resolves dependencies to content checksums. File digests are cached for
// the lifetime of the Calculator, which should not outlive one build run.
type Calculator struct {
	mu    sync.Mutex
	files map[string]digest.Digest
}

func NewCalculator() *Calculator {
	return &Calculator{
		files: map[string]digest.Digest{},
	}
}

// Checksum digests the resolved content of deps, in order.
func (c *Calculator) Checksum(deps []Dependency) (string, error) {
	digester := digest.Canonical.Digester()
	h := digester.Hash()

	for _, dep := range deps {
		writeFields(h, string(dep.Kind), dep.Artifact, dep.Name, dep.Value)
		switch dep.Kind {
		case KindValue:
			continue
		case KindFiles:
			patterns := stringset.Unique(dep.Patterns)
			writeFields(h, patterns...)
			if err := c.writeTree(h, dep.Root, Matcher(patterns, nil)); err != nil {
				return "", err
			}
		case KindTree:
			writeFields(h, dep.Include...)
			writeFields(h, dep.Exclude...)
			if err := c.writeTree(h, dep.Root, Matcher(dep.Include, dep.Exclude)); err != nil {
				return "", err
			}
		default:
			return "", errors.Errorf("unknown dependency kind %s", style.Symbol(string(dep.Kind)))
		}
	}

	return digester.Digest().Encoded(), nil
}

// Matcher returns a predicate over slash separated relative paths. A path matches when it
// matches one of include (or include is empty) and none of exclude.
func Matcher(include, exclude []string) func(string) bool {
	var in, ex *ignore.GitIgnore
	if len(include) > 0 {
		in = ignore.CompileIgnoreLines(include...)
	}
	if len(exclude) > 0 {
		ex = ignore.CompileIgnoreLines(exclude...)
	}

	return func(path string) bool {
		if in != nil && !in.MatchesPath(path) {
			return false
		}
		if ex != nil && ex.MatchesPath(path) {
			return false
		}
		return true
	}
}

func (c *Calculator) writeTree(w io.Writer, root string, match func(string) bool) error {
	files, err := matchingFiles(root, match)
	if err != nil {
		return err
	}

	for _, rel := range files {
		d, err := c.fileDigest(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		writeFields(w, rel, d.String())
	}
	return nil
}

func (c *Calculator) fileDigest(path string) (digest.Digest, error) {
	c.mu.Lock()
	d, ok := c.files[path]
	c.mu.Unlock()
	if ok {
		return d, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", style.Symbol(path))
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return "", errors.Wrapf(err, "reading link %s", style.Symbol(path))
		}
		d = digest.FromString("symlink:" + target)
	} else {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return "", errors.Wrapf(err, "opening %s", style.Symbol(path))
		}
		d, err = digest.Canonical.FromReader(f)
		f.Close()
		if err != nil {
			return "", errors.Wrapf(err, "hashing %s", style.Symbol(path))
		}
	}

	c.mu.Lock()
	c.files[path] = d
	c.mu.Unlock()
	return d, nil
}

// matchingFiles lists the files under root accepted by match, as sorted slash separated
// paths. A missing root has no files.
func matchingFiles(root string, match func(string) bool) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", style.Symbol(root))
	}

	sort.Strings(files)
	return files, nil
}

func writeFields(w io.Writer, fields ...string) {
	for _, f := range fields {
		_, _ = io.WriteString(w, f)
		_, _ = w.Write([]byte{0})
	}
	_, _ = w.Write([]byte{'\n'})
}
