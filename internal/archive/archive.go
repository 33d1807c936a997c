package archive

import (
	"archive/tar"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var NormalizedDateTime time.Time

func init() {
	NormalizedDateTime = time.Date(1980, time.January, 1, 0, 0, 1, 0, time.UTC)
}

// Filter selects entries by their slash separated path relative to the source directory.
type Filter func(relPath string) bool

// ReadDirAsTar streams srcDir as a tar with entries rooted at basePath.
func ReadDirAsTar(srcDir, basePath string, uid, gid int, mode int64, filter Filter) io.ReadCloser {
	r, w := io.Pipe()
	go func() {
		var err error
		defer func() {
			w.CloseWithError(err)
		}()

		tw := tar.NewWriter(w)
		defer func() {
			// only close if no errors have occurred
			if err == nil {
				err = tw.Close()
			}
		}()

		err = WriteDirToTar(tw, srcDir, basePath, uid, gid, mode, filter)
	}()
	return r
}

// WriteDirToTar writes srcDir to tw with entries rooted at basePath. The .git directory
// is skipped. When filter is set, only the regular files and symlinks it accepts are
// written. A negative uid or gid keeps the owner of the source file, mode -1 keeps its mode.
func WriteDirToTar(tw *tar.Writer, srcDir, basePath string, uid, gid int, mode int64, filter Filter) error {
	basePath = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(basePath)), "/")

	return filepath.Walk(srcDir, func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if fi.Mode()&os.ModeSocket != 0 {
			return nil
		}

		relPath, err := filepath.Rel(srcDir, file)
		if err != nil {
			return err
		} else if relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if fi.IsDir() {
			if fi.Name() == ".git" {
				return filepath.SkipDir
			}
			if filter != nil {
				return nil
			}
		} else if filter != nil && !filter(relPath) {
			return nil
		}

		var header *tar.Header
		if fi.Mode()&os.ModeSymlink != 0 {
			target, err := os.Readlink(file)
			if err != nil {
				return err
			}

			header, err = tar.FileInfoHeader(fi, target)
			if err != nil {
				return err
			}
		} else {
			header, err = tar.FileInfoHeader(fi, fi.Name())
			if err != nil {
				return err
			}
		}

		header.Name = path.Join(basePath, relPath)
		finalizeHeader(header, uid, gid, mode)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if fi.Mode().IsRegular() {
			f, err := os.Open(filepath.Clean(file))
			if err != nil {
				return err
			}
			defer f.Close()

			if _, err := io.Copy(tw, f); err != nil {
				return err
			}
		}

		return nil
	})
}

// WriteDirToTarFile writes srcDir as a tar file at tarFile.
func WriteDirToTarFile(tarFile, srcDir, basePath string, uid, gid int, mode int64, filter Filter) error {
	fh, err := os.Create(filepath.Clean(tarFile))
	if err != nil {
		return errors.Wrap(err, "create file for tar")
	}
	defer fh.Close()

	tw := tar.NewWriter(fh)
	if err := WriteDirToTar(tw, srcDir, basePath, uid, gid, mode, filter); err != nil {
		return err
	}
	return tw.Close()
}

var ErrEntryNotExist = errors.New("not exist")

func ReadTarEntry(rc io.Reader, entryPath string) (*tar.Header, []byte, error) {
	tr := tar.NewReader(rc)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get next tar entry")
		}

		if header.Name == entryPath {
			buf, err := io.ReadAll(tr)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "failed to read contents of '%s'", entryPath)
			}

			return header, buf, nil
		}
	}

	return nil, nil, errors.Wrapf(ErrEntryNotExist, "could not find entry path '%s'", entryPath)
}

// Entries lists the entry names of a tar stream.
func Entries(rc io.Reader) ([]string, error) {
	var names []string
	tr := tar.NewReader(rc)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to get next tar entry")
		}
		names = append(names, header.Name)
	}
}

func finalizeHeader(header *tar.Header, uid, gid int, mode int64) {
	if mode != -1 {
		header.Mode = mode
	}
	header.ModTime = NormalizedDateTime
	if uid >= 0 {
		header.Uid = uid
	}
	if gid >= 0 {
		header.Gid = gid
	}
	header.Uname = ""
	header.Gname = ""
}
