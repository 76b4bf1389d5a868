// Package archivezip extracts native-library jars into a natives
// directory. Grounded in the original's natives.rs::extract_natives_file,
// with the buffer-write bug fixed (decided Open Question (c)): the
// original reads each entry into a buffer, calls File::create, and never
// writes the buffer to the created file, so every extracted native comes
// out zero bytes. This implementation writes the buffered content, creates
// per-entry parent directories, skips directory entries, honors the
// original file's permission bits, and rejects zip-slip paths that would
// escape the destination directory.
package archivezip

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
)

// ExtractNatives unpacks filename's entries into destDir, skipping any
// entry whose name starts with one of extract.Exclude's prefixes.
func ExtractNatives(filename, destDir string, extract *model.ExtractRule) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return launcherr.OS("creating natives directory", err)
	}

	r, err := zip.OpenReader(filename)
	if err != nil {
		return launcherr.Zip("opening native jar "+filename, err)
	}
	defer r.Close()

	var excludes []string
	if extract != nil {
		excludes = extract.Exclude
	}

	for _, f := range r.File {
		if isExcluded(f.Name, excludes) {
			continue
		}
		if f.FileInfo().IsDir() {
			continue
		}

		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return launcherr.OS("creating directory for "+f.Name, err)
		}

		if err := extractEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return launcherr.Zip("opening entry "+f.Name, err)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return launcherr.OS("creating file "+target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return launcherr.OS("writing file "+target, err)
	}
	return nil
}

func isExcluded(name string, excludes []string) bool {
	for _, e := range excludes {
		if strings.HasPrefix(name, e) {
			return true
		}
	}
	return false
}

// safeJoin resolves name under base and rejects any path that would
// escape it via "../" traversal (a zip-slip entry).
func safeJoin(base, name string) (string, error) {
	target := filepath.Join(base, name)
	baseClean := filepath.Clean(base) + string(os.PathSeparator)
	if !strings.HasPrefix(filepath.Clean(target)+string(os.PathSeparator), baseClean) {
		return "", launcherr.Zip("entry escapes destination directory: "+name, nil)
	}
	return target, nil
}
