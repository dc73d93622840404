// Package ziputil opens the archive formats found on a JVM classpath (jar,
// zip and jmod) and normalizes entry names for lookups.
package ziputil

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// jmodMagic prefixes JDK module files; the zip payload follows it.
var jmodMagic = []byte{'J', 'M', 1, 0}

// JmodClassesPrefix is where class files live inside a jmod.
const JmodClassesPrefix = "classes/"

// Archive is an opened archive with an index of its entries.
type Archive struct {
	Path   string // absolute path of the archive file
	Prefix string // entry prefix holding class files ("" for jars, "classes/" for jmods)

	f       *os.File
	zr      *zip.Reader
	entries map[string]*zip.File
}

// Open opens a jar, zip or jmod file. Jmods are recognized by their header,
// not by extension.
func Open(path string) (*Archive, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve: %v", path)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open archive: %v", abs)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "failed to stat archive: %v", abs)
	}

	var offset int64
	prefix := ""
	head := make([]byte, len(jmodMagic))
	if n, _ := f.ReadAt(head, 0); n == len(head) && bytes.Equal(head, jmodMagic) {
		offset = int64(len(jmodMagic))
		prefix = JmodClassesPrefix
	}

	zr, err := zip.NewReader(io.NewSectionReader(f, offset, st.Size()-offset), st.Size()-offset)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "failed to read archive: %v", abs)
	}
	a := &Archive{Path: abs, Prefix: prefix, f: f, zr: zr, entries: make(map[string]*zip.File, len(zr.File))}
	for _, zf := range zr.File {
		a.entries[SanitizePath(zf.Name)] = zf
	}
	return a, nil
}

// Has reports whether the archive holds name (relative to Prefix).
func (a *Archive) Has(name string) bool {
	_, ok := a.entries[SanitizePath(a.Prefix+name)]
	return ok
}

// ReadFile returns the contents of name (relative to Prefix), or os.ErrNotExist.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	zf, ok := a.entries[SanitizePath(a.Prefix+name)]
	if !ok {
		return nil, os.ErrNotExist
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open entry %v in %v", name, a.Path)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read entry %v in %v", name, a.Path)
	}
	return data, nil
}

// Names lists entry names relative to Prefix, in archive order. Directories
// and entries outside Prefix are omitted.
func (a *Archive) Names() []string {
	out := make([]string, 0, len(a.zr.File))
	for _, zf := range a.zr.File {
		if strings.HasSuffix(zf.Name, "/") {
			continue
		}
		name := SanitizePath(zf.Name)
		if !strings.HasPrefix(name, a.Prefix) {
			continue
		}
		out = append(out, strings.TrimPrefix(name, a.Prefix))
	}
	return out
}

// EntryURL is the resource URL a class loader reports for an entry:
// jar:file:<archive>!/<entry>.
func (a *Archive) EntryURL(name string) string {
	return "jar:file:" + filepath.ToSlash(a.Path) + "!/" + a.Prefix + name
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.f.Close()
}

// SanitizePath normalizes entry paths (forward slashes, no drive, no leading '/'),
// and removes '.' and '..' segments without escaping the root.
func SanitizePath(p string) string {
	s := filepath.ToSlash(p)
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, part)
	}
	s = strings.Join(stack, "/")
	if s == "" {
		return "entry"
	}
	return s
}

// IsArchive reports whether a path looks like a classpath archive by extension.
func IsArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip", ".jmod":
		return true
	}
	return false
}
