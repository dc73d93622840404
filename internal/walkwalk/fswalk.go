// Package walkwalk provides a deterministic, filterable filesystem walker
// used to expand classpath wildcards, discover JDK module files and search
// classpath directories.
package walkwalk

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// FileInfo is a minimal, deterministic descriptor of a collected file.
type FileInfo struct {
	RelPath string // root-relative path with forward slashes
	AbsPath string // absolute filesystem path
	Size    int64  // size in bytes
	Ext     string // lowercase extension including dot (e.g., ".jar")
}

// Options filters a walk. The zero value collects every regular file
// below root, recursively.
type Options struct {
	Exts           map[string]struct{} // lowercase extensions to keep; empty keeps all
	Exclude        map[string]struct{} // base-name prefixes to skip (dirs and files)
	Match          *regexp.Regexp      // optional matcher on RelPath (see CompileGlob)
	Shallow        bool                // do not descend into subdirectories
	FollowSymlinks bool
}

type walkState struct {
	opt   Options
	root  string
	files []FileInfo
}

// Collect walks root and returns matching files sorted by RelPath.
func Collect(root string, opt Options) ([]FileInfo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	ws := &walkState{opt: opt, root: abs}
	if err := filepath.WalkDir(abs, ws.visit); err != nil {
		return nil, err
	}
	sort.Slice(ws.files, func(i, j int) bool { return ws.files[i].RelPath < ws.files[j].RelPath })
	return ws.files, nil
}

func (ws *walkState) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		if path == ws.root {
			return err
		}
		return nil
	}
	if path == ws.root {
		return nil
	}
	rel, ok := ws.relative(path)
	if !ok {
		return nil
	}
	if ws.shouldSkip(rel) {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		return ws.handleDir(d)
	}
	return ws.handleFile(path, rel, d)
}

func (ws *walkState) relative(path string) (string, bool) {
	rel, err := filepath.Rel(ws.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return "", false
	}
	return rel, true
}

func (ws *walkState) shouldSkip(rel string) bool {
	base := filepath.Base(rel)
	_, bad := ws.opt.Exclude[base]
	return bad || hasExcludedPrefix(base, ws.opt.Exclude)
}

func (ws *walkState) handleDir(d fs.DirEntry) error {
	if ws.opt.Shallow {
		return filepath.SkipDir
	}
	if !ws.opt.FollowSymlinks && isSymlink(d) {
		return filepath.SkipDir
	}
	return nil
}

func (ws *walkState) handleFile(path, rel string, d fs.DirEntry) error {
	if !ws.opt.FollowSymlinks && isSymlink(d) {
		return nil
	}
	info, err := d.Info()
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if len(ws.opt.Exts) > 0 {
		if _, ok := ws.opt.Exts[ext]; !ok {
			return nil
		}
	}
	if ws.opt.Match != nil && !ws.opt.Match.MatchString(rel) {
		return nil
	}
	ws.files = append(ws.files, FileInfo{
		RelPath: rel,
		AbsPath: path,
		Size:    info.Size(),
		Ext:     ext,
	})
	return nil
}

// isSymlink reports whether the DirEntry is a symlink (file or directory).
func isSymlink(d fs.DirEntry) bool {
	return d.Type()&fs.ModeSymlink != 0
}

// hasExcludedPrefix reports whether base begins with any of the exclude keys.
func hasExcludedPrefix(base string, exclude map[string]struct{}) bool {
	for k := range exclude {
		if k != "" && strings.HasPrefix(base, k) {
			return true
		}
	}
	return false
}

// CompileGlob translates a shell-style glob into a matcher for slash paths:
//   - '**' matches across directories
//   - '*' and '?' do not cross '/'
//   - a leading '/' anchors to the root; otherwise the glob may match any suffix
//     that starts at a path segment boundary
func CompileGlob(glob string) *regexp.Regexp {
	anchored := strings.HasPrefix(glob, "/")
	glob = strings.TrimPrefix(glob, "/")
	esc := regexp.QuoteMeta(glob)
	esc = strings.ReplaceAll(esc, "\\*\\*/", "__DOUBLESTAR_DIR__")
	esc = strings.ReplaceAll(esc, "\\*\\*", "__DOUBLESTAR__")
	esc = strings.ReplaceAll(esc, "\\*", "[^/]*")
	esc = strings.ReplaceAll(esc, "\\?", "[^/]")
	esc = strings.ReplaceAll(esc, "__DOUBLESTAR_DIR__", "(.*/)?")
	esc = strings.ReplaceAll(esc, "__DOUBLESTAR__", ".*")
	if anchored {
		return regexp.MustCompile("^" + esc + "$")
	}
	return regexp.MustCompile("(^|.*/)" + esc + "$")
}

// ExtSet builds a lowercase extension set from a list like ".jar", "jmod".
func ExtSet(exts ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		m[e] = struct{}{}
	}
	return m
}
