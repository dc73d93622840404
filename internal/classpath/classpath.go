// Package classpath locates class files and other resources across an
// ordered list of directories and archives, the way a JVM class loader
// searches its classpath: the first entry holding a resource wins.
package classpath

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"javatools/internal/classfile"
	"javatools/internal/walkwalk"
	"javatools/internal/ziputil"
)

var (
	// ErrNotFound is returned (wrapped) when no entry holds a resource.
	ErrNotFound = errors.New("resource not found on classpath")
	// ErrNoJDK means no classpath entry provides java.lang.Object.
	ErrNoJDK = errors.New("no JDK on the classpath; pass --java-home or set java_home")
)

// StandardJDKRoots are the install locations probed by Discover, as glob
// patterns matching JDK home directories.
var StandardJDKRoots = []string{
	"/usr/lib/jvm/*",
	"/usr/java/*",
	"/opt/java/*",
	"/Library/Java/JavaVirtualMachines/*/Contents/Home",
}

// Resource is a resource read from a classpath entry.
type Resource struct {
	Name  string // slash-separated resource name, e.g. java/util/List.class
	URL   string // file:<path> or jar:file:<archive>!/<entry>
	Entry string // path of the classpath entry that served it
	Data  []byte
}

// Match is one result of a Glob search.
type Match struct {
	Entry string // classpath entry path
	Item  string // entry-relative resource name
}

// Entry is a single classpath element.
type Entry interface {
	Has(name string) bool
	Read(name string) ([]byte, error)
	URL(name string) string
	Glob(pattern string) ([]string, error)
	String() string
	Close() error
}

// Path is an ordered classpath.
type Path struct {
	entries []Entry
	log     *zap.Logger
}

// Open builds a classpath from specs. Each spec may hold several items joined
// by the OS list separator. Items are directories, jar/zip/jmod archives, or
// "dir/*" wildcards expanding to the jars in dir (name order). Items that do
// not exist are skipped, as the JVM does.
func Open(specs []string, log *zap.Logger) (*Path, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Path{log: log}
	for _, spec := range specs {
		for _, item := range filepath.SplitList(spec) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if err := p.add(item); err != nil {
				_ = p.Close()
				return nil, err
			}
		}
	}
	return p, nil
}

func (p *Path) add(item string) error {
	if dir, ok := wildcardDir(item); ok {
		jars, err := walkwalk.Collect(dir, walkwalk.Options{Exts: walkwalk.ExtSet(".jar"), Shallow: true})
		if err != nil {
			p.log.Debug("skipping classpath wildcard", zap.String("dir", dir), zap.Error(err))
			return nil
		}
		for _, j := range jars {
			if err := p.add(j.AbsPath); err != nil {
				return err
			}
		}
		return nil
	}

	st, err := os.Stat(item)
	if err != nil {
		p.log.Debug("skipping missing classpath entry", zap.String("entry", item))
		return nil
	}
	if st.IsDir() {
		abs, err := filepath.Abs(item)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve: %v", item)
		}
		p.entries = append(p.entries, dirEntry{root: abs})
		p.log.Debug("classpath directory", zap.String("entry", abs))
		return nil
	}
	if !ziputil.IsArchive(item) {
		p.log.Debug("skipping non-archive classpath file", zap.String("entry", item))
		return nil
	}
	a, err := ziputil.Open(item)
	if err != nil {
		p.log.Warn("skipping unreadable archive", zap.String("entry", item), zap.Error(err))
		return nil
	}
	p.entries = append(p.entries, archiveEntry{a})
	p.log.Debug("classpath archive", zap.String("entry", a.Path), zap.String("prefix", a.Prefix))
	return nil
}

func wildcardDir(item string) (string, bool) {
	for _, suffix := range []string{"/*", string(filepath.Separator) + "*"} {
		if strings.HasSuffix(item, suffix) {
			return strings.TrimSuffix(item, suffix), true
		}
	}
	if item == "*" {
		return ".", true
	}
	return "", false
}

// JDK returns the classpath items contributed by a JDK installation: its
// jmods (JDK 9+), or rt.jar for Java 8 layouts.
func JDK(home string) ([]string, error) {
	if home == "" {
		return nil, nil
	}
	jmods := filepath.Join(home, "jmods")
	if st, err := os.Stat(jmods); err == nil && st.IsDir() {
		files, err := walkwalk.Collect(jmods, walkwalk.Options{Exts: walkwalk.ExtSet(".jmod"), Shallow: true})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list: %v", jmods)
		}
		out := make([]string, 0, len(files))
		for _, f := range files {
			out = append(out, f.AbsPath)
		}
		return out, nil
	}
	for _, rt := range []string{filepath.Join(home, "jre", "lib", "rt.jar"), filepath.Join(home, "lib", "rt.jar")} {
		if _, err := os.Stat(rt); err == nil {
			return []string{rt}, nil
		}
	}
	return nil, errors.Errorf("no jmods or rt.jar found under java home %v", home)
}

// Discover returns the first JDK home matched by roots that carries jmods or
// rt.jar. Within one pattern, names are tried in reverse order so that
// jdk-21 is preferred over jdk-17.
func Discover(roots []string, log *zap.Logger) (string, bool) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, pattern := range roots {
		homes, err := filepath.Glob(pattern)
		if err != nil {
			log.Debug("skipping malformed JDK root", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		sort.Sort(sort.Reverse(sort.StringSlice(homes)))
		for _, home := range homes {
			if _, err := JDK(home); err == nil {
				log.Debug("discovered JDK", zap.String("home", home))
				return home, true
			}
		}
	}
	return "", false
}

// Len returns the number of entries.
func (p *Path) Len() int { return len(p.entries) }

// Entries returns the entry paths in search order.
func (p *Path) Entries() []string {
	out := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.String())
	}
	return out
}

// ClassResource returns the resource name of a class binary name.
func ClassResource(binaryName string) string {
	return classfile.InternalName(binaryName) + ".class"
}

// Find reads a resource from the first entry that holds it.
func (p *Path) Find(name string) (*Resource, error) {
	for _, e := range p.entries {
		if !e.Has(name) {
			continue
		}
		data, err := e.Read(name)
		if err != nil {
			return nil, err
		}
		return &Resource{Name: name, URL: e.URL(name), Entry: e.String(), Data: data}, nil
	}
	return nil, errors.Wrapf(ErrNotFound, "%v", name)
}

// Has reports whether any entry holds the resource.
func (p *Path) Has(name string) bool {
	for _, e := range p.entries {
		if e.Has(name) {
			return true
		}
	}
	return false
}

// Bootstrapped reports whether the classpath provides java.lang.Object,
// which every class resolution ends in.
func (p *Path) Bootstrapped() bool {
	return p.Has(ClassResource("java.lang.Object"))
}

// Glob lists every resource matching pattern in every entry, in classpath
// order. See walkwalk.CompileGlob for the pattern syntax.
func (p *Path) Glob(pattern string) ([]Match, error) {
	var out []Match
	for _, e := range p.entries {
		items, err := e.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to search: %v", e)
		}
		for _, it := range items {
			out = append(out, Match{Entry: e.String(), Item: it})
		}
	}
	return out, nil
}

// Close releases every archive.
func (p *Path) Close() error {
	var first error
	for _, e := range p.entries {
		if err := e.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ------------------------------ entries --------------------------------------

type dirEntry struct{ root string }

func (d dirEntry) path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(ziputil.SanitizePath(name)))
}

func (d dirEntry) Has(name string) bool {
	st, err := os.Stat(d.path(name))
	return err == nil && st.Mode().IsRegular()
}

func (d dirEntry) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(d.path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read: %v", d.path(name))
	}
	return data, nil
}

func (d dirEntry) URL(name string) string {
	p := filepath.ToSlash(d.path(name))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file:" + p
}

func (d dirEntry) Glob(pattern string) ([]string, error) {
	files, err := walkwalk.Collect(d.root, walkwalk.Options{Match: walkwalk.CompileGlob(pattern)})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out, nil
}

func (d dirEntry) String() string { return d.root }
func (d dirEntry) Close() error   { return nil }

type archiveEntry struct{ a *ziputil.Archive }

func (e archiveEntry) Has(name string) bool             { return e.a.Has(name) }
func (e archiveEntry) Read(name string) ([]byte, error) { return e.a.ReadFile(name) }
func (e archiveEntry) URL(name string) string           { return e.a.EntryURL(name) }
func (e archiveEntry) String() string                   { return e.a.Path }
func (e archiveEntry) Close() error                     { return e.a.Close() }

func (e archiveEntry) Glob(pattern string) ([]string, error) {
	rx := walkwalk.CompileGlob(pattern)
	var out []string
	for _, n := range e.a.Names() {
		if rx.MatchString(n) {
			out = append(out, n)
		}
	}
	return out, nil
}
