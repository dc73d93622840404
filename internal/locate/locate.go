// Package locate maps a class to the directory or archive that provides its
// class file.
package locate

import (
	"fmt"
	"strings"

	"javatools/internal/introspect"
	"javatools/internal/resolve"
)

// Location is the outcome of Locate. Path is empty when the name did not
// resolve to exactly one class.
type Location struct {
	Name       string   // name as given
	Class      string   // binary name of the resolved class
	Path       string   // archive path, or class file path for directories
	Candidates []string // every match of a bare name
}

// Found reports whether a unique class was located.
func (l Location) Found() bool { return l.Path != "" }

// Ambiguous reports whether a bare name matched several namespaces.
func (l Location) Ambiguous() bool { return len(l.Candidates) > 1 }

// Advisory is the message shown for an ambiguous name.
func (l Location) Advisory() string {
	return fmt.Sprintf("Class '%s' cannot be resolved unambiguously", l.Name)
}

// Locate resolves name and reports where its class file comes from. A bare
// name matching zero or several namespaces is not an error; the returned
// Location is simply not Found. A qualified name that does not load is.
func Locate(r *resolve.Resolver, name string) (Location, error) {
	loc := Location{Name: name}
	var cls *introspect.Class
	if resolve.IsQualified(name) {
		c, err := r.ResolveByShortName(name)
		if err != nil {
			return loc, err
		}
		cls = c[0]
	} else {
		found, err := r.ResolveByShortName(name)
		if err != nil {
			return loc, err
		}
		for _, c := range found {
			loc.Candidates = append(loc.Candidates, c.Name())
		}
		if len(found) != 1 {
			return loc, nil
		}
		cls = found[0]
	}
	loc.Class = cls.Name()
	loc.Path = PathFromURL(cls.URL())
	return loc, nil
}

// PathFromURL reduces a class resource URL to a filesystem path: the scheme
// and, for archives, everything from the first '!' are removed.
//
//	jar:file:/opt/lib/a.jar!/p/A.class -> /opt/lib/a.jar
//	file:/work/classes/p/A.class      -> /work/classes/p/A.class
func PathFromURL(url string) string {
	path := strings.TrimPrefix(url, "jar:")
	if i := strings.IndexByte(path, '!'); i > 0 {
		path = path[:i]
	}
	return strings.TrimPrefix(path, "file:")
}
