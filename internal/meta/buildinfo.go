// Package meta detects the build layout of a JVM project (Maven/Gradle) and
// derives the directories that hold its compiled classes, so a project's own
// classes can be introspected without listing them on the command line.
//
// Goals:
//   - Best-effort parsing: tolerate partial/absent files
//   - Deterministic class directory order per build type
package meta

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Info contains a minimal summary of build metadata.
type Info struct {
	Build      string   // "maven"|"gradle"|"" (unknown)
	JDK        string   // e.g., "21", "17", "8"
	Module     string   // artifact/module name (best-effort)
	ClassDirs  []string // absolute compiled-class output directories, main before test
	LibGlobs   []string // absolute classpath wildcards for bundled jars (e.g. <root>/lib/*)
	ConfigRoot string   // absolute project root
}

// Detect collects build metadata by probing common files in the project root:
//
// Priority (first match wins for Build): Maven > Gradle
func Detect(root string) Info {
	absRoot, _ := filepath.Abs(root)

	inf := Info{ConfigRoot: absRoot, Module: filepath.Base(absRoot)}
	switch {
	case firstExisting(absRoot, "pom.xml") != "":
		if m, ok := detectMaven(absRoot, filepath.Join(absRoot, "pom.xml")); ok {
			inf = m
		}
	case firstExisting(absRoot, "build.gradle", "build.gradle.kts") != "":
		inf = detectGradle(absRoot)
	}

	if st, err := os.Stat(filepath.Join(absRoot, "lib")); err == nil && st.IsDir() {
		inf.LibGlobs = append(inf.LibGlobs, filepath.Join(absRoot, "lib", "*"))
	}
	return inf
}

// Classpath returns the class directories followed by the lib wildcards.
func (i Info) Classpath() []string {
	out := append([]string(nil), i.ClassDirs...)
	return append(out, i.LibGlobs...)
}

// ------------------------------ Maven ----------------------------------------

type pomXML struct {
	XMLName    xml.Name  `xml:"project"`
	ArtifactID string    `xml:"artifactId"`
	Build      pomBuild  `xml:"build"`
	Props      pomProps  `xml:"properties"`
	Parent     pomParent `xml:"parent"`
}

type pomParent struct {
	ArtifactID string `xml:"artifactId"`
}

type pomBuild struct {
	Directory           string `xml:"directory"`
	OutputDirectory     string `xml:"outputDirectory"`
	TestOutputDirectory string `xml:"testOutputDirectory"`
}

type pomProps struct {
	Source  string `xml:"maven.compiler.source"`
	Target  string `xml:"maven.compiler.target"`
	Release string `xml:"maven.compiler.release"`
	JavaVer string `xml:"java.version"`
}

func detectMaven(root, pomPath string) (Info, bool) {
	b, err := os.ReadFile(pomPath)
	if err != nil {
		return Info{}, false
	}
	var p pomXML
	if err := xml.Unmarshal(b, &p); err != nil {
		return Info{}, false
	}

	target := firstNonEmpty(p.Build.Directory, "target")
	main := firstNonEmpty(p.Build.OutputDirectory, filepath.Join(target, "classes"))
	test := firstNonEmpty(p.Build.TestOutputDirectory, filepath.Join(target, "test-classes"))

	return Info{
		Build:      "maven",
		JDK:        normalizeJDK(firstNonEmpty(p.Props.Release, p.Props.Target, p.Props.Source, p.Props.JavaVer)),
		Module:     firstNonEmpty(p.ArtifactID, filepath.Base(root)),
		ClassDirs:  []string{abs(root, main), abs(root, test)},
		ConfigRoot: root,
	}, true
}

// ------------------------------ Gradle ---------------------------------------

var (
	reGradleCompatQuoted = regexp.MustCompile(`(?m)^\s*(?:sourceCompatibility|targetCompatibility)\s*=\s*["']?(\d{1,2}(?:\.\d+)?)["']?`)
	reGradleCompatEnum   = regexp.MustCompile(`(?m)^\s*(?:sourceCompatibility|targetCompatibility)\s*=\s*JavaVersion\.VERSION_(\d{1,2}(?:_\d+)?)`)
	reGradleToolchain    = regexp.MustCompile(`languageVersion(?:\.set\()?\s*=?\s*JavaLanguageVersion\.of\((\d{1,2})\)`)
	reGradleRootName     = regexp.MustCompile(`(?m)^\s*rootProject\.name\s*=\s*["']([^"']+)["']`)
)

func detectGradle(root string) Info {
	text := ""
	if p := firstExisting(root, "build.gradle", "build.gradle.kts"); p != "" {
		if b, err := os.ReadFile(p); err == nil {
			text = string(b)
		}
	}

	jdk := ""
	if m := reGradleCompatQuoted.FindStringSubmatch(text); m != nil {
		jdk = normalizeJDK(m[1])
	} else if m := reGradleCompatEnum.FindStringSubmatch(text); m != nil {
		jdk = normalizeJDK(strings.ReplaceAll(m[1], "_", "."))
	} else if m := reGradleToolchain.FindStringSubmatch(text); m != nil {
		jdk = normalizeJDK(m[1])
	}

	mod := ""
	if p := firstExisting(root, "settings.gradle", "settings.gradle.kts"); p != "" {
		if b, err := os.ReadFile(p); err == nil {
			if m := reGradleRootName.FindStringSubmatch(string(b)); m != nil {
				mod = m[1]
			}
		}
	}

	dirs := []string{
		"build/classes/java/main",
		"build/classes/kotlin/main",
		"build/classes/java/test",
		"build/classes/kotlin/test",
	}
	for i, d := range dirs {
		dirs[i] = abs(root, d)
	}
	return Info{
		Build:      "gradle",
		JDK:        jdk,
		Module:     firstNonEmpty(mod, filepath.Base(root)),
		ClassDirs:  dirs,
		ConfigRoot: root,
	}
}

// ---------------------------- helpers ---------------------------------------

func abs(root, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func firstExisting(root string, names ...string) string {
	for _, n := range names {
		p := filepath.Join(root, n)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return ""
}

// normalizeJDK tries to coerce input like "21", "1.8", "17.0.1" into "21"|"17"|"8".
func normalizeJDK(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "1.") && len(s) >= 3 {
		s = strings.TrimPrefix(s, "1.")
	}
	out := strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		out.WriteByte(s[i])
	}
	return out.String()
}
