package meta

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectMaven(t *testing.T) {
	root := t.TempDir()
	write(t, root, "pom.xml", `<project>
  <artifactId>demo-app</artifactId>
  <properties><maven.compiler.release>17</maven.compiler.release></properties>
</project>`)

	inf := Detect(root)
	if inf.Build != "maven" || inf.Module != "demo-app" || inf.JDK != "17" {
		t.Fatalf("unexpected info: %+v", inf)
	}
	abs, _ := filepath.Abs(root)
	want := []string{filepath.Join(abs, "target", "classes"), filepath.Join(abs, "target", "test-classes")}
	if len(inf.ClassDirs) != 2 || inf.ClassDirs[0] != want[0] || inf.ClassDirs[1] != want[1] {
		t.Fatalf("class dirs: got %v want %v", inf.ClassDirs, want)
	}
}

func TestDetectMavenCustomOutput(t *testing.T) {
	root := t.TempDir()
	write(t, root, "pom.xml", `<project><artifactId>x</artifactId>
  <build><outputDirectory>out/main</outputDirectory></build></project>`)
	inf := Detect(root)
	abs, _ := filepath.Abs(root)
	if inf.ClassDirs[0] != filepath.Join(abs, "out", "main") {
		t.Fatalf("custom output ignored: %v", inf.ClassDirs)
	}
}

func TestDetectGradleWithLib(t *testing.T) {
	root := t.TempDir()
	write(t, root, "build.gradle", "sourceCompatibility = JavaVersion.VERSION_1_8\n")
	write(t, root, "settings.gradle", "rootProject.name = 'shop'\n")
	write(t, root, "lib/a.jar", "")

	inf := Detect(root)
	if inf.Build != "gradle" || inf.Module != "shop" || inf.JDK != "8" {
		t.Fatalf("unexpected info: %+v", inf)
	}
	cp := inf.Classpath()
	if len(cp) != 5 {
		t.Fatalf("classpath size: %v", cp)
	}
	abs, _ := filepath.Abs(root)
	if cp[0] != filepath.Join(abs, "build", "classes", "java", "main") || cp[4] != filepath.Join(abs, "lib", "*") {
		t.Fatalf("classpath order: %v", cp)
	}
}

func TestDetectUnknown(t *testing.T) {
	inf := Detect(t.TempDir())
	if inf.Build != "" || len(inf.Classpath()) != 0 {
		t.Fatalf("expected empty info, got %+v", inf)
	}
}

func TestNormalizeJDK(t *testing.T) {
	for in, want := range map[string]string{"1.8": "8", "17.0.1": "17", "21": "21", "": ""} {
		if got := normalizeJDK(in); got != want {
			t.Fatalf("normalizeJDK(%q) = %q, want %q", in, got, want)
		}
	}
}
