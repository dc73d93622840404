package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javatools/internal/config"
	"javatools/internal/resolve"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFindDefaults(t *testing.T) {
	cfg, err := config.Find(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, []string(resolve.DefaultNamespaces), cfg.Namespaces)
	assert.Equal(t, "java.lang", cfg.BaseNamespace)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ".javatools.yaml", `
classpath:
  - lib/*
  - build/classes
  - lib/*
java_home: /opt/jdk
namespaces: [java.util, " java.io ", java.util]
`)
	cfg, err := config.Find(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/*", "build/classes"}, cfg.Classpath)
	assert.Equal(t, "/opt/jdk", cfg.JavaHome)
	assert.Equal(t, []string{"java.util", "java.io"}, cfg.Namespaces)
	assert.Equal(t, "java.lang", cfg.BaseNamespace)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, ".javatools.toml", `
classpath = ["target/classes"]
base_namespace = "java.util"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, []string{"target/classes"}, cfg.Classpath)
	assert.Equal(t, "java.util", cfg.BaseNamespace)
	assert.Len(t, cfg.Namespaces, len(resolve.DefaultNamespaces))
}

func TestYAMLPreferredOverTOML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ".javatools.toml", `java_home = "/toml"`)
	write(t, dir, ".javatools.yml", `java_home: /yml`)
	cfg, err := config.Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "/yml", cfg.JavaHome)
}

func TestResolveExplicit(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ".javatools.yaml", `java_home: /project`)
	other := write(t, t.TempDir(), "custom.yaml", `java_home: /explicit`)
	cfg, err := config.Resolve(other, dir)
	require.NoError(t, err)
	assert.Equal(t, "/explicit", cfg.JavaHome)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(write(t, dir, "c.json", `{}`))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = config.Load(write(t, dir, "bad.yaml", "classpath: [\n"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = config.Load(write(t, dir, "ns.yaml", "namespaces: [java/util]\n"))
	assert.ErrorContains(t, err, "invalid namespace")
}

func TestApply(t *testing.T) {
	cfg := config.Default()
	cfg.Classpath = []string{"a", "b"}
	cfg.JavaHome = "/file"
	cfg.Apply(config.Overrides{Classpath: []string{"c", "a"}, JavaHome: "/flag"})
	assert.Equal(t, []string{"c", "a", "b"}, cfg.Classpath)
	assert.Equal(t, "/flag", cfg.JavaHome)

	cfg.Apply(config.Overrides{})
	assert.Equal(t, "/flag", cfg.JavaHome)
}
