package resolve_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"javatools/internal/classfile/classfiletest"
	"javatools/internal/classpath"
	"javatools/internal/introspect"
	"javatools/internal/resolve"
)

func newResolver(t *testing.T, ns resolve.Namespaces, extra ...classfiletest.Class) *resolve.Resolver {
	t.Helper()
	dir := t.TempDir()
	classfiletest.WriteDir(t, dir, append(classfiletest.JDK(), extra...)...)
	cp, err := classpath.Open([]string{dir}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cp.Close() })
	return resolve.New(introspect.New(cp, zap.NewNop()), ns, "", zap.NewNop())
}

func classNames(cs []*introspect.Class) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name())
	}
	return out
}

var textPattern = classfiletest.Class{Name: "java.text.Pattern", Super: "java.lang.Object"}

func TestDefaultNamespaces(t *testing.T) {
	assert.Len(t, resolve.DefaultNamespaces, 24)
	assert.Equal(t, "java.util", resolve.DefaultNamespaces[0])
	assert.Equal(t, "javax.crypto", resolve.DefaultNamespaces[23])
}

func TestResolveByShortNameSingleMatch(t *testing.T) {
	r := newResolver(t, nil)
	for name, want := range map[string]string{
		"ArrayList": "java.util.ArrayList",
		"Pattern":   "java.util.regex.Pattern",
		"TimeUnit":  "java.util.concurrent.TimeUnit",
		"String":    "java.lang.String",
	} {
		found, err := r.ResolveByShortName(name)
		require.NoError(t, err, name)
		assert.Equal(t, []string{want}, classNames(found), name)
	}
}

func TestResolveByShortNameNoMatchIsEmpty(t *testing.T) {
	r := newResolver(t, nil)
	found, err := r.ResolveByShortName("DoesNotExist")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestResolveByShortNameCollectsAllInTableOrder(t *testing.T) {
	r := newResolver(t, nil, textPattern)
	found, err := r.ResolveByShortName("Pattern")
	require.NoError(t, err)
	assert.Equal(t, []string{"java.util.regex.Pattern", "java.text.Pattern"}, classNames(found))
}

func TestResolveByShortNameQualified(t *testing.T) {
	r := newResolver(t, nil)
	found, err := r.ResolveByShortName("java.util.Map$Entry")
	require.NoError(t, err)
	assert.Equal(t, []string{"java.util.Map$Entry"}, classNames(found))

	_, err = r.ResolveByShortName("java.util.Missing")
	assert.True(t, errors.Is(err, introspect.ErrClassNotFound))
}

func TestCustomNamespaces(t *testing.T) {
	r := newResolver(t, resolve.Namespaces{"java.text", "java.util.regex"}, textPattern)
	found, err := r.ResolveByShortName("Pattern")
	require.NoError(t, err)
	assert.Equal(t, []string{"java.text.Pattern", "java.util.regex.Pattern"}, classNames(found))

	found, err = r.ResolveByShortName("ArrayList")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestResolveWithHint(t *testing.T) {
	widget := classfiletest.Class{Name: "com.acme.Widget", Super: "java.lang.Object"}
	r := newResolver(t, nil, textPattern, widget)

	c, err := r.ResolveWithHint("java.util.List", "")
	require.NoError(t, err)
	assert.Equal(t, "java.util.List", c.Name())

	c, err = r.ResolveWithHint("Widget", "com.acme")
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Widget", c.Name())

	c, err = r.ResolveWithHint("ArrayList", "com.acme")
	require.NoError(t, err)
	assert.Equal(t, "java.util.ArrayList", c.Name())

	c, err = r.ResolveWithHint("Pattern", "java.text")
	require.NoError(t, err)
	assert.Equal(t, "java.text.Pattern", c.Name())

	_, err = r.ResolveWithHint("Pattern", "")
	assert.True(t, errors.Is(err, resolve.ErrAmbiguousClass), "%v", err)

	_, err = r.ResolveWithHint("Widget", "")
	assert.True(t, errors.Is(err, introspect.ErrClassNotFound), "%v", err)

	_, err = r.ResolveWithHint("com.acme.Gadget", "com.acme")
	assert.True(t, errors.Is(err, introspect.ErrClassNotFound), "%v", err)
}

func TestResolveDefault(t *testing.T) {
	r := newResolver(t, nil, textPattern)

	c, err := r.ResolveDefault("String")
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", c.Name())

	c, err = r.ResolveDefault("ArrayList")
	require.NoError(t, err)
	assert.Equal(t, "java.util.ArrayList", c.Name())

	c, err = r.ResolveDefault("java.util.List")
	require.NoError(t, err)
	assert.Equal(t, "java.util.List", c.Name())

	_, err = r.ResolveDefault("Pattern")
	assert.True(t, errors.Is(err, resolve.ErrAmbiguousClass))
}

func TestLoadNested(t *testing.T) {
	r := newResolver(t, nil)

	c, err := r.LoadNested("java.util.Map.Entry")
	require.NoError(t, err)
	assert.Equal(t, "java.util.Map$Entry", c.Name())

	c, err = r.LoadNested("java.util.ArrayList")
	require.NoError(t, err)
	assert.Equal(t, "java.util.ArrayList", c.Name())

	_, err = r.LoadNested("no.such.Thing")
	assert.True(t, errors.Is(err, introspect.ErrClassNotFound))

	_, err = r.LoadNested("Nothing")
	assert.True(t, errors.Is(err, introspect.ErrClassNotFound))
}

func TestTrimClassSuffix(t *testing.T) {
	assert.Equal(t, "java.util.List", resolve.TrimClassSuffix("java.util.List.class"))
	assert.Equal(t, "List", resolve.TrimClassSuffix("List"))
}
