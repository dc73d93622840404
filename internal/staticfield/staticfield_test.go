package staticfield_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"javatools/internal/classfile"
	"javatools/internal/classfile/classfiletest"
	"javatools/internal/classpath"
	"javatools/internal/introspect"
	"javatools/internal/resolve"
	"javatools/internal/staticfield"
)

var nested = []classfiletest.Class{
	{Name: "com.acme.Outer", Super: "java.lang.Object"},
	{
		Name:  "com.acme.Outer$Inner",
		Super: "java.lang.Object",
		Fields: []classfiletest.Field{
			{Access: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal, Name: "LIMIT", Descriptor: "J", Constant: int64(42)},
			{Access: classfile.AccPublic | classfile.AccStatic, Name: "counter", Descriptor: "I"},
		},
	},
}

func newResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	dir := t.TempDir()
	classfiletest.WriteDir(t, dir, append(classfiletest.JDK(), nested...)...)
	cp, err := classpath.Open([]string{dir}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cp.Close() })
	return resolve.New(introspect.New(cp, zap.NewNop()), nil, "", zap.NewNop())
}

func TestReadConstant(t *testing.T) {
	r := newResolver(t)
	v, err := staticfield.Read(r, "java.util.regex.Pattern.CASE_INSENSITIVE")
	require.NoError(t, err)
	assert.Equal(t, &staticfield.Value{
		Class: "java.util.regex.Pattern",
		Field: "CASE_INSENSITIVE",
		Type:  "int",
		Value: int32(2),
	}, v)
}

func TestReadNestedClass(t *testing.T) {
	r := newResolver(t)
	v, err := staticfield.Read(r, "com.acme.Outer.Inner.LIMIT")
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Outer$Inner", v.Class)
	assert.Equal(t, int64(42), v.Value)
}

func TestDumpRendersStructure(t *testing.T) {
	r := newResolver(t)
	out, err := staticfield.Dump(r, "java.util.concurrent.TimeUnit.SECONDS")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "(staticfield.Value) {"), out)
	assert.Contains(t, out, `Class: (string) (len=29) "java.util.concurrent.TimeUnit"`)
	assert.Contains(t, out, `Name: (string) (len=7) "SECONDS"`)
	assert.Contains(t, out, `Ordinal: (int) 0`)
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestReadErrors(t *testing.T) {
	r := newResolver(t)

	_, err := staticfield.Read(r, "java.util.regex.Pattern.MISSING")
	assert.True(t, errors.Is(err, introspect.ErrFieldNotFound), "%v", err)

	_, err = staticfield.Read(r, "java.util.ArrayList.size")
	assert.True(t, errors.Is(err, introspect.ErrNotStatic), "%v", err)

	_, err = staticfield.Read(r, "com.acme.Outer.Inner.counter")
	assert.True(t, errors.Is(err, introspect.ErrAccessDenied), "%v", err)

	_, err = staticfield.Read(r, "com.nowhere.Thing.FIELD")
	assert.True(t, errors.Is(err, introspect.ErrClassNotFound), "%v", err)

	for _, bad := range []string{"NOFIELD", ".X", "java.util.List."} {
		_, err = staticfield.Read(r, bad)
		assert.True(t, errors.Is(err, staticfield.ErrMalformedPath), "%q: %v", bad, err)
	}
}
