package classfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javatools/internal/classfile"
)

func TestFieldType(t *testing.T) {
	cases := map[string]string{
		"I":                     "int",
		"Z":                     "boolean",
		"[[J":                   "long[][]",
		"Ljava/lang/String;":    "java.lang.String",
		"[Ljava/util/Map$Entry;": "java.util.Map$Entry[]",
	}
	for desc, want := range cases {
		got, err := classfile.FieldType(desc)
		require.NoError(t, err, desc)
		assert.Equal(t, want, got, desc)
	}

	for _, bad := range []string{"", "Q", "Ljava/lang/String", "II", "[V"} {
		_, err := classfile.FieldType(bad)
		assert.Error(t, err, bad)
	}
}

func TestMethodType(t *testing.T) {
	params, ret, err := classfile.MethodType("(I[Ljava/lang/String;J)Ljava/util/List;")
	require.NoError(t, err)
	assert.Equal(t, []string{"int", "java.lang.String[]", "long"}, params)
	assert.Equal(t, "java.util.List", ret)

	params, ret, err = classfile.MethodType("()V")
	require.NoError(t, err)
	assert.Empty(t, params)
	assert.Equal(t, "void", ret)

	_, _, err = classfile.MethodType("(I")
	assert.Error(t, err)
}

func TestParseMethodSignature(t *testing.T) {
	ms, err := classfile.ParseMethodSignature("<T:Ljava/lang/Object;>([TT;)[TT;")
	require.NoError(t, err)
	assert.Equal(t, []string{"T"}, ms.TypeParams)
	assert.Equal(t, []string{"T[]"}, ms.Params)
	assert.Equal(t, "T[]", ms.Return)

	ms, err = classfile.ParseMethodSignature("<T::Ljava/lang/Comparable<-TT;>;>(Ljava/util/List<+TT;>;Ljava/util/Map$Entry<TK;*>;)V^Ljava/io/IOException;")
	require.NoError(t, err)
	assert.Equal(t, []string{"T extends java.lang.Comparable<? super T>"}, ms.TypeParams)
	assert.Equal(t, []string{"java.util.List<? extends T>", "java.util.Map$Entry<K, ?>"}, ms.Params)
	assert.Equal(t, "void", ms.Return)
	assert.Equal(t, []string{"java.io.IOException"}, ms.Throws)

	ms, err = classfile.ParseMethodSignature("(Ljava/util/Collection<+Ljava/lang/Object;>;)Z")
	require.NoError(t, err)
	assert.Equal(t, []string{"java.util.Collection<?>"}, ms.Params)

	_, err = classfile.ParseMethodSignature("(TT")
	assert.Error(t, err)
}

func TestParseFieldSignature(t *testing.T) {
	ft, err := classfile.ParseFieldSignature("Lpkg/Outer<TT;>.Inner<Ljava/lang/String;>;")
	require.NoError(t, err)
	assert.Equal(t, "pkg.Outer<T>$Inner<java.lang.String>", ft)
}
