package classfile_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javatools/internal/classfile"
	"javatools/internal/classfile/classfiletest"
)

func TestParseHeaderAndMembers(t *testing.T) {
	c := classfiletest.Class{
		Name:       "java.util.ArrayList",
		Super:      "java.util.AbstractList",
		Interfaces: []string{"java.util.List", "java.util.RandomAccess"},
		Access:     classfile.AccPublic | classfile.AccSynchronized,
		Signature:  "<E:Ljava/lang/Object;>Ljava/util/AbstractList<TE;>;Ljava/util/List<TE;>;Ljava/util/RandomAccess;",
		Fields: []classfiletest.Field{
			{Access: classfile.AccPrivate | classfile.AccStatic | classfile.AccFinal, Name: "DEFAULT_CAPACITY", Descriptor: "I", Constant: int32(10)},
			{Access: classfile.AccPrivate | classfile.AccStatic | classfile.AccFinal, Name: "serialVersionUID", Descriptor: "J", Constant: int64(8683452581122892189)},
			{Access: classfile.AccTransient, Name: "elementData", Descriptor: "[Ljava/lang/Object;"},
		},
		Methods: []classfiletest.Method{
			{Access: classfile.AccPublic, Name: "<init>", Descriptor: "(I)V"},
			{Access: classfile.AccPublic, Name: "get", Descriptor: "(I)Ljava/lang/Object;", Signature: "(I)TE;"},
		},
	}

	cf, err := classfile.Parse(c.Bytes())
	require.NoError(t, err)

	assert.Equal(t, "java/util/ArrayList", cf.ThisClass)
	assert.Equal(t, "java/util/AbstractList", cf.SuperClass)
	assert.Equal(t, []string{"java/util/List", "java/util/RandomAccess"}, cf.Interfaces)
	assert.True(t, cf.Access.Has(classfile.AccPublic))

	require.Len(t, cf.Fields, 3)
	assert.Equal(t, int32(10), cf.Fields[0].ConstantValue)
	assert.Equal(t, int64(8683452581122892189), cf.Fields[1].ConstantValue)
	assert.Nil(t, cf.Fields[2].ConstantValue)

	require.Len(t, cf.Methods, 2)
	assert.Equal(t, "<init>", cf.Methods[0].Name)
	assert.Equal(t, "(I)TE;", cf.Methods[1].Signature)
}

func TestParseConstantsAndExceptions(t *testing.T) {
	c := classfiletest.Class{
		Name:  "demo.Consts",
		Super: "java.lang.Object",
		Fields: []classfiletest.Field{
			{Access: classfile.AccStatic | classfile.AccFinal, Name: "PI", Descriptor: "D", Constant: 3.5},
			{Access: classfile.AccStatic | classfile.AccFinal, Name: "RATIO", Descriptor: "F", Constant: float32(0.25)},
			{Access: classfile.AccStatic | classfile.AccFinal, Name: "GREETING", Descriptor: "Ljava/lang/String;", Constant: "héllo \U0001F600 \x00end"},
		},
		Methods: []classfiletest.Method{
			{Access: classfile.AccPublic, Name: "read", Descriptor: "()V", Exceptions: []string{"java.io.IOException", "java.lang.InterruptedException"}},
		},
	}
	cf, err := classfile.Parse(c.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 3.5, cf.Fields[0].ConstantValue)
	assert.Equal(t, float32(0.25), cf.Fields[1].ConstantValue)
	assert.Equal(t, "héllo \U0001F600 \x00end", cf.Fields[2].ConstantValue)
	assert.Equal(t, []string{"java/io/IOException", "java/lang/InterruptedException"}, cf.Methods[0].Exceptions)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := classfile.Parse([]byte{0xCA, 0xFE})
	require.Error(t, err)
	assert.True(t, errors.Is(err, classfile.ErrFormat))

	good := classfiletest.Class{Name: "a.B", Super: "java.lang.Object"}.Bytes()
	_, err = classfile.Parse(good[:len(good)-3])
	require.Error(t, err)
	assert.True(t, errors.Is(err, classfile.ErrFormat))
}

func TestBinaryName(t *testing.T) {
	assert.Equal(t, "java.util.Map$Entry", classfile.BinaryName("java/util/Map$Entry"))
	assert.Equal(t, "java/util/Map$Entry", classfile.InternalName("java.util.Map$Entry"))
}

func TestModifierString(t *testing.T) {
	flags := classfile.AccPublic | classfile.AccStatic | classfile.AccFinal | classfile.AccVarargs
	assert.Equal(t, "public static final", classfile.ModifierString(flags&classfile.MethodModifiers))
	assert.Equal(t, "private transient", classfile.ModifierString((classfile.AccPrivate|classfile.AccTransient)&classfile.FieldModifiers))
}
