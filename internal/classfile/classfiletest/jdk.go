package classfiletest

import "javatools/internal/classfile"

const (
	pub      = classfile.AccPublic
	prot     = classfile.AccProtected
	priv     = classfile.AccPrivate
	static   = classfile.AccStatic
	final    = classfile.AccFinal
	abstract = classfile.AccAbstract
	super    = classfile.AccSynchronized // ACC_SUPER
	iface    = classfile.AccInterface | classfile.AccAbstract
)

// JDK returns a tiny slice of the Java class library, enough to drive
// resolution and extraction in tests:
//
//	java.lang.Object, java.lang.String, java.lang.CharSequence, java.lang.Enum,
//	java.util.List, java.util.AbstractList, java.util.ArrayList,
//	java.util.Map, java.util.Map$Entry,
//	java.util.regex.Pattern, java.util.concurrent.TimeUnit
func JDK() []Class {
	return []Class{
		Object(),
		{
			Name:   "java.lang.String",
			Super:  "java.lang.Object",
			Access: pub | final | super,
			Methods: []Method{
				{Access: pub, Name: "<init>", Descriptor: "()V"},
				{Access: pub, Name: "length", Descriptor: "()I"},
				{Access: pub, Name: "isEmpty", Descriptor: "()Z"},
			},
		},
		{
			Name:   "java.lang.CharSequence",
			Super:  "java.lang.Object",
			Access: pub | iface,
			Methods: []Method{
				{Access: pub | abstract, Name: "length", Descriptor: "()I"},
			},
		},
		{
			Name:      "java.lang.Enum",
			Super:     "java.lang.Object",
			Access:    pub | abstract | super,
			Signature: "<E:Ljava/lang/Enum<TE;>;>Ljava/lang/Object;",
			Fields: []Field{
				{Access: priv | final, Name: "name", Descriptor: "Ljava/lang/String;"},
				{Access: priv | final, Name: "ordinal", Descriptor: "I"},
			},
			Methods: []Method{
				{Access: prot, Name: "<init>", Descriptor: "(Ljava/lang/String;I)V"},
				{Access: pub | final, Name: "name", Descriptor: "()Ljava/lang/String;"},
				{Access: pub | final, Name: "ordinal", Descriptor: "()I"},
			},
		},
		{
			Name:      "java.util.List",
			Super:     "java.lang.Object",
			Access:    pub | iface,
			Signature: "<E:Ljava/lang/Object;>Ljava/lang/Object;",
			Methods: []Method{
				{Access: pub | abstract, Name: "size", Descriptor: "()I"},
				{Access: pub | abstract, Name: "get", Descriptor: "(I)Ljava/lang/Object;", Signature: "(I)TE;"},
				{Access: pub | abstract, Name: "add", Descriptor: "(Ljava/lang/Object;)Z", Signature: "(TE;)Z"},
				{Access: pub, Name: "isEmpty", Descriptor: "()Z"},
				{Access: pub | static, Name: "of", Descriptor: "()Ljava/util/List;",
					Signature: "<E:Ljava/lang/Object;>()Ljava/util/List<TE;>;"},
			},
		},
		{
			Name:       "java.util.AbstractList",
			Super:      "java.lang.Object",
			Interfaces: []string{"java.util.List"},
			Access:     pub | abstract | super,
			Signature:  "<E:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/List<TE;>;",
			Fields: []Field{
				{Access: prot | classfile.AccTransient, Name: "modCount", Descriptor: "I"},
			},
			Methods: []Method{
				{Access: prot, Name: "<init>", Descriptor: "()V"},
				{Access: pub | abstract, Name: "get", Descriptor: "(I)Ljava/lang/Object;", Signature: "(I)TE;"},
				{Access: pub, Name: "add", Descriptor: "(Ljava/lang/Object;)Z", Signature: "(TE;)Z"},
				{Access: pub, Name: "hashCode", Descriptor: "()I"},
				{Access: prot, Name: "removeRange", Descriptor: "(II)V"},
			},
		},
		{
			Name:       "java.util.ArrayList",
			Super:      "java.util.AbstractList",
			Interfaces: []string{"java.util.List"},
			Access:     pub | super,
			Signature:  "<E:Ljava/lang/Object;>Ljava/util/AbstractList<TE;>;Ljava/util/List<TE;>;",
			Fields: []Field{
				{Access: priv | static | final, Name: "serialVersionUID", Descriptor: "J", Constant: int64(8683452581122892189)},
				{Access: classfile.AccTransient, Name: "elementData", Descriptor: "[Ljava/lang/Object;"},
				{Access: priv, Name: "size", Descriptor: "I"},
			},
			Methods: []Method{
				{Access: pub, Name: "<init>", Descriptor: "()V"},
				{Access: pub, Name: "<init>", Descriptor: "(I)V"},
				{Access: pub, Name: "get", Descriptor: "(I)Ljava/lang/Object;", Signature: "(I)TE;"},
				{Access: pub, Name: "add", Descriptor: "(Ljava/lang/Object;)Z", Signature: "(TE;)Z"},
				{Access: pub, Name: "size", Descriptor: "()I"},
				{Access: pub, Name: "hashCode", Descriptor: "()I"},
				{Access: priv, Name: "grow", Descriptor: "(I)[Ljava/lang/Object;"},
				{Access: static, Name: "<clinit>", Descriptor: "()V"},
			},
		},
		{
			Name:      "java.util.Map",
			Super:     "java.lang.Object",
			Access:    pub | iface,
			Signature: "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;",
			Methods: []Method{
				{Access: pub | abstract, Name: "size", Descriptor: "()I"},
			},
		},
		{
			Name:      "java.util.Map$Entry",
			Super:     "java.lang.Object",
			Access:    pub | iface,
			Signature: "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;",
			Methods: []Method{
				{Access: pub | abstract, Name: "getKey", Descriptor: "()Ljava/lang/Object;", Signature: "()TK;"},
			},
		},
		{
			Name:   "java.util.regex.Pattern",
			Super:  "java.lang.Object",
			Access: pub | final | super,
			Fields: []Field{
				{Access: pub | static | final, Name: "CASE_INSENSITIVE", Descriptor: "I", Constant: int32(2)},
				{Access: priv, Name: "pattern", Descriptor: "Ljava/lang/String;"},
			},
			Methods: []Method{
				{Access: priv, Name: "<init>", Descriptor: "(Ljava/lang/String;I)V"},
				{Access: pub | static, Name: "compile", Descriptor: "(Ljava/lang/String;)Ljava/util/regex/Pattern;"},
				{Access: pub, Name: "pattern", Descriptor: "()Ljava/lang/String;"},
				{Access: pub, Name: "split", Descriptor: "(Ljava/lang/CharSequence;)[Ljava/lang/String;"},
			},
		},
		{
			Name:      "java.util.concurrent.TimeUnit",
			Super:     "java.lang.Enum",
			Access:    pub | abstract | super | classfile.AccEnum,
			Signature: "Ljava/lang/Enum<Ljava/util/concurrent/TimeUnit;>;",
			Fields: []Field{
				{Access: pub | static | final | classfile.AccEnum, Name: "SECONDS", Descriptor: "Ljava/util/concurrent/TimeUnit;"},
				{Access: pub | static | final | classfile.AccEnum, Name: "MINUTES", Descriptor: "Ljava/util/concurrent/TimeUnit;"},
				{Access: priv | static | final | classfile.AccSynthetic, Name: "$VALUES", Descriptor: "[Ljava/util/concurrent/TimeUnit;"},
			},
			Methods: []Method{
				{Access: pub | static, Name: "values", Descriptor: "()[Ljava/util/concurrent/TimeUnit;"},
				{Access: pub, Name: "toSeconds", Descriptor: "(J)J"},
			},
		},
	}
}
