// Package types implements the tagged-sum Type representation from
// spec §3.3: primitives, array(element), function(return, params,
// param_mem_quals, is_variadic), and the opaque host types exposed by
// the standard library surface.
//
// Grounded on the teacher's internal/ast/type_annotation.go and
// internal/ast/type_expression.go, which use a similar closed Kind enum
// plus a recursive ElementType/ReturnType shape for composite types.
package types

import "strings"

// Kind is the closed set of type tags (spec §3.3).
type Kind int

const (
	Int Kind = iota
	Long
	Double
	Char
	Str
	Bool
	Byte
	Void
	Nil
	Any

	Array
	Function

	// Opaque host types.
	TextFile
	BinaryFile
	Date
	Time
	Process
	TCPListener
	TCPStream
	UDPSocket
	Random
	UUID
)

var kindNames = map[Kind]string{
	Int: "int", Long: "long", Double: "double", Char: "char", Str: "str",
	Bool: "bool", Byte: "byte", Void: "void", Nil: "nil", Any: "any",
	Array: "array", Function: "function",
	TextFile: "TextFile", BinaryFile: "BinaryFile", Date: "Date", Time: "Time",
	Process: "Process", TCPListener: "TcpListener", TCPStream: "TcpStream",
	UDPSocket: "UdpSocket", Random: "Random", UUID: "UUID",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// FuncModifier is a function or block's memory-escape modifier
// (spec §3.5/§4.H: default, shared, private).
type FuncModifier int

const (
	ModDefault FuncModifier = iota
	ModShared
	ModPrivate
)

func (m FuncModifier) String() string {
	switch m {
	case ModShared:
		return "shared"
	case ModPrivate:
		return "private"
	default:
		return "default"
	}
}

// MemQual is a parameter or variable memory qualifier (spec §3.5/§4.H).
type MemQual int

const (
	MemDefault MemQual = iota
	MemVal
	MemRef
)

func (m MemQual) String() string {
	switch m {
	case MemVal:
		return "val"
	case MemRef:
		return "ref"
	default:
		return "default"
	}
}

// Type is an immutable, arena-independent description of a value's
// shape. Composite types (Array, Function) embed child Types directly;
// since Type values never mutate after construction sharing them across
// modules is safe even though AST nodes themselves must not be shared
// (spec §3.8).
type Type struct {
	Kind Kind

	// Array
	Elem *Type

	// Function
	Return        *Type
	Params        []*Type
	ParamMemQuals []MemQual // nil means "all default"; else len == len(Params)
	IsVariadic    bool
}

// Primitive constructs a non-composite type for one of the closed
// primitive/opaque kinds.
func Primitive(k Kind) *Type { return &Type{Kind: k} }

// NewArray constructs an array(element) type.
func NewArray(elem *Type) *Type { return &Type{Kind: Array, Elem: elem} }

// NewFunction constructs a function(return, params, quals, variadic) type.
func NewFunction(ret *Type, params []*Type, quals []MemQual, variadic bool) *Type {
	return &Type{Kind: Function, Return: ret, Params: params, ParamMemQuals: quals, IsVariadic: variadic}
}

var (
	IntType    = Primitive(Int)
	LongType   = Primitive(Long)
	DoubleType = Primitive(Double)
	CharType   = Primitive(Char)
	StrType    = Primitive(Str)
	BoolType   = Primitive(Bool)
	ByteType   = Primitive(Byte)
	VoidType   = Primitive(Void)
	NilType    = Primitive(Nil)
	AnyType    = Primitive(Any)
)

// IsPrimitive reports whether t is one of the scalar primitive kinds
// (excludes array, function, and the opaque host types).
func (t *Type) IsPrimitive() bool {
	switch t.Kind {
	case Int, Long, Double, Char, Str, Bool, Byte, Void, Nil, Any:
		return true
	default:
		return false
	}
}

// IsOpaqueHost reports whether t is one of the standard-library host types.
func (t *Type) IsOpaqueHost() bool {
	switch t.Kind {
	case TextFile, BinaryFile, Date, Time, Process, TCPListener, TCPStream, UDPSocket, Random, UUID:
		return true
	default:
		return false
	}
}

// Equals reports structural equality, not identity — composite types
// built independently for the same shape must compare equal.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Array:
		return t.Elem.Equals(other.Elem)
	case Function:
		if t.IsVariadic != other.IsVariadic {
			return false
		}
		if !t.Return.Equals(other.Return) {
			return false
		}
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equals(other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// AssignableTo implements spec §3.3's two coercion invariants: nil is
// assignable to any type, and int/byte narrow for single-element
// assignment only (arrays of byte and int remain distinct).
func (t *Type) AssignableTo(target *Type) bool {
	if t == nil || target == nil {
		return false
	}
	if t.Kind == Nil {
		return true
	}
	if t.Equals(target) {
		return true
	}
	if (t.Kind == Int && target.Kind == Byte) || (t.Kind == Byte && target.Kind == Int) {
		return true
	}
	return false
}

func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case Array:
		return t.Elem.String() + "[]"
	case Function:
		var sb strings.Builder
		sb.WriteString("fn(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		if t.IsVariadic {
			sb.WriteString("...")
		}
		sb.WriteString("): ")
		sb.WriteString(t.Return.String())
		return sb.String()
	default:
		return t.Kind.String()
	}
}

// StaticTypeName returns the type-name prefix used for static method
// dispatch (spec §4.G.2), e.g. "TextFile.open(...)". Only opaque host
// types and Random have static call surfaces.
func StaticTypeName(k Kind) (string, bool) {
	switch k {
	case TextFile, BinaryFile, Date, Time, Process, TCPListener, TCPStream, UDPSocket, Random, UUID:
		return kindNames[k], true
	default:
		return "", false
	}
}

// LookupStaticTypeName is the inverse of StaticTypeName, used by the
// parser/checker when it sees a bare capitalized identifier in call
// position (e.g. "Random", "TcpListener").
func LookupStaticTypeName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	switch name {
	case "Stdin", "Stdout", "Stderr", "Bytes", "Path", "Directory", "Environment", "Interceptor":
		return -1, true // recognized host-module names with no Type payload of their own
	}
	return 0, false
}
