// Package builtins holds the fixed, table-driven signatures for global
// functions (len/exit/assert) and for static/instance methods on the
// opaque host types (spec §4.G.2). Keying dispatch by (receiver, method
// name) instead of a long conditional chain is the explicit design
// recommendation in spec §9 — "table-driven dispatch keyed by
// (receiver_kind, method_name) ... localize the opaque host-type
// knowledge" — mirrored here the way the teacher splits built-in
// knowledge into one table per receiver family
// (internal/semantic/analyze_builtin_*.go), except declarative rather
// than one Go function per built-in.
package builtins

import "github.com/realorko/sindarin/internal/types"

// Signature describes one callable shape: parameter types in order, and
// a return type. Variadic is true for the tail-expanding form described
// in spec §4.G.2 dispatch path 2.
type Signature struct {
	Params   []*types.Type
	Return   *types.Type
	Variadic bool
}

// GlobalFunctions are the fixed-arity built-ins recognized before regular
// function-call resolution is attempted (spec §4.G.2 path 1). len is
// deliberately absent: its parameter accepts either an array of any
// element type or a str, which this table's single-Signature shape
// cannot express, so the checker special-cases it directly (see
// internal/checker's call-dispatch comment).
var GlobalFunctions = map[string]Signature{
	"exit":   {Params: []*types.Type{types.IntType}, Return: types.VoidType},
	"assert": {Params: []*types.Type{types.BoolType, types.StrType}, Return: types.VoidType},
}

// IsLen reports whether name is the built-in len function.
func IsLen(name string) bool { return name == "len" }

// IsGlobalFunction reports whether name is a built-in global function
// recognized before regular or method call dispatch (len included).
func IsGlobalFunction(name string) bool {
	if IsLen(name) {
		return true
	}
	_, ok := GlobalFunctions[name]
	return ok
}

// methodTable maps a method name to its signature for one receiver.
type methodTable map[string]Signature

// StaticMethods holds the closed `TypeName.method(...)` dispatch table
// (spec §4.G.2 dispatch path 3), keyed by the exact static-method type
// names spec.md names. Host-module names with no Type payload
// (Stdin/Stdout/Stderr/Bytes/Path/Directory/Environment/Interceptor —
// see types.LookupStaticTypeName's sentinel case) are keyed by name
// here rather than by types.Kind, since they have no backing Kind value.
var StaticMethods = map[string]methodTable{
	"TextFile": {
		"open":   {Params: []*types.Type{types.StrType}, Return: types.Primitive(types.TextFile)},
		"create": {Params: []*types.Type{types.StrType}, Return: types.Primitive(types.TextFile)},
	},
	"BinaryFile": {
		"open":   {Params: []*types.Type{types.StrType}, Return: types.Primitive(types.BinaryFile)},
		"create": {Params: []*types.Type{types.StrType}, Return: types.Primitive(types.BinaryFile)},
	},
	"Time": {
		"now": {Params: nil, Return: types.Primitive(types.Time)},
	},
	"Date": {
		"today": {Params: nil, Return: types.Primitive(types.Date)},
		"parse": {Params: []*types.Type{types.StrType}, Return: types.Primitive(types.Date)},
	},
	"Stdin": {
		"readLine": {Params: nil, Return: types.StrType},
	},
	"Stdout": {
		"write":   {Params: []*types.Type{types.StrType}, Return: types.VoidType},
		"writeln": {Params: []*types.Type{types.StrType}, Return: types.VoidType},
	},
	"Stderr": {
		"write":   {Params: []*types.Type{types.StrType}, Return: types.VoidType},
		"writeln": {Params: []*types.Type{types.StrType}, Return: types.VoidType},
	},
	"Bytes": {
		"fromStr": {Params: []*types.Type{types.StrType}, Return: types.NewArray(types.ByteType)},
		"toStr":   {Params: []*types.Type{types.NewArray(types.ByteType)}, Return: types.StrType},
	},
	"Path": {
		"join":     {Params: []*types.Type{types.StrType, types.StrType}, Return: types.StrType, Variadic: true},
		"basename": {Params: []*types.Type{types.StrType}, Return: types.StrType},
		"dirname":  {Params: []*types.Type{types.StrType}, Return: types.StrType},
	},
	"Directory": {
		"exists": {Params: []*types.Type{types.StrType}, Return: types.BoolType},
		"list":   {Params: []*types.Type{types.StrType}, Return: types.NewArray(types.StrType)},
	},
	"Process": {
		"spawn": {Params: []*types.Type{types.StrType}, Return: types.Primitive(types.Process), Variadic: true},
	},
	"TcpListener": {
		"listen": {Params: []*types.Type{types.StrType, types.IntType}, Return: types.Primitive(types.TCPListener)},
	},
	"TcpStream": {
		"connect": {Params: []*types.Type{types.StrType, types.IntType}, Return: types.Primitive(types.TCPStream)},
	},
	"UdpSocket": {
		"bind": {Params: []*types.Type{types.StrType, types.IntType}, Return: types.Primitive(types.UDPSocket)},
	},
	"Random": {
		"seed": {Params: []*types.Type{types.LongType}, Return: types.VoidType},
		"int":  {Params: []*types.Type{types.IntType, types.IntType}, Return: types.IntType},
	},
	"UUID": {
		"generate": {Params: nil, Return: types.Primitive(types.UUID)},
		"parse":    {Params: []*types.Type{types.StrType}, Return: types.Primitive(types.UUID)},
	},
	"Environment": {
		"get": {Params: []*types.Type{types.StrType}, Return: types.StrType},
		"set": {Params: []*types.Type{types.StrType, types.StrType}, Return: types.VoidType},
	},
	"Interceptor": {
		"install": {Params: []*types.Type{types.NewFunction(types.VoidType, nil, nil, false)}, Return: types.VoidType},
	},
}

// LookupStaticMethod resolves a `TypeName.method` static call.
func LookupStaticMethod(typeName, method string) (Signature, bool) {
	tbl, ok := StaticMethods[typeName]
	if !ok {
		return Signature{}, false
	}
	sig, ok := tbl[method]
	return sig, ok
}

// InstanceMethods holds instance-method signatures keyed by receiver
// Kind, covering opaque host-type handles and the array/str builtins
// spec §4.G.2 says "follow the same table-driven shape". randomMethods
// (choice/shuffle/weightedChoice/sample) are deliberately absent: their
// return type depends on the element type of an array argument, so the
// checker resolves them directly rather than through this table (spec
// §4.G.2's explicit carve-out).
var InstanceMethods = map[types.Kind]methodTable{
	types.TextFile: {
		"readLine": {Params: nil, Return: types.StrType},
		"writeLine": {Params: []*types.Type{types.StrType}, Return: types.VoidType},
		"close":    {Params: nil, Return: types.VoidType},
	},
	types.BinaryFile: {
		"read":  {Params: []*types.Type{types.IntType}, Return: types.NewArray(types.ByteType)},
		"write": {Params: []*types.Type{types.NewArray(types.ByteType)}, Return: types.VoidType},
		"close": {Params: nil, Return: types.VoidType},
	},
	types.Time: {
		"format": {Params: []*types.Type{types.StrType}, Return: types.StrType},
	},
	types.Date: {
		"format": {Params: []*types.Type{types.StrType}, Return: types.StrType},
		"addDays": {Params: []*types.Type{types.IntType}, Return: types.Primitive(types.Date)},
	},
	types.Process: {
		"wait": {Params: nil, Return: types.IntType},
		"kill": {Params: nil, Return: types.VoidType},
	},
	types.TCPListener: {
		"accept": {Params: nil, Return: types.Primitive(types.TCPStream)},
		"close":  {Params: nil, Return: types.VoidType},
	},
	types.TCPStream: {
		"send":    {Params: []*types.Type{types.NewArray(types.ByteType)}, Return: types.IntType},
		"receive": {Params: []*types.Type{types.IntType}, Return: types.NewArray(types.ByteType)},
		"close":   {Params: nil, Return: types.VoidType},
	},
	types.UDPSocket: {
		"sendTo":   {Params: []*types.Type{types.NewArray(types.ByteType), types.StrType, types.IntType}, Return: types.IntType},
		"receiveFrom": {Params: []*types.Type{types.IntType}, Return: types.NewArray(types.ByteType)},
		"close":    {Params: nil, Return: types.VoidType},
	},
	types.UUID: {
		"string": {Params: nil, Return: types.StrType},
	},
	types.Array: {
		"push":   {Params: []*types.Type{types.AnyType}, Return: types.VoidType},
		"pop":    {Params: nil, Return: types.AnyType},
		"length": {Params: nil, Return: types.IntType},
	},
	types.Str: {
		"toUpper": {Params: nil, Return: types.StrType},
		"toLower": {Params: nil, Return: types.StrType},
		"trim":    {Params: nil, Return: types.StrType},
		"split":   {Params: []*types.Type{types.StrType}, Return: types.NewArray(types.StrType)},
		"length":  {Params: nil, Return: types.IntType},
	},
}

// LookupInstanceMethod resolves an instance method call dispatched by
// the left-hand receiver's Kind.
func LookupInstanceMethod(kind types.Kind, method string) (Signature, bool) {
	tbl, ok := InstanceMethods[kind]
	if !ok {
		return Signature{}, false
	}
	sig, ok := tbl[method]
	return sig, ok
}

// randomGenericMethods are Random's four methods whose return type is
// resolved by the checker from an array argument's element type, not by
// table lookup (spec §4.G.2).
var randomGenericMethods = map[string]bool{
	"choice":         true,
	"shuffle":        true,
	"weightedChoice": true,
	"sample":         true,
}

// IsRandomGenericMethod reports whether method is one of Random's
// element-type-dependent generic methods.
func IsRandomGenericMethod(method string) bool {
	return randomGenericMethods[method]
}
