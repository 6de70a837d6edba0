// Package symbols implements the scoped symbol table described in
// spec §3.7 and §4.F: a stack of lexical scopes plus a side map of
// namespaces, used by both the type checker and the escape analyzer.
//
// Grounded on the teacher's internal/semantic/symbol_table.go — the
// parent-chain scope shape (SymbolTable{symbols, outer}), Define/Resolve
// naming, and PushScope/PopScope lifecycle. Sindarin has no overload
// resolution (spec §4.G lists exactly one call-dispatch path per callee
// shape), so the teacher's overload-set machinery is not carried over;
// namespaces and the arena-nesting/thread-freeze bookkeeping spec §4.F
// calls for are added fresh since DWScript has neither.
package symbols

import (
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// Kind classifies what a Symbol denotes (spec §3.7).
type Kind int

const (
	KindLocal Kind = iota
	KindParam
	KindFunction
	KindNamespace
)

func (k Kind) String() string {
	switch k {
	case KindParam:
		return "param"
	case KindFunction:
		return "function"
	case KindNamespace:
		return "namespace"
	default:
		return "local"
	}
}

// Symbol is one entry in a scope or a namespace (spec §3.7).
type Symbol struct {
	Name    string
	Kind    Kind
	Type    *types.Type
	Qual    types.MemQual

	IsFunction        bool
	DeclaredModifier  types.FuncModifier
	EffectiveModifier types.FuncModifier

	// Pending marks a spawn-result handle not yet consumed by sync
	// (spec §4.H thread-safety rules).
	Pending bool
	// FrozenArgs lists the argument symbols frozen for the duration of
	// a spawn; sync unfreezes them (spec §4.F set_frozen_args).
	FrozenArgs []*Symbol
	// Frozen marks this symbol itself as read-only for the duration of
	// a spawn it was passed into (spec §4.H); UnfreezeArgs clears it.
	Frozen bool

	// OwnerDepth records the private-arena nesting depth (Table.arenaDepth)
	// in effect when this symbol was declared, used by the escape
	// analyzer to tell an outer-scope symbol from one declared inside the
	// current private block (spec §4.H escape enforcement).
	OwnerDepth int

	// Pos is the declaration site, set by callers that have one handy
	// (internal/escape); zero-valued for symbols the checker creates,
	// which never needs it.
	Pos token.Position
}

// Scope is one level of lexical nesting: a flat map plus a link to its
// enclosing scope (nil at the global scope).
type Scope struct {
	symbols map[string]*Symbol
	outer   *Scope
}

func newScope(outer *Scope) *Scope {
	return &Scope{symbols: make(map[string]*Symbol), outer: outer}
}

// Table is the symbol table threaded through the checker and escape
// analyzer: a scope stack plus a side map of namespaces, and a counter
// of arena nesting used to track private-block depth.
type Table struct {
	current    *Scope
	namespaces map[string]map[string]*Symbol
	arenaDepth int
}

// New creates a Table with a single (global) scope.
func New() *Table {
	return &Table{
		current:    newScope(nil),
		namespaces: make(map[string]map[string]*Symbol),
	}
}

// PushScope enters a new lexically-nested scope.
func (t *Table) PushScope() {
	t.current = newScope(t.current)
}

// PopScope leaves the current scope, returning to its enclosing one.
// Popping the global scope is a programming error in the caller.
func (t *Table) PopScope() {
	if t.current.outer == nil {
		panic("symbols: PopScope called at global scope")
	}
	t.current = t.current.outer
}

// AddSymbol inserts a local or param symbol into the current scope.
// Returns false if name is already declared in this exact scope
// (duplicate local declaration).
func (t *Table) AddSymbol(name string, kind Kind, typ *types.Type, qual types.MemQual) (*Symbol, bool) {
	if _, exists := t.current.symbols[name]; exists {
		return nil, false
	}
	sym := &Symbol{Name: name, Kind: kind, Type: typ, Qual: qual, OwnerDepth: t.arenaDepth}
	t.current.symbols[name] = sym
	return sym, true
}

// AddFunction inserts a function symbol, special-cased per spec §4.F
// (is_function=true, both declared and effective modifiers tracked).
// Returns false if name is already declared in this scope — this is
// how import collisions surface as duplicate-function errors (spec §7).
func (t *Table) AddFunction(name string, typ *types.Type, declaredMod, effectiveMod types.FuncModifier) (*Symbol, bool) {
	if _, exists := t.current.symbols[name]; exists {
		return nil, false
	}
	sym := &Symbol{
		Name: name, Kind: KindFunction, Type: typ, IsFunction: true,
		DeclaredModifier: declaredMod, EffectiveModifier: effectiveMod,
	}
	t.current.symbols[name] = sym
	return sym, true
}

// Lookup resolves name inner-scope-to-outer, excluding namespaces
// entirely (spec §4.F: "lookup(name) ... namespaces excluded").
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for s := t.current; s != nil; s = s.outer {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// IsDeclaredInCurrentScope reports whether name is bound in the
// innermost scope only, used to detect shadowing-vs-redeclaration.
func (t *Table) IsDeclaredInCurrentScope(name string) bool {
	_, ok := t.current.symbols[name]
	return ok
}

// CurrentScopeSymbols returns every symbol declared directly in the
// innermost scope, for passes that need to inspect scope contents right
// before it is popped (e.g. the escape analyzer's pending-spawn check,
// spec §4.H: "a variable holding a pending non-void spawn must be
// consumed by thread_sync before scope exit").
func (t *Table) CurrentScopeSymbols() []*Symbol {
	syms := make([]*Symbol, 0, len(t.current.symbols))
	for _, s := range t.current.symbols {
		syms = append(syms, s)
	}
	return syms
}

// AddNamespace creates an empty namespace entry. Returns false if the
// namespace already exists.
func (t *Table) AddNamespace(ns string) bool {
	if _, exists := t.namespaces[ns]; exists {
		return false
	}
	t.namespaces[ns] = make(map[string]*Symbol)
	return true
}

// AddToNamespace registers name under namespace ns, creating ns first
// if it does not yet exist.
func (t *Table) AddToNamespace(ns, name string, typ *types.Type, mod types.FuncModifier) *Symbol {
	if _, exists := t.namespaces[ns]; !exists {
		t.namespaces[ns] = make(map[string]*Symbol)
	}
	sym := &Symbol{Name: name, Kind: KindFunction, Type: typ, IsFunction: true, DeclaredModifier: mod, EffectiveModifier: mod}
	t.namespaces[ns][name] = sym
	return sym
}

// LookupNamespace resolves `ns.name`. The namespace map is consulted
// directly and never falls through to the lexical scope chain
// (spec §4.F).
func (t *Table) LookupNamespace(ns, name string) (*Symbol, bool) {
	members, ok := t.namespaces[ns]
	if !ok {
		return nil, false
	}
	sym, ok := members[name]
	return sym, ok
}

// HasNamespace reports whether ns was registered via AddNamespace,
// distinguishing "unknown namespace" from "namespace has no member x"
// for error messages.
func (t *Table) HasNamespace(ns string) bool {
	_, ok := t.namespaces[ns]
	return ok
}

// EnterArena and ExitArena track private-block nesting depth for the
// escape analyzer (spec §4.F). They are a plain counter, not a stack of
// actual *arena.Arena values — the escape analyzer reasons about
// nesting depth, not allocation, and the real arena lifecycle is owned
// by the pipeline driver (internal/arena), not the symbol table.
func (t *Table) EnterArena() { t.arenaDepth++ }
func (t *Table) ExitArena()  { t.arenaDepth-- }

// ArenaDepth reports the current private-block nesting depth; zero
// means the analyzer is not inside any private block.
func (t *Table) ArenaDepth() int { return t.arenaDepth }

// MarkPending flags sym as an unconsumed thread-spawn result.
func MarkPending(sym *Symbol) { sym.Pending = true }

// SetFrozenArgs records which argument symbols a spawn expression froze,
// freezing each of them immediately; sync(handle) later unfreezes them
// via UnfreezeArgs (spec §4.H).
func SetFrozenArgs(sym *Symbol, frozen []*Symbol) {
	sym.FrozenArgs = frozen
	for _, f := range frozen {
		f.Frozen = true
	}
}

// UnfreezeArgs clears sym's Pending flag and the Frozen flag on every
// symbol sym.FrozenArgs recorded, implementing the thread_sync half of
// spec §4.H's freeze/unfreeze rule.
func UnfreezeArgs(sym *Symbol) {
	sym.Pending = false
	for _, f := range sym.FrozenArgs {
		f.Frozen = false
	}
}
