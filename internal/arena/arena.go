// Package arena provides a scoped bulk allocator for AST, type, and symbol
// payloads (spec §3.1, §4.A). Addresses returned by an Arena remain valid
// exactly as long as that Arena is live; nested arenas model the lifetime
// of default/private blocks and functions during escape analysis (§4.H).
package arena

// blockSize is the capacity of each backing byte slice. Allocations larger
// than blockSize get their own dedicated block.
const blockSize = 64 * 1024

// Arena is a bump allocator with child arenas for nested lexical scopes.
// It never frees individual allocations — only Destroy releases memory,
// by dropping references to every block it owns.
type Arena struct {
	parent   *Arena
	children []*Arena
	blocks   [][]byte
	cur      []byte
	alive    bool
}

// New creates a root arena with no parent.
func New() *Arena {
	return &Arena{alive: true}
}

// Child creates a new arena nested under a, used for default/private
// blocks and functions (§4.H) whose allocations must not outlive a's scope.
func (a *Arena) Child() *Arena {
	a.mustBeAlive()
	c := &Arena{parent: a, alive: true}
	a.children = append(a.children, c)
	return c
}

// Destroy releases the arena's memory and recursively destroys its
// children. After Destroy, Alloc on this arena (or any live reference
// into it) is fatal — callers never check a nil return, matching §4.A.
func (a *Arena) Destroy() {
	for _, c := range a.children {
		c.Destroy()
	}
	a.children = nil
	a.blocks = nil
	a.cur = nil
	a.alive = false
}

func (a *Arena) mustBeAlive() {
	if !a.alive {
		panic("arena: use of destroyed arena")
	}
}

// Alloc returns size bytes of zeroed, arena-owned storage.
func (a *Arena) Alloc(size int) []byte {
	a.mustBeAlive()
	if size <= 0 {
		return nil
	}
	if size > blockSize {
		block := make([]byte, size)
		a.blocks = append(a.blocks, block)
		return block
	}
	if len(a.cur) < size {
		a.cur = make([]byte, blockSize)
		a.blocks = append(a.blocks, a.cur)
	}
	out := a.cur[:size:size]
	a.cur = a.cur[size:]
	return out
}

// AllocArray returns storage for n elements of elemSize bytes each.
func (a *Arena) AllocArray(n, elemSize int) []byte {
	return a.Alloc(n * elemSize)
}

// Strdup copies s into arena-owned storage and returns the copy.
func (a *Arena) Strdup(s string) string {
	return a.Strndup(s, len(s))
}

// Strndup copies at most n bytes of s into arena-owned storage.
func (a *Arena) Strndup(s string, n int) string {
	if n > len(s) {
		n = len(s)
	}
	buf := a.Alloc(n)
	copy(buf, s[:n])
	return string(buf)
}

// PromoteString copies s from a child arena's storage into a, so the value
// survives the child's Destroy. This backs the escape analyzer's handling
// of values that must outlive a private/default block (§4.H).
func (a *Arena) PromoteString(s string) string {
	return a.Strdup(s)
}

// Promote copies an arbitrary byte-backed value from a child arena into a.
// Callers pass the child's slice; Promote returns a's own copy of it.
func (a *Arena) Promote(value []byte) []byte {
	a.mustBeAlive()
	buf := a.Alloc(len(value))
	copy(buf, value)
	return buf
}

// Alive reports whether the arena has not yet been destroyed.
func (a *Arena) Alive() bool {
	return a.alive
}
