package checker

import (
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// checkQualifier validates a declared `as val`/`as ref` memory qualifier
// against the type it annotates.
//
// `as ref` only makes sense on a primitive (spec §4.H: "private block
// ... as ref passes primitives by reference"); requesting it on an
// array or function value, which are already reference-like, is
// flagged so the source reads as a mistake rather than silently
// ignored.
//
// `as val` on a primitive is spec.md Open Question (c), resolved in
// favor of silent acceptance (kept for source compatibility with call
// sites written before a parameter's type was narrowed to a primitive)
// — no warning is emitted here, deliberately.
func (c *Checker) checkQualifier(qual types.MemQual, t *types.Type, pos token.Position) {
	if qual != types.MemRef || t == nil {
		return
	}
	if !t.IsPrimitive() {
		c.addError(TypeError, pos, "'as ref' only applies to primitive types, got %s", t)
	}
}
