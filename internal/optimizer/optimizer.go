// Package optimizer implements the AST-rewrite pass spec §4.I describes:
// a single post-type-check walk that removes unreachable statements,
// folds algebraic identities, drops dead variables, marks tail calls,
// and merges adjacent string literals. Every operation is composable
// and idempotent — running Optimize twice on the same module finds
// nothing left to do the second time.
//
// Structured as one file per concern (identities.go, deadcode.go,
// tailcall.go) the way the teacher splits internal/semantic into
// analyze_statements.go/analyze_types.go/analyze_builtin_*.go rather
// than one large visitor; there is no direct teacher analog for AST
// rewriting itself (DWScript's optimizations, if any, live in its
// bytecode interpreter, out of scope here per §1).
package optimizer

import "github.com/realorko/sindarin/internal/ast"

// Counters records how many rewrites each pass performed, for testing
// (spec §4.I's closing paragraph).
type Counters struct {
	StatementsRemoved    int
	VariablesRemoved     int
	NoopsRemoved         int
	TailCallsOptimized   int
	StringLiteralsMerged int
}

// Optimizer runs the full rewrite pipeline over a checked module.
type Optimizer struct {
	Counters Counters
}

func New() *Optimizer {
	return &Optimizer{}
}

// Optimize rewrites mod in place.
func (o *Optimizer) Optimize(mod *ast.Module) {
	for _, st := range mod.Statements {
		o.optimizeStmt(st, "")
	}
	mod.Statements = removeUnreachable(mod.Statements, &o.Counters)
	mod.Statements = removeDeadVars(mod.Statements, &o.Counters)
}

// optimizeFunction processes a function's body with its own name as
// the tail-call owner (spec §4.I pass 4).
func (o *Optimizer) optimizeFunction(fn *ast.FunctionStmt) {
	for _, st := range fn.Body {
		o.optimizeStmt(st, fn.Name)
	}
	fn.Body = removeUnreachable(fn.Body, &o.Counters)
	fn.Body = removeDeadVars(fn.Body, &o.Counters)
}

// optimizeBlock processes a nested block, keeping the enclosing
// function's name as the tail-call owner.
func (o *Optimizer) optimizeBlock(b *ast.BlockStmt, owner string) {
	if b == nil {
		return
	}
	for _, st := range b.Statements {
		o.optimizeStmt(st, owner)
	}
	b.Statements = removeUnreachable(b.Statements, &o.Counters)
	b.Statements = removeDeadVars(b.Statements, &o.Counters)
}

// optimizeStmt rewrites a single statement's expressions and recurses
// into its control-flow children. owner is the name of the innermost
// enclosing named function, used for tail-call marking ("" at module
// top level, where a return can't self-recurse).
func (o *Optimizer) optimizeStmt(stmt ast.Statement, owner string) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		s.Expr = o.rewriteExpr(s.Expr)
	case *ast.VarDeclStmt:
		if s.Initializer != nil {
			s.Initializer = o.rewriteExpr(s.Initializer)
		}
	case *ast.FunctionStmt:
		o.optimizeFunction(s)
	case *ast.ReturnStmt:
		if s.Value != nil {
			s.Value = o.rewriteExpr(s.Value)
			o.markTailCall(s.Value, owner)
		}
	case *ast.IfStmt:
		s.Condition = o.rewriteExpr(s.Condition)
		o.optimizeBlock(s.Then, owner)
		if s.Else != nil {
			o.optimizeStmt(s.Else, owner)
		}
	case *ast.WhileStmt:
		s.Condition = o.rewriteExpr(s.Condition)
		o.optimizeBlock(s.Body, owner)
	case *ast.ForStmt:
		if s.Init != nil {
			o.optimizeStmt(s.Init, owner)
		}
		if s.Condition != nil {
			s.Condition = o.rewriteExpr(s.Condition)
		}
		if s.Post != nil {
			o.optimizeStmt(s.Post, owner)
		}
		o.optimizeBlock(s.Body, owner)
	case *ast.ForEachStmt:
		s.Iterable = o.rewriteExpr(s.Iterable)
		o.optimizeBlock(s.Body, owner)
	case *ast.BlockStmt:
		o.optimizeBlock(s, owner)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.ImportStmt:
		// No expressions, no children.
	}
}
