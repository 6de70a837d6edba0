package checker

import (
	"github.com/realorko/sindarin/internal/ast"
	"github.com/realorko/sindarin/internal/symbols"
	"github.com/realorko/sindarin/internal/types"
	"github.com/realorko/sindarin/pkg/token"
)

// checkStmt dispatches by statement kind (spec §4.G.3).
func (c *Checker) checkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		c.checkExpr(s.Expr)
	case *ast.VarDeclStmt:
		c.checkVarDecl(s)
	case *ast.FunctionStmt:
		c.checkFunctionStmt(s)
	case *ast.ReturnStmt:
		c.checkReturnStmt(s)
	case *ast.IfStmt:
		c.checkIfStmt(s)
	case *ast.WhileStmt:
		c.checkWhileStmt(s)
	case *ast.ForStmt:
		c.checkForStmt(s)
	case *ast.ForEachStmt:
		c.checkForEachStmt(s)
	case *ast.BlockStmt:
		c.checkBlock(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// no typing obligations
	case *ast.ImportStmt:
		c.checkImportStmt(s)
	default:
		c.addError(TypeError, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

// checkVarDecl implements spec §4.G.3's var_decl rule: when both a
// declared type and an initializer are present they must match; when
// only the initializer is present its type becomes the declared type.
func (c *Checker) checkVarDecl(s *ast.VarDeclStmt) {
	var declared *types.Type
	if s.DeclaredType != nil {
		declared = c.resolveTypeExpr(s.DeclaredType)
	}

	var initType *types.Type
	if s.Initializer != nil {
		if lam, ok := s.Initializer.(*ast.LambdaExpr); ok && declared != nil && declared.Kind == types.Function {
			initType = c.checkLambda(lam, declared)
			lam.SetType(initType)
		} else {
			initType = c.checkExpr(s.Initializer)
		}
		if declared != nil && initType != nil && !c.typeAssignable(initType, declared) {
			c.addError(TypeError, s.Pos(), "cannot assign %s to variable %q declared as %s", initType, s.Name, declared)
		}
	}

	finalType := declared
	if finalType == nil {
		finalType = initType
	}
	if finalType == nil {
		c.addError(TypeError, s.Pos(), "variable %q needs a declared type or an initializer", s.Name)
		finalType = types.VoidType
	}

	c.checkQualifier(s.Qual, finalType, s.Pos())
	if _, ok := c.table.AddSymbol(s.Name, symbols.KindLocal, finalType, s.Qual); !ok {
		c.addError(ResolutionError, s.Pos(), "%q is already declared in this scope", s.Name)
	}
}

// checkFunctionStmt type-checks a function declaration's body. Top-level
// declarations are already registered by registerFunctions before this
// runs; nested function statements register themselves here.
func (c *Checker) checkFunctionStmt(fn *ast.FunctionStmt) {
	var fnType *types.Type
	if sym, ok := c.table.Lookup(fn.Name); ok && sym.IsFunction && sym.Type != nil {
		fnType = sym.Type
	} else {
		fnType = c.functionType(fn)
		if _, ok := c.table.AddFunction(fn.Name, fnType, fn.Modifier, fn.Modifier); !ok {
			c.addError(ResolutionError, fn.Pos(), "function %q is already declared in this scope", fn.Name)
		}
	}

	c.table.PushScope()
	for i, p := range fn.Params {
		ptype := fnType.Params[i]
		c.checkQualifier(p.Qual, ptype, p.Tok.Pos)
		c.table.AddSymbol(p.Name, symbols.KindParam, ptype, p.Qual)
	}
	c.returnStack = append(c.returnStack, fnType.Return)
	c.registerFunctions(fn.Body)
	for _, st := range fn.Body {
		c.checkStmt(st)
	}
	c.returnStack = c.returnStack[:len(c.returnStack)-1]
	c.table.PopScope()
}

// checkReturnStmt enforces spec §4.G.3's return rule: the value's type
// must equal the enclosing function's return type, and a bare return is
// only legal when that return type is void.
func (c *Checker) checkReturnStmt(s *ast.ReturnStmt) {
	want := types.VoidType
	if len(c.returnStack) > 0 {
		want = c.returnStack[len(c.returnStack)-1]
	}
	if s.Value == nil {
		if want.Kind != types.Void {
			c.addError(TypeError, s.Pos(), "missing return value; enclosing function returns %s", want)
		}
		return
	}
	got := c.checkExpr(s.Value)
	if got != nil && !c.typeAssignable(got, want) {
		c.addError(TypeError, s.Pos(), "return value of type %s does not match function return type %s", got, want)
	}
}

func (c *Checker) checkIfStmt(s *ast.IfStmt) {
	c.requireBool(s.Condition, "if condition")
	c.checkBlock(s.Then)
	if s.Else != nil {
		c.checkStmt(s.Else)
	}
}

func (c *Checker) checkWhileStmt(s *ast.WhileStmt) {
	c.requireBool(s.Condition, "while condition")
	c.checkBlock(s.Body)
}

func (c *Checker) checkForStmt(s *ast.ForStmt) {
	c.table.PushScope()
	if s.Init != nil {
		c.checkStmt(s.Init)
	}
	if s.Condition != nil {
		c.requireBool(s.Condition, "for condition")
	}
	if s.Post != nil {
		c.checkStmt(s.Post)
	}
	c.checkBlock(s.Body)
	c.table.PopScope()
}

// checkForEachStmt implements spec §4.G.3's for-each rule: the iterable
// must be an array, and the iteration variable binds as a PARAM-kind
// symbol (a borrowed reference, not an owned local).
func (c *Checker) checkForEachStmt(s *ast.ForEachStmt) {
	iterType := c.checkExpr(s.Iterable)
	elemType := types.AnyType
	if iterType != nil {
		if iterType.Kind != types.Array {
			c.addError(TypeError, s.Iterable.Pos(), "for-each iterable must be an array, got %s", iterType)
		} else {
			elemType = iterType.Elem
		}
	}
	c.table.PushScope()
	c.table.AddSymbol(s.VarName, symbols.KindParam, elemType, types.MemDefault)
	c.checkBlock(s.Body)
	c.table.PopScope()
}

func (c *Checker) checkBlock(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	c.table.PushScope()
	if b.Modifier == types.ModPrivate {
		c.table.EnterArena()
	}
	c.registerFunctions(b.Statements)
	for _, st := range b.Statements {
		c.checkStmt(st)
	}
	if b.Modifier == types.ModPrivate {
		c.table.ExitArena()
	}
	c.table.PopScope()
}

// checkImportStmt implements spec §4.G.3's import rule. A non-namespaced
// import merges the target module's top-level functions into the
// current scope (each re-checked); a namespaced import registers them
// under that namespace only, and the namespace name must not collide
// with an existing name or a reserved keyword.
func (c *Checker) checkImportStmt(s *ast.ImportStmt) {
	if s.Module == nil {
		// Left unresolved by the loader (e.g. a standalone checker test);
		// nothing further to check at this layer.
		return
	}
	if s.Namespace == "" {
		for _, st := range s.Module.Statements {
			if fn, ok := st.(*ast.FunctionStmt); ok {
				c.checkFunctionStmt(fn)
			}
		}
		return
	}

	if token.IsKeyword(s.Namespace) {
		c.addError(ImportError, s.Pos(), "namespace %q collides with a reserved keyword", s.Namespace)
		return
	}
	if _, exists := c.table.Lookup(s.Namespace); exists {
		c.addError(ImportError, s.Pos(), "namespace %q collides with an existing name", s.Namespace)
		return
	}
	c.table.AddNamespace(s.Namespace)
	for _, st := range s.Module.Statements {
		fn, ok := st.(*ast.FunctionStmt)
		if !ok {
			continue
		}
		fnType := c.functionType(fn)
		c.table.AddToNamespace(s.Namespace, fn.Name, fnType, fn.Modifier)
	}
}

func (c *Checker) requireBool(e ast.Expression, what string) {
	t := c.checkExpr(e)
	if t != nil && t.Kind != types.Bool {
		c.addError(TypeError, e.Pos(), "%s must be bool, got %s", what, t)
	}
}

func (c *Checker) requireInt(e ast.Expression, what string) {
	t := c.checkExpr(e)
	if t != nil && t.Kind != types.Int {
		c.addError(TypeError, e.Pos(), "%s must be int, got %s", what, t)
	}
}
