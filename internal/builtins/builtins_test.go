package builtins

import (
	"testing"

	"github.com/realorko/sindarin/internal/types"
)

func TestIsGlobalFunctionRecognizesLenExitAssert(t *testing.T) {
	for _, name := range []string{"len", "exit", "assert"} {
		if !IsGlobalFunction(name) {
			t.Fatalf("expected %q to be recognized as a global function", name)
		}
	}
	if IsGlobalFunction("notABuiltin") {
		t.Fatal("did not expect an arbitrary name to be a global function")
	}
}

func TestLenHasNoFixedSignature(t *testing.T) {
	if _, ok := GlobalFunctions["len"]; ok {
		t.Fatal("len must not have a fixed Signature entry; its arg type varies (array or str)")
	}
}

func TestRandomChoiceIsStaticButGeneric(t *testing.T) {
	if _, ok := LookupStaticMethod("Random", "choice"); ok {
		t.Fatal("Random.choice must not be in the static signature table; it is resolved generically")
	}
	if !IsRandomGenericMethod("choice") {
		t.Fatal("expected choice to be recognized as a Random generic method")
	}
}

func TestStaticMethodLookupRoundTrip(t *testing.T) {
	sig, ok := LookupStaticMethod("TextFile", "open")
	if !ok {
		t.Fatal("expected TextFile.open to resolve")
	}
	if len(sig.Params) != 1 || !sig.Params[0].Equals(types.StrType) {
		t.Fatalf("expected TextFile.open(str), got params %v", sig.Params)
	}
	if sig.Return.Kind != types.TextFile {
		t.Fatalf("expected TextFile.open to return TextFile, got %s", sig.Return)
	}
}

func TestInstanceMethodLookupOnArrayAndString(t *testing.T) {
	if _, ok := LookupInstanceMethod(types.Array, "push"); !ok {
		t.Fatal("expected array.push to resolve")
	}
	if _, ok := LookupInstanceMethod(types.Str, "toUpper"); !ok {
		t.Fatal("expected str.toUpper to resolve")
	}
	if _, ok := LookupInstanceMethod(types.Int, "push"); ok {
		t.Fatal("did not expect int to have any instance methods")
	}
}

func TestUnknownStaticTypeNameFails(t *testing.T) {
	if _, ok := LookupStaticMethod("NotAType", "anything"); ok {
		t.Fatal("expected lookup on an unrecognized static type name to fail")
	}
}
