package types

import "testing"

func TestNilAssignableToAnyType(t *testing.T) {
	targets := []*Type{IntType, StrType, NewArray(IntType), NewFunction(VoidType, nil, nil, false)}
	for _, tgt := range targets {
		if !NilType.AssignableTo(tgt) {
			t.Errorf("nil not assignable to %s", tgt)
		}
	}
}

func TestIntByteNarrowingSingleElement(t *testing.T) {
	if !IntType.AssignableTo(ByteType) {
		t.Fatal("int should narrow to byte")
	}
	if !ByteType.AssignableTo(IntType) {
		t.Fatal("byte should widen to int")
	}
}

func TestIntByteArraysAreDistinct(t *testing.T) {
	intArr := NewArray(IntType)
	byteArr := NewArray(ByteType)
	if intArr.Equals(byteArr) {
		t.Fatal("int[] and byte[] must not be equal")
	}
	if intArr.AssignableTo(byteArr) {
		t.Fatal("int[] must not be assignable to byte[] — narrowing is single-element only")
	}
}

func TestFunctionTypeEquality(t *testing.T) {
	a := NewFunction(IntType, []*Type{StrType, BoolType}, nil, false)
	b := NewFunction(IntType, []*Type{StrType, BoolType}, nil, false)
	c := NewFunction(IntType, []*Type{StrType}, nil, false)
	if !a.Equals(b) {
		t.Fatal("structurally identical function types should be equal")
	}
	if a.Equals(c) {
		t.Fatal("function types with different arity should not be equal")
	}
}

func TestArrayTypeString(t *testing.T) {
	if got := NewArray(StrType).String(); got != "str[]" {
		t.Fatalf("String() = %q, want %q", got, "str[]")
	}
}

func TestStaticTypeNameRoundTrip(t *testing.T) {
	name, ok := StaticTypeName(Random)
	if !ok || name != "Random" {
		t.Fatalf("StaticTypeName(Random) = %q,%v", name, ok)
	}
	k, ok := LookupStaticTypeName("Random")
	if !ok || k != Random {
		t.Fatalf("LookupStaticTypeName(%q) = %v,%v", "Random", k, ok)
	}
}
