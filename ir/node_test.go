package ir

import "testing"

func TestNodeSetGet(t *testing.T) {
	obj := NewObjectNode()
	Set(obj, "a", FromInt(1))
	Set(obj, "b", FromString("x"))
	Set(obj, "a", FromInt(2))

	if len(obj.Fields) != 2 {
		t.Fatalf("got %d fields", len(obj.Fields))
	}
	// upsert preserves insertion order
	if obj.Fields[0].String != "a" || obj.Fields[1].String != "b" {
		t.Errorf("field order %q, %q", obj.Fields[0].String, obj.Fields[1].String)
	}
	a := Get(obj, "a")
	if a == nil || a.Int64 == nil || *a.Int64 != 2 {
		t.Errorf("a = %v", a)
	}
	if Get(obj, "missing") != nil {
		t.Error("expected nil for missing key")
	}
}

func TestNodeKPath(t *testing.T) {
	obj := NewObjectNode()
	arr := NewArrayNode()
	Set(obj, "xs", arr)
	elt := NewObjectNode()
	AppendElt(arr, elt)
	Set(elt, "name", FromString("n"))

	if got := Get(elt, "name").KPath(); got != "xs[0].name" {
		t.Errorf("got %q", got)
	}
}

func TestNodeClone(t *testing.T) {
	obj := NewObjectNode()
	Set(obj, "a", FromInt(1))
	cl := obj.Clone()
	Set(cl, "a", FromInt(9))
	if *Get(obj, "a").Int64 != 1 {
		t.Error("clone aliases original")
	}
}
