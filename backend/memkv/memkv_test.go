package memkv_test

import (
	"testing"

	"github.com/bobboyms/txstage/backend/memkv"
)

func lessInt(a, b int) bool { return a < b }

func TestMap_PutGetRemove(t *testing.T) {
	m := memkv.NewMap[int, string](lessInt)

	if _, ok := m.Get(1); ok {
		t.Fatalf("Get on empty map should miss")
	}

	m.Put(1, "one")
	v, ok := m.Get(1)
	if !ok || v != "one" {
		t.Fatalf("Get(1) = (%q, %v), want (one, true)", v, ok)
	}

	m.Remove(1)
	if _, ok := m.Get(1); ok {
		t.Fatalf("Get(1) after Remove should miss")
	}
}

func TestMap_KeysSortedAndSnapshot(t *testing.T) {
	m := memkv.NewMap[int, string](lessInt)
	m.Put(3, "c")
	m.Put(1, "a")
	m.Put(2, "b")

	keys := m.Keys()
	want := []int{1, 2, 3}
	if len(keys) != len(want) {
		t.Fatalf("Keys() len = %d, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys()[%d] = %d, want %d", i, keys[i], want[i])
		}
	}

	m.Put(4, "d")
	if len(keys) != 3 {
		t.Fatalf("earlier snapshot must not observe later writes")
	}
}

func TestMap_Clear(t *testing.T) {
	m := memkv.NewMap[int, string](lessInt)
	m.Put(1, "a")
	m.Put(2, "b")
	m.Clear()

	if len(m.Keys()) != 0 {
		t.Fatalf("Keys() after Clear should be empty")
	}
	if _, ok := m.Get(1); ok {
		t.Fatalf("Get after Clear should miss")
	}
}

func TestCell_SetGetClear(t *testing.T) {
	c := memkv.NewCell[string]()

	if _, ok := c.Get(); ok {
		t.Fatalf("Get on empty cell should miss")
	}

	c.Set("hello")
	v, ok := c.Get()
	if !ok || v != "hello" {
		t.Fatalf("Get() = (%q, %v), want (hello, true)", v, ok)
	}

	c.Clear()
	if _, ok := c.Get(); ok {
		t.Fatalf("Get after Clear should miss")
	}
}

func TestLog_AppendExtendGet(t *testing.T) {
	l := memkv.NewLog[int]()

	l.Append(1)
	l.Extend([]int{2, 3, 4})

	if l.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", l.Len())
	}
	for i, want := range []int{1, 2, 3, 4} {
		v, ok := l.Get(i)
		if !ok || v != want {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", i, v, ok, want)
		}
	}
	if _, ok := l.Get(4); ok {
		t.Fatalf("Get(4) should miss on a 4-element log")
	}
}

func TestLog_Clear(t *testing.T) {
	l := memkv.NewLog[int]()
	l.Extend([]int{1, 2, 3})
	l.Clear()

	if l.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", l.Len())
	}
}
