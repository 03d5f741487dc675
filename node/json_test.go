package node

import (
	"strings"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	n := New()
	SetSlice(n.Fetch("coords/x"), []float64{0, 1, 2.5})
	SetSlice(n.Fetch("coords/y"), []int32{-1, 0, 1})
	Set(n.Fetch("count"), uint64(7))
	n.Fetch("name").SetString("grid")
	Set(n.Fetch("items").Append(), int64(3))
	n.Fetch("items").Append().SetString("two")

	parsed, err := ParseJSON(n.JSON())
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	info := New()
	if n.Diff(parsed, info, 0, false) {
		t.Fatalf("round trip changed the tree:\n%s", info)
	}

	// kinds must survive exactly, not just values
	if parsed.Fetch("coords/y").Kind() != Int32 {
		t.Errorf("y kind %s, want int32", parsed.Fetch("coords/y").Kind())
	}
	if parsed.Fetch("count").Kind() != UInt64 {
		t.Errorf("count kind %s, want uint64", parsed.Fetch("count").Kind())
	}
}

func TestJSONPreservesChildOrder(t *testing.T) {
	n := New()
	for _, name := range []string{"zeta", "alpha", "omega"} {
		Set(n.Fetch(name), int64(1))
	}
	parsed, err := ParseJSON(n.JSON())
	if err != nil {
		t.Fatal(err)
	}
	got := parsed.ChildNames()
	want := []string{"zeta", "alpha", "omega"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestJSONAnnotatedForm(t *testing.T) {
	n := New()
	SetSlice(n, []int16{1, 2})
	s := n.JSON()
	if !strings.Contains(s, `"dtype": "int16"`) {
		t.Errorf("annotated form missing dtype: %s", s)
	}
	if !strings.Contains(s, `"number_of_elements": 2`) {
		t.Errorf("annotated form missing count: %s", s)
	}
}

func TestParsePlainJSON(t *testing.T) {
	parsed, err := ParseJSON(`{"a": 1, "b": [1.5, 2.5], "c": "hi", "d": null}`)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Fetch("a").Kind() != Int64 {
		t.Errorf("a kind %s, want int64", parsed.Fetch("a").Kind())
	}
	if parsed.Fetch("b").Kind() != Float64 {
		t.Errorf("b kind %s, want float64", parsed.Fetch("b").Kind())
	}
	if got := parsed.FetchString("c"); got != "hi" {
		t.Errorf("c = %q, want hi", got)
	}
	if parsed.Fetch("d").Kind() != Empty {
		t.Errorf("d kind %s, want empty", parsed.Fetch("d").Kind())
	}
}

func TestEmptyNodeJSON(t *testing.T) {
	n := New()
	if n.JSON() != "null" {
		t.Errorf("empty node renders %q, want null", n.JSON())
	}
	parsed, err := ParseJSON("null")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Kind() != Empty {
		t.Errorf("parsed null is %s, want empty", parsed.Kind())
	}
}
