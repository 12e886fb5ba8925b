package formtree

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRecordPreservesInsertionOrder(t *testing.T) {
	rec := Record()
	rec.Set("z", String("last-first"))
	rec.Set("a", String("second"))
	rec.Set("m", String("third"))
	rec.Set("z", String("replaced"))

	keys := rec.Keys()
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}
	got, ok := rec.Get("z")
	if !ok || got.Str != "replaced" {
		t.Fatalf("expected replaced value at z, got %+v", got)
	}
}

func TestEncodeEmitsFieldsInOrder(t *testing.T) {
	rec := Record()
	rec.Set("firstname", String("Jane"))
	rec.Set("lastname", String("Doe"))
	rec.Set("is_swe", Bool(true))
	rec.Set("years", Number(3))
	rec.Set("website", Null())

	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"firstname":"Jane","lastname":"Doe","is_swe":true,"years":3,"website":null}`
	if buf.String() != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", buf.String(), want)
	}
}

func TestEncodeDateLeafISO(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Date(time.Date(2024, time.March, 5, 13, 45, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.String() != `"2024-03-05"` {
		t.Fatalf("unexpected date encoding: %s", buf.String())
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	doc := `{"info":{"firstname":"Jane","domains":["backend","infra"],"is_swe":true},"sections":{"experience":{"include":true,"items":[]}}}`

	node, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, node); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.String() != doc {
		t.Fatalf("round trip not byte-stable:\n got %s\nwant %s", buf.String(), doc)
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"a":1} {"b":2}`)); err == nil {
		t.Fatal("expected trailing-data error")
	}
}

func TestMapLeavesRewritesOnlyLeaves(t *testing.T) {
	rec := Record()
	rec.Set("start", String("2020-01-01"))
	rec.Set("nested", List(String("2021-02-03"), String("keep")))

	out := MapLeaves(rec, func(n Node) Node {
		if n.Kind == KindString {
			if d, ok := ParseDate(n.Str); ok {
				return Date(d)
			}
		}
		return n
	})

	start, _ := out.Get("start")
	if start.Kind != KindDate {
		t.Fatalf("expected start converted to date, got kind %d", start.Kind)
	}
	nested, _ := out.Get("nested")
	if nested.Items[0].Kind != KindDate || nested.Items[1].Kind != KindString {
		t.Fatalf("unexpected nested kinds: %d, %d", nested.Items[0].Kind, nested.Items[1].Kind)
	}
	// Input is untouched.
	orig, _ := rec.Get("start")
	if orig.Kind != KindString {
		t.Fatalf("input mutated: kind %d", orig.Kind)
	}
}

func TestEqualIgnoresRecordKeyOrder(t *testing.T) {
	a := Record()
	a.Set("x", Number(1))
	a.Set("y", Number(2))

	b := Record()
	b.Set("y", Number(2))
	b.Set("x", Number(1))

	if !Equal(a, b) {
		t.Fatal("expected records equal regardless of key order")
	}

	b.Set("y", Number(3))
	if Equal(a, b) {
		t.Fatal("expected inequality after value change")
	}
}
