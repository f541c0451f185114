package converter

import "testing"

func TestMerge_SortsByTimestamp(t *testing.T) {
	converted := []Record{
		{Timestamp: 30, Line: "c"},
		{Timestamp: 10, Line: "a"},
	}
	existing := []Record{
		{Timestamp: 20, Line: "b"},
	}
	out := Merge(converted, existing)
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out[i].Line != want {
			t.Fatalf("out[%d] = %q, want %q", i, out[i].Line, want)
		}
	}
}

func TestMerge_StableForEqualTimestamps(t *testing.T) {
	// Converted records come first in the combined sequence, so on a
	// timestamp tie they must stay ahead of existing records, and records
	// within each source keep their own order.
	converted := []Record{
		{Timestamp: 10, Line: "new-1"},
		{Timestamp: 10, Line: "new-2"},
	}
	existing := []Record{
		{Timestamp: 10, Line: "old-1"},
		{Timestamp: 10, Line: "old-2"},
	}
	out := Merge(converted, existing)
	want := []string{"new-1", "new-2", "old-1", "old-2"}
	if len(out) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i].Line != want[i] {
			t.Fatalf("out[%d] = %q, want %q", i, out[i].Line, want[i])
		}
	}
}

func TestMerge_AdjacencyOnlyDedup(t *testing.T) {
	a := Record{Timestamp: 10, Line: "2023-11-14 22:13:20\t<alice>\thi"}
	b := Record{Timestamp: 11, Line: "2023-11-14 22:13:21\t<bob>\tyo"}
	// Same line text as a but a later timestamp: sorts after b, so it is not
	// adjacent to the first pair and must survive.
	a2 := Record{Timestamp: 12, Line: a.Line}

	out := Merge([]Record{a, a, b, a2}, nil)
	if len(out) != 3 {
		t.Fatalf("expected 3 records after dedup, got %d", len(out))
	}
	if out[0] != a || out[1] != b || out[2] != a2 {
		t.Fatalf("unexpected dedup result: %+v", out)
	}
}

func TestMerge_FullLineEqualityNotJustTimestamp(t *testing.T) {
	a := Record{Timestamp: 10, Line: "2023-11-14 22:13:20\t<alice>\thi"}
	b := Record{Timestamp: 10, Line: "2023-11-14 22:13:20\t<alice>\thi again"}
	out := Merge([]Record{a}, []Record{b})
	if len(out) != 2 {
		t.Fatalf("records sharing a timestamp but differing in content must both survive, got %d", len(out))
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	if out := Merge(nil, nil); len(out) != 0 {
		t.Fatalf("expected empty merge, got %d records", len(out))
	}
	a := Record{Timestamp: 10, Line: "x"}
	if out := Merge(nil, []Record{a}); len(out) != 1 || out[0] != a {
		t.Fatalf("expected existing record to pass through, got %+v", out)
	}
}
