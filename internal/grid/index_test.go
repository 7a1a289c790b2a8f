package grid

import (
	"encoding/json"
	"testing"
)

func TestWordCells(t *testing.T) {
	w := Word{Number: 1, Orientation: Down, Row: 2, Col: 3, Answer: "CAT"}
	cells := w.Cells()
	want := []Coord{{2, 3}, {3, 3}, {4, 3}}
	if len(cells) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(cells))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d: expected %v, got %v", i, want[i], cells[i])
		}
	}
	if !w.Contains(Coord{4, 3}) || w.Contains(Coord{5, 3}) || w.Contains(Coord{3, 4}) {
		t.Fatal("Contains disagrees with Cells")
	}
	if w.IndexOf(Coord{3, 3}) != 1 {
		t.Fatalf("expected index 1, got %d", w.IndexOf(Coord{3, 3}))
	}
}

func TestBuildIntersection(t *testing.T) {
	idx := Build([]Word{
		{Number: 1, Orientation: Down, Row: 0, Col: 0, Answer: "CAT"},
		{Number: 2, Orientation: Across, Row: 0, Col: 0, Answer: "CAR"},
	})

	if len(idx.Occupied) != 5 {
		t.Fatalf("expected 5 occupied cells, got %d", len(idx.Occupied))
	}
	if len(idx.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", idx.Conflicts)
	}
	if idx.Expected[Coord{0, 0}] != 'C' || idx.Expected[Coord{2, 0}] != 'T' || idx.Expected[Coord{0, 2}] != 'R' {
		t.Fatal("unexpected expected letters")
	}
	// Shared origin keeps only the later number.
	if idx.NumberAt[Coord{0, 0}] != 2 {
		t.Fatalf("expected number 2 at origin, got %d", idx.NumberAt[Coord{0, 0}])
	}
}

func TestBuildConflictFirstWriterWins(t *testing.T) {
	idx := Build([]Word{
		{Number: 1, Orientation: Across, Row: 1, Col: 1, Answer: "AB"},
		{Number: 2, Orientation: Down, Row: 1, Col: 2, Answer: "XY"},
		{Number: 3, Orientation: Down, Row: 0, Col: 1, Answer: "QZ"},
	})

	if len(idx.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(idx.Conflicts))
	}
	c := idx.Conflicts[0]
	if c.Cell != (Coord{1, 2}) || c.Expected != 'B' || c.Conflicting != 'X' {
		t.Fatalf("unexpected first conflict %+v", c)
	}
	if idx.Expected[Coord{1, 2}] != 'B' {
		t.Fatal("conflict must not overwrite the first letter")
	}
	if idx.Conflicts[1].Cell != (Coord{1, 1}) {
		t.Fatalf("unexpected second conflict %+v", idx.Conflicts[1])
	}
}

func TestBuildOneConflictPerPair(t *testing.T) {
	// Three words through one cell: W1=A, W2=B, W3=C. Recorded against the
	// first writer only, so the (A,B) and (A,C) pairs each appear once.
	idx := Build([]Word{
		{Number: 1, Orientation: Across, Row: 0, Col: 0, Answer: "A"},
		{Number: 2, Orientation: Down, Row: 0, Col: 0, Answer: "B"},
		{Number: 3, Orientation: Across, Row: 0, Col: 0, Answer: "C"},
	})
	if len(idx.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(idx.Conflicts))
	}
}

func TestRender(t *testing.T) {
	idx := Build([]Word{{Number: 1, Orientation: Across, Row: 0, Col: 1, Answer: "HI"}})
	got := idx.Render(3, map[Coord]byte{{0, 1}: 'H'})
	want := "#H.\n###\n###"
	if got != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestOrientationJSON(t *testing.T) {
	var w Word
	if err := json.Unmarshal([]byte(`{"number":1,"orientation":"down","row":0,"col":4}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Orientation != Down {
		t.Fatalf("expected down, got %v", w.Orientation)
	}
	var o Orientation
	if err := json.Unmarshal([]byte(`"diagonal"`), &o); err == nil {
		t.Fatal("expected error for unknown orientation")
	}
}
