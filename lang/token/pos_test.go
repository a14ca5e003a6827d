package token

import "testing"

func TestPosRoundTrip(t *testing.T) {
	cases := []struct{ line, col int }{
		{1, 1}, {1, 80}, {42, 7}, {MaxLines, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		gotLine, gotCol := p.LineCol()
		if gotLine != c.line || gotCol != c.col {
			t.Errorf("MakePos(%d,%d).LineCol() = (%d,%d)", c.line, c.col, gotLine, gotCol)
		}
		if p.Unknown() {
			t.Errorf("MakePos(%d,%d) unexpectedly unknown", c.line, c.col)
		}
	}
}

func TestPosUnknown(t *testing.T) {
	if !Pos(0).Unknown() {
		t.Error("zero Pos should be unknown")
	}
	if MakePos(0, 5).Unknown() == false {
		t.Error("zero line should be unknown")
	}
	if MakePos(5, 0).Unknown() == false {
		t.Error("zero col should be unknown")
	}
}
