package vt

import "testing"

func TestCursorPosition(t *testing.T) {
	cases := []struct {
		input            string
		wantCol, wantRow int
	}{
		{"\x1b[H", 0, 0},
		{"\x1b[1;1H", 0, 0},
		{"\x1b[3;5H", 4, 2},
		{"\x1b[3;5f", 4, 2}, // HVP is CUP's twin
		{"\x1b[0;0H", 0, 0},
		{"\x1b[99;99H", 9, 4}, // clamped to the grid
		{"\x1b[2H", 0, 1},     // missing column defaults to 1
	}

	for i, c := range cases {
		s := NewScreen(10, 5)
		s.WriteString(c.input)
		col, row := s.Cursor()
		if col != c.wantCol || row != c.wantRow {
			t.Errorf("%d: cursor at (%d, %d), wanted (%d, %d)", i, col, row, c.wantCol, c.wantRow)
		}
	}
}

func TestCursorMovement(t *testing.T) {
	cases := []struct {
		input            string
		wantCol, wantRow int
	}{
		{"\x1b[3;3H\x1b[A", 2, 1},
		{"\x1b[3;3H\x1b[2A", 2, 0},
		{"\x1b[3;3H\x1b[9A", 2, 0}, // clamped, no wraparound
		{"\x1b[3;3H\x1b[B", 2, 3},
		{"\x1b[3;3H\x1b[9B", 2, 4},
		{"\x1b[3;3H\x1b[C", 3, 2},
		{"\x1b[3;3H\x1b[9C", 9, 2},
		{"\x1b[3;3H\x1b[D", 1, 2},
		{"\x1b[3;3H\x1b[9D", 0, 2},
		{"\x1b[3;3H\x1b[0C", 3, 2}, // explicit 0 still moves by 1
	}

	for i, c := range cases {
		s := NewScreen(10, 5)
		s.WriteString(c.input)
		col, row := s.Cursor()
		if col != c.wantCol || row != c.wantRow {
			t.Errorf("%d: cursor at (%d, %d), wanted (%d, %d)", i, col, row, c.wantCol, c.wantRow)
		}
	}
}

func TestCursorPositionThenText(t *testing.T) {
	s := NewScreen(20, 5)
	s.WriteString("\x1b[1;1HHello")

	sn := s.Snapshot()
	if got := sn.Text(0, 0, 5); got != "Hello" {
		t.Errorf("got %q, wanted %q", got, "Hello")
	}
}

func TestEraseDisplay(t *testing.T) {
	s := NewScreen(5, 3)
	s.WriteString("aaaaa\x1b[2;1Hbbbbb\x1b[3;1Hccccc")
	s.WriteString("\x1b[2J")

	sn := s.Snapshot()
	for r := 0; r < 3; r++ {
		if got := sn.Line(r); got != "" {
			t.Errorf("row %d is %q after ED 2, wanted blank", r, got)
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			cell, _ := sn.Cell(c, r)
			if !cell.equal(defaultCell()) {
				t.Errorf("cell (%d, %d) is %v, wanted default", c, r, cell)
			}
		}
	}
	if col, row := sn.Cursor(); col != 0 || row != 0 {
		t.Errorf("cursor at (%d, %d) after ED 2, wanted origin", col, row)
	}
}

func TestEraseDisplayPartialModes(t *testing.T) {
	// Modes 0 and 1 follow the xterm behavior: the rows strictly
	// beyond the cursor plus the matching span of the cursor row.
	cases := []struct {
		input string
		want  []string
	}{
		{"aaaaa\x1b[2;1Hbbbbb\x1b[3;1Hccccc\x1b[2;3H\x1b[0J", []string{"aaaaa", "bb", ""}},
		{"aaaaa\x1b[2;1Hbbbbb\x1b[3;1Hccccc\x1b[2;3H\x1b[1J", []string{"", "   bb", "ccccc"}},
	}

	for i, c := range cases {
		s := NewScreen(5, 3)
		s.WriteString(c.input)
		sn := s.Snapshot()
		for r, want := range c.want {
			if got := sn.Line(r); got != want {
				t.Errorf("%d: row %d is %q, wanted %q", i, r, got, want)
			}
		}
	}
}

func TestEraseLine(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"abcde\x1b[1;3H\x1b[K", "ab"},
		{"abcde\x1b[1;3H\x1b[0K", "ab"},
		{"abcde\x1b[1;3H\x1b[1K", "   de"},
		{"abcde\x1b[1;3H\x1b[2K", ""},
	}

	for i, c := range cases {
		s := NewScreen(5, 2)
		s.WriteString(c.input)
		sn := s.Snapshot()
		if got := sn.Line(0); got != c.want {
			t.Errorf("%d: row 0 is %q, wanted %q", i, got, c.want)
		}
		// EL leaves the cursor where it was.
		if col, row := sn.Cursor(); col != 2 || row != 0 {
			t.Errorf("%d: cursor at (%d, %d), wanted (2, 0)", i, col, row)
		}
	}
}

func TestPenAttachment(t *testing.T) {
	s := NewScreen(10, 2)
	s.WriteString("a\x1b[31mb\x1b[1;32mc\x1b[md")

	sn := s.Snapshot()
	cases := []struct {
		col  int
		want string
	}{
		{0, ""},
		{1, "31"},
		{2, "1;32"},
		{3, ""},
	}

	for i, c := range cases {
		cell, err := sn.Cell(c.col, 0)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if cell.Pen() != c.want {
			t.Errorf("%d: cell (%d, 0) pen %q, wanted %q", i, c.col, cell.Pen(), c.want)
		}
	}
}

func TestPenReset(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"\x1b[31m", "31"},
		{"\x1b[31m\x1b[m", ""},
		{"\x1b[31m\x1b[0m", ""},
		{"\x1b[38;5;208m", "38;5;208"},
	}

	for i, c := range cases {
		s := NewScreen(5, 2)
		s.WriteString(c.input)
		if got := s.Pen(); got != c.want {
			t.Errorf("%d: pen %q, wanted %q", i, got, c.want)
		}
	}
}

func TestModeTogglesAreNoOps(t *testing.T) {
	s := NewScreen(10, 3)
	s.WriteString("abc")
	before := s.Snapshot()

	s.WriteString("\x1b[?1049h\x1b[?25l\x1b[4h\x1b[?25h\x1b[?1049l")
	after := s.Snapshot()

	if !before.Equal(after) {
		t.Error("mode toggles mutated the screen")
	}
}

func TestMalformedInputIsSwallowed(t *testing.T) {
	// None of these may disturb the grid or panic.
	cases := []string{
		"\x1b",               // truncated escape
		"\x1b[",              // truncated CSI
		"\x1b[12;",           // truncated parameters
		"\x1b[999Z",          // unknown final byte
		"\x1b]0;title\a",     // OSC with BEL terminator
		"\x1b]2;title\x1b\\", // OSC with ST terminator
		"\x1b(B",             // charset selection
		"\x00\x01\x02",       // stray control bytes
		"\xff\xfe",           // invalid UTF-8
	}

	for i, input := range cases {
		s := NewScreen(10, 3)
		s.WriteString("ok")
		s.WriteString(input)

		sn := s.Snapshot()
		if got := sn.Text(0, 0, 2); got != "ok" {
			t.Errorf("%d: %q disturbed the grid: row 0 %q", i, input, sn.Line(0))
		}
	}
}

func TestInvalidUTF8KeepsFollowingText(t *testing.T) {
	// A bad lead byte is dropped alone; the text after it still
	// renders.
	cases := []struct {
		input string
		want  string
	}{
		{"\xe4abc", "abc"},   // bad lead directly before text
		{"\xff\xfehi", "hi"}, // two bad leads
		{"\xe4\xb8ok", "ok"}, // truncated three-byte rune
		{"a\xe4b", "ab"},
		{"\xe4é", "é"}, // bad lead before a valid multi-byte rune
	}

	for i, c := range cases {
		s := NewScreen(10, 2)
		s.WriteString(c.input)
		if got := s.Snapshot().Line(0); got != c.want {
			t.Errorf("%d: %q rendered %q, wanted %q", i, c.input, got, c.want)
		}
	}
}

func TestEraseToStartWithCursorPastBottom(t *testing.T) {
	s := NewScreen(4, 2)
	// Overflows the grid, leaving the logical cursor below it.
	s.WriteString("aaaabbbbcccc")
	s.WriteString("\x1b[1J")

	sn := s.Snapshot()
	for row := 0; row < 2; row++ {
		if got := sn.Line(row); got != "" {
			t.Errorf("row %d not cleared: %q", row, got)
		}
	}
}

func TestInterpretIsIdempotent(t *testing.T) {
	input := "\x1b[2J\x1b[1;1H\x1b[31mred\x1b[m plain\n\x1b[2;4Hmid\x1b[K\x1b[5;1Hlast"

	s1 := NewScreen(20, 6)
	s1.WriteString(input)
	s2 := NewScreen(20, 6)
	s2.WriteString(input)

	if !s1.Snapshot().Equal(s2.Snapshot()) {
		t.Error("same byte stream produced different screens")
	}
}

func TestSplitWrites(t *testing.T) {
	// Escape sequences and UTF-8 runes split across Write calls
	// must parse the same as one contiguous write.
	whole := NewScreen(10, 3)
	whole.WriteString("\x1b[1;3Hab世")

	split := NewScreen(10, 3)
	for _, b := range []byte("\x1b[1;3Hab世") {
		split.Write([]byte{b})
	}

	if !whole.Snapshot().Equal(split.Snapshot()) {
		t.Error("byte-at-a-time write diverged from contiguous write")
	}
}
