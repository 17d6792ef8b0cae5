package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{-5, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{8, 4, 3},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
		},
		"cât\ntimp": {
			{4, 1, 4},
			{5, 2, 1},
			{7, 2, 3},
		},
	}

	for text, results := range samples {
		src := New("", text)
		for _, res := range results {
			l, c := src.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 2, 1},
		},
		"ab\ncd": {
			{1, 1, 2},
			{2, 1, 5},
			{3, 2, 1},
			{5, 2, 3},
			{5, 3, 1},
		},
		"cât\ntimp": {
			{3, 1, 3},
			{4, 1, 4},
			{6, 2, 2},
		},
	}

	for text, results := range samples {
		src := New("", text)
		for _, res := range results {
			pos := src.Pos(res.line, res.col)
			if pos != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, pos)
			}
		}
	}
}

func TestSourceLine(t *testing.T) {
	src := New("test.psc", "x = 1\r\nwrite x\n\nlast")
	samples := []struct {
		line int
		text string
	}{
		{0, ""},
		{1, "x = 1"},
		{2, "write x"},
		{3, ""},
		{4, "last"},
		{5, ""},
	}

	if src.Lines() != 4 {
		t.Fatalf("expecting 4 lines, got %d", src.Lines())
	}
	for i, s := range samples {
		got := src.Line(s.line)
		if got != s.text {
			t.Errorf("sample #%d: expecting %q, got %q", i, s.text, got)
		}
	}
}
