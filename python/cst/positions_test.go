package cst

import "testing"

func TestPositions(t *testing.T) {
	x := NewName("x")
	one := NewInteger("1")
	y := NewName("y")
	two := NewInteger("22")
	module := &Module{Body: []Statement{
		NewLine(NewAssign(x, one)),
		NewLine(NewAssign(y, two)),
	}}
	// renders as "x = 1\ny = 22\n"

	spans := Positions(module)

	tests := []struct {
		name string
		node Node
		want Span
	}{
		{"x", x, Span{Position{0, 1, 1}, Position{1, 1, 2}}},
		{"1", one, Span{Position{4, 1, 5}, Position{5, 1, 6}}},
		{"y", y, Span{Position{6, 2, 1}, Position{7, 2, 2}}},
		{"22", two, Span{Position{10, 2, 5}, Position{12, 2, 7}}},
		{"module", module, Span{Position{0, 1, 1}, Position{13, 3, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := spans[tt.node]
			if !ok {
				t.Fatal("node has no recorded span")
			}
			if got != tt.want {
				t.Errorf("span = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPositionsStatementIncludesLeadingLines(t *testing.T) {
	line := NewLine(NewAssign(NewName("x"), NewInteger("1")))
	line.LeadingLines = []*EmptyLine{{Comment: "# header", Newline: "\n"}}
	module := &Module{Body: []Statement{line}}
	// renders as "# header\nx = 1\n"

	spans := Positions(module)
	got := spans[line]
	want := Span{Position{0, 1, 1}, Position{15, 3, 1}}
	if got != want {
		t.Errorf("span = %+v, want %+v", got, want)
	}
}
