package onenote

import "testing"

func TestClampLevel(t *testing.T) {
	cases := map[int]int{
		-1: 1,
		0:  1,
		1:  1,
		2:  2,
		3:  3,
		4:  3,
		99: 3,
	}
	for in, want := range cases {
		if got := ClampLevel(in); got != want {
			t.Errorf("ClampLevel(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPageCountSkipsRecycleBins(t *testing.T) {
	nb := Notebook{
		Sections: []Section{{Pages: make([]Page, 2)}},
		Groups: []SectionGroup{
			{
				Sections: []Section{{Pages: make([]Page, 3)}},
				Groups: []SectionGroup{
					{Sections: []Section{{Pages: make([]Page, 1)}}},
				},
			},
			{RecycleBin: true, Sections: []Section{{Pages: make([]Page, 5)}}},
		},
	}
	if got := nb.PageCount(); got != 6 {
		t.Errorf("PageCount() = %d, want 6", got)
	}
}
