package layout

import "testing"

func TestRectDimensions(t *testing.T) {
	r := Rect{Left: 2, Right: 10, Bottom: -1, Top: 3}
	if r.Width() != 8 || r.Height() != 4 {
		t.Errorf("Width/Height = %v/%v, want 8/4", r.Width(), r.Height())
	}
	if r.CenterX() != 6 || r.CenterY() != 1 {
		t.Errorf("Center = (%v, %v), want (6, 1)", r.CenterX(), r.CenterY())
	}
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{Left: 0, Right: 10, Bottom: 0, Top: 1}

	tests := []struct {
		name  string
		other Rect
		pad   float64
		want  bool
	}{
		{"identical", base, 0, true},
		{"inside", Rect{Left: 2, Right: 3, Bottom: 0.2, Top: 0.4}, 0, true},
		{"far right", Rect{Left: 20, Right: 30, Bottom: 0, Top: 1}, 0.05, false},
		{"far left", Rect{Left: -30, Right: -20, Bottom: 0, Top: 1}, 0.05, false},
		{"far above", Rect{Left: 0, Right: 10, Bottom: 5, Top: 6}, 0.05, false},
		{"far below", Rect{Left: 0, Right: 10, Bottom: -6, Top: -5}, 0.05, false},
		{"gap wider than padding", Rect{Left: 10.1, Right: 12, Bottom: 0, Top: 1}, 0.05, false},
		{"gap narrower than padding", Rect{Left: 10.03, Right: 12, Bottom: 0, Top: 1}, 0.05, true},
		{"touching", Rect{Left: 10, Right: 12, Bottom: 0, Top: 1}, 0, true},
		{"vertical gap narrower than padding", Rect{Left: 0, Right: 10, Bottom: 1.02, Top: 2}, 0.05, true},
		{"vertical gap wider than padding", Rect{Left: 0, Right: 10, Bottom: 1.1, Top: 2}, 0.05, false},
		{"horizontal overlap only", Rect{Left: 5, Right: 6, Bottom: 3, Top: 4}, 0.05, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other, tt.pad); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base, tt.pad); got != tt.want {
				t.Errorf("Overlaps() not symmetric: reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{Left: 0, Right: 2, Bottom: 0, Top: 1}
	b := Rect{Left: -1, Right: 1, Bottom: 0.5, Top: 3}
	want := Rect{Left: -1, Right: 2, Bottom: 0, Top: 3}
	if got := a.Union(b); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}
