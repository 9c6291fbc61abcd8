package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 10)

	if inner != NewRect(30, 7, 20, 10) {
		t.Errorf("Centered() = %+v, expected {30 7 20 10}", inner)
	}

	// Oversized content starts off-screen rather than being clipped.
	big := NewRect(0, 0, 10, 10).Centered(12, 10)
	if big.X != -1 {
		t.Errorf("Centered() oversized X = %d, expected -1", big.X)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return 10")
	}
}

func TestColorBright(t *testing.T) {
	tests := []struct {
		in, expected Color
	}{
		{ColorRed, ColorBrightRed},
		{ColorCyan, ColorBrightCyan},
		{ColorWhite, ColorBrightWhite},
		{ColorBrightBlue, ColorBrightBlue},
		{ColorGray, ColorGray},
		{ColorDefault, ColorDefault},
	}

	for _, tc := range tests {
		if got := tc.in.Bright(); got != tc.expected {
			t.Errorf("%d.Bright() = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.SetClick(3, 4)
	clone := f.Clone()

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("Clear should drop actions and click")
	}
	if !clone.Has(ActionLeft) || clone.Click == nil || *clone.Click != (Pointer{X: 3, Y: 4}) {
		t.Errorf("clone should keep its own state, got %+v", clone)
	}
}
