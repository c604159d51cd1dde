package math

import "testing"

func TestVec2Lerp(t *testing.T) {
	a := NewVec2(1, 2)
	b := NewVec2(3, 6)

	tests := []struct {
		t    float32
		want Vec2
	}{
		{0, a},
		{1, b},
		{0.5, NewVec2(2, 4)},
		{2, NewVec2(5, 10)},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v): expected %v, got %v", tt.t, tt.want, got)
		}
	}
}

func TestVec3Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, 8)

	if got, want := a.Lerp(b, 0.25), NewVec3(0.5, 1, 2); got != want {
		t.Errorf("Lerp: expected %v, got %v", want, got)
	}
	if got, want := b.Sub(a).Add(b).Scale(0.5), b; got != want {
		t.Errorf("Sub/Add/Scale: expected %v, got %v", want, got)
	}
}
