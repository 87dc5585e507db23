package main

import "testing"

func TestOrderStages(t *testing.T) {
	tests := []struct {
		a, b             string
		vertex, fragment string
	}{
		{"basic.vert", "basic.frag", "basic.vert", "basic.frag"},
		{"basic.frag", "basic.vert", "basic.vert", "basic.frag"},
		{"a.glsl", "b.glsl", "a.glsl", "b.glsl"},
		{"basic.frag", "other.frag", "basic.frag", "other.frag"},
	}

	for _, tt := range tests {
		v, f := orderStages(tt.a, tt.b)
		if v != tt.vertex || f != tt.fragment {
			t.Errorf("orderStages(%q, %q) = %q, %q; want %q, %q", tt.a, tt.b, v, f, tt.vertex, tt.fragment)
		}
	}
}

func TestFormatFloats(t *testing.T) {
	tests := []struct {
		in   []float32
		want string
	}{
		{[]float32{0, 1, 0, 1, 0, 0}, "[0 1 0 1]"},
		{[]float32{0.5, 0, 0}, "[0.5]"},
		{[]float32{0, 0}, "[0]"},
	}

	for _, tt := range tests {
		if got := formatFloats(tt.in); got != tt.want {
			t.Errorf("formatFloats(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
