package renderer

import "testing"

func TestVertexCount(t *testing.T) {
	tests := []struct {
		name      string
		positions []float32
		want      int32
		wantErr   bool
	}{
		{"triangle", make([]float32, 9), 3, false},
		{"two triangles", make([]float32, 18), 6, false},
		{"empty", nil, 0, true},
		{"ragged", make([]float32, 10), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vertexCount(tt.positions)
			if (err != nil) != tt.wantErr {
				t.Fatalf("vertexCount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expected %d vertices, got %d", tt.want, got)
			}
		})
	}
}
