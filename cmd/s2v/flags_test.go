package main

import "testing"

func TestSizeValue(t *testing.T) {
	tests := []struct {
		in         string
		rows, cols int
		wantErr    bool
	}{
		{"10x5", 10, 5, false},
		{" 3X4 ", 3, 4, false},
		{"0x0", 0, 0, false},
		{"10", 0, 0, true},
		{"ax5", 0, 0, true},
		{"5x-1", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v sizeValue
			err := v.Set(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if v.rows != tt.rows || v.cols != tt.cols {
				t.Errorf("Set(%q) = %dx%d, expected %dx%d", tt.in, v.rows, v.cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestStorageValue(t *testing.T) {
	var v storageValue
	if err := v.Set("sparse"); err != nil || v.String() != "sparse" {
		t.Errorf("Set(sparse) = %q, %v", v.String(), err)
	}
	if err := v.Set("columnar"); err == nil {
		t.Error("Set(columnar) should fail")
	}
	if v.String() != "sparse" {
		t.Errorf("failed Set changed value to %q", v.String())
	}
}
