package sizefmt

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"small file in KB", 512 * 1024, "512 KB"},
		{"rounds partial KB", 1536, "2 KB"},
		{"KB boundary stays KB", 1000 * 1024, "1000 KB"},
		{"above KB boundary is MB", 1001 * 1024, "0.98 MB"},
		{"megabytes", 50 * 1024 * 1024, "50.00 MB"},
		{"above MB boundary is GB", 100001 * 1024, "0.10 GB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.00 GB"},
		{"zero", 0, "0 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.bytes); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
