package validator

import "testing"

func TestSanitizeProfileKey(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"local", "local", true},
		{"  staging-eu_1 ", "staging-eu_1", true},
		{"", "", false},
		{"   ", "", false},
		{"Staging", "Staging", false},
		{"a/b", "a/b", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SanitizeProfileKey(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("SanitizeProfileKey(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]bool{
		"environment.json": true,
		"environment.yaml": true,
		"../secret":        false,
		"a/environment.pb": false,
		".environment":     false,
		"config.json":      false,
	}
	for in, want := range tests {
		if _, ok := SanitizeFileName(in); ok != want {
			t.Errorf("SanitizeFileName(%q) ok = %v, want %v", in, ok, want)
		}
	}
}
