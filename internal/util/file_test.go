package util

import "testing"

func TestHasAllowedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"notes.txt", true},
		{"README.md", true},
		{"lecture.PDF", true},
		{"archive.zip", false},
		{"script.sh", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := HasAllowedExtension(tt.filename, AllowedDocumentExtensions); got != tt.want {
				t.Errorf("HasAllowedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
