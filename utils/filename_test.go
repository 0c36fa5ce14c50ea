// file: utils/filename_test.go
package utils

import (
	"strings"
	"testing"
)

func TestGenerateProofFilename(t *testing.T) {
	name := GenerateProofFilename(42, ".mp4")
	if !strings.HasPrefix(name, "proof_42_") {
		t.Errorf("name = %q, want proof_42_ prefix", name)
	}
	if !strings.HasSuffix(name, ".mp4") {
		t.Errorf("name = %q, want .mp4 suffix", name)
	}
	if strings.Contains(name, "-") {
		t.Errorf("name = %q, dashes should be stripped", name)
	}

	// 随机后缀保证不重名
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := GenerateProofFilename(42, ".mp4")
		if seen[n] {
			t.Fatalf("duplicate filename generated: %s", n)
		}
		seen[n] = true
	}
}
