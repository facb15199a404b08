package uniqueid

import (
	"regexp"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Z]{4}$`)
	for i := 0; i < 10000; i++ {
		id := Generate()
		if !pattern.MatchString(id) {
			t.Fatalf("generated id %q does not match ^[0-9A-Z]{4}$", id)
		}
	}
}

func TestGenerateCoversAlphabet(t *testing.T) {
	seen := make(map[byte]bool)
	for i := 0; i < 20000; i++ {
		id := Generate()
		for j := 0; j < len(id); j++ {
			seen[id[j]] = true
		}
	}
	for i := 0; i < len(Alphabet); i++ {
		if !seen[Alphabet[i]] {
			t.Errorf("symbol %q never produced in 20k samples", Alphabet[i])
		}
	}
}
