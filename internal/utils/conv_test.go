package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToInt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain number", "42", 42},
		{"zero", "0", 0},
		{"negative", "-7", -7},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"trailing junk", "12x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StringToInt(tt.in))
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "rust", "rust"},
		{"mixed case", "JavaScript", "javascript"},
		{"surrounding spaces", "  Go  ", "go"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.in))
		})
	}
}

func TestRandString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := RandString(8)
		assert.Len(t, s, 8)
		for _, r := range s {
			assert.Contains(t, letterBytes, string(r))
		}
		seen[s] = true
	}
	// collisions across 100 draws from 36^8 would be astonishing
	assert.Greater(t, len(seen), 99)
}

func TestRandStringConcurrent(t *testing.T) {
	// ids are minted from concurrent request handlers
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Len(t, RandString(8), 8)
			}
		}()
	}
	wg.Wait()
}
