package parser_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/queercat/silly/parser"
)

const fixtureDir = "testfixtures"

func BenchmarkParser(b *testing.B) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.silly"))
	if err != nil {
		b.Fatalf("Failed to list test fixtures: %v", err)
	}
	sort.Strings(files) // should be redundant
	for _, path := range files {
		b.Run(filepath.Base(path), benchmarkParse(path))
	}
}

func benchmarkParse(path string) func(b *testing.B) {
	return func(b *testing.B) {
		text, err := os.ReadFile(path)
		if err != nil {
			b.Fatalf("Failed to read test fixture %s: %v", path, err)
		}
		b.SetBytes(int64(len(text)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := parser.ParseLVal(path, text)
			if err != nil {
				b.Fatalf("Failed to parse %s: %v", path, err)
			}
		}
	}
}
