package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vvka-141/metakit/internal/checksum"
)

// BenchmarkScanDirectory benchmarks directory scanning with real filesystem
func BenchmarkScanDirectory(b *testing.B) {
	tempDir := b.TempDir()

	for i := 0; i < 10; i++ {
		filename := filepath.Join(tempDir, fmt.Sprintf("handling_%d.meta", i))
		content := "<CHandlingDataMgr>\n  <!-- tuned -->\n  <HandlingData />\n</CHandlingDataMgr>\n"
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			b.Fatal(err)
		}
	}

	fileScanner := NewScanner(checksum.New(), DefaultOptions())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fileScanner.ScanDirectory(tempDir); err != nil {
			b.Fatal(err)
		}
	}
}
