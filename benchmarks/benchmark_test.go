package benchmarks

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klytics/devkit/internal/formats/convert"
	"github.com/klytics/devkit/internal/formats/xlsx"
	"github.com/klytics/devkit/internal/textutil"
)

var sampleXlsx = filepath.Join("..", "testdata", "sample.xlsx")

// largeSheet writes a rows x 6 sheet mixing every cell kind and returns its path.
func largeSheet(b *testing.B, rows int) string {
	b.Helper()
	data := make([][]any, 0, rows+1)
	data = append(data, []any{"id", "name", "qty", "price", "active", "note"})
	for i := 1; i <= rows; i++ {
		data = append(data, []any{i, fmt.Sprintf("item-%d", i), i % 17, float64(i) * 1.25, i%2 == 0, nil})
	}
	path := filepath.Join(b.TempDir(), "large.xlsx")
	if err := xlsx.WriteFile(&xlsx.Workbook{Sheets: []xlsx.Sheet{{Name: "Sheet1", Rows: data}}}, path); err != nil {
		b.Fatal(err)
	}
	return path
}

// --- XLSX Benchmarks ---

func BenchmarkXlsxOpenSample(b *testing.B) {
	if _, err := os.Stat(sampleXlsx); os.IsNotExist(err) {
		b.Skip("sample.xlsx not found — run 'go run testdata/generate_fixtures.go'")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xlsx.Open(sampleXlsx, "Revenue"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkXlsxOpen(b *testing.B) {
	path := largeSheet(b, 5000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xlsx.Open(path, "Sheet1"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkXlsxPreview(b *testing.B) {
	r, err := xlsx.Open(largeSheet(b, 5000), "Sheet1")
	if err != nil {
		b.Fatal(err)
	}
	opts := xlsx.PreviewOptions{Rows: xlsx.All, Columns: xlsx.All}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := xlsx.Preview(io.Discard, r, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkXlsxSplit(b *testing.B) {
	path := largeSheet(b, 5000)
	r, err := xlsx.Open(path, "Sheet1")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xlsx.Split(r, xlsx.SplitOptions{Source: path, ChunkSize: 1000, Header: true}); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Convert Benchmarks ---

func BenchmarkConvertRangeToCSV(b *testing.B) {
	r, err := xlsx.Open(largeSheet(b, 5000), "Sheet1")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := convert.RangeToCSV(io.Discard, r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvertXlsxToCSV(b *testing.B) {
	if _, err := os.Stat(sampleXlsx); os.IsNotExist(err) {
		b.Skip("sample.xlsx not found")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r, err := xlsx.Open(sampleXlsx, "Summary")
		if err != nil {
			b.Fatal(err)
		}
		if err := convert.RangeToCSV(io.Discard, r); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Text Benchmarks ---

func BenchmarkPrettyJSON(b *testing.B) {
	doc := []byte(`{"name":"devkit","tags":["xlsx","csv","json"],"nested":{"a":1,"b":[true,false,null]}}`)
	for i := 0; i < b.N; i++ {
		if _, err := textutil.PrettyJSON(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMD5Hex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = textutil.MD5Hex("the quick brown fox", textutil.MD5Options{})
	}
}
