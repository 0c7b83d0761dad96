package rt

import (
	"fmt"
	"testing"
)

// BenchmarkWriteRegion measures tile compositing cost across the tile sizes
// the pool dispatches in practice.
func BenchmarkWriteRegion(b *testing.B) {
	pm := NewPixmap(1000, 1000)

	for _, edge := range []int{16, 50, 100, 250} {
		pix := make([]uint8, edge*edge*4)
		b.Run(fmt.Sprintf("%dpx", edge), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				pm.WriteRegion(100, 100, edge, edge, pix)
			}
		})
	}
}

// BenchmarkClear measures full-canvas clears used between animation frames.
func BenchmarkClear(b *testing.B) {
	pm := NewPixmap(1000, 1000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pm.Clear(Black)
	}
}
