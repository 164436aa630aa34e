package rope

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// benchText builds a string of roughly the given size with word-like
// content and line breaks around every 60 columns.
func benchText(size int) string {
	var sb strings.Builder
	sb.Grow(size)

	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog"}
	lineLen := 0
	for sb.Len() < size {
		w := words[rand.Intn(len(words))]
		if sb.Len()+len(w)+1 > size {
			break
		}
		if sb.Len() > 0 {
			if lineLen > 60 {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}
		sb.WriteString(w)
		lineLen += len(w)
	}
	return sb.String()
}

func BenchmarkFromString(b *testing.B) {
	for _, size := range []int{100, 10000, 1000000} {
		text := benchText(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = FromString(text)
			}
		})
	}
}

func BenchmarkInsert(b *testing.B) {
	for _, size := range []int{1000, 100000} {
		r := FromString(benchText(size))
		b.Run(fmt.Sprintf("middle/size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.Insert(size/2, "x")
			}
		})
		b.Run(fmt.Sprintf("random/size=%d", size), func(b *testing.B) {
			offsets := make([]int, 1024)
			for i := range offsets {
				offsets[i] = rand.Intn(r.Len() + 1)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = r.Insert(offsets[i%len(offsets)], "x")
			}
		})
	}
}

func BenchmarkDelete(b *testing.B) {
	for _, size := range []int{1000, 100000} {
		r := FromString(benchText(size))
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.Delete(size/3, size/3+16)
			}
		})
	}
}

func BenchmarkSlice(b *testing.B) {
	r := FromString(benchText(1 << 20))
	b.Run("small", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = r.Slice(500000, 500080)
		}
	})
	b.Run("large", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = r.Slice(100000, 900000)
		}
	})
}

func BenchmarkLineStartOffset(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 50000; i++ {
		fmt.Fprintf(&sb, "line %d with some text on it\n", i)
	}
	r := FromString(sb.String())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.LineStartOffset(i % 50000)
	}
}

func BenchmarkCursorSeekOffset(b *testing.B) {
	r := FromString(benchText(1 << 20))
	c := NewCursor(r)
	offsets := make([]int, 1024)
	for i := range offsets {
		offsets[i] = rand.Intn(r.Len())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SeekOffset(offsets[i%len(offsets)])
	}
}

func BenchmarkCursorNext(b *testing.B) {
	r := FromString(benchText(1 << 18))
	b.ResetTimer()
	c := NewCursor(r)
	for i := 0; i < b.N; i++ {
		if !c.Next() {
			c = NewCursor(r)
		}
	}
}
