package captions

import "strings"

// SplitText wraps text into segments of at most maxChars characters
// using greedy word wrap on whitespace-delimited tokens. Tokens are
// never split: a single token longer than maxChars becomes its own
// oversized segment. The result is never empty; when maxChars is zero
// or the text already fits, the text is returned unmodified as a
// single segment.
func SplitText(text string, maxChars int) []string {
	if maxChars <= 0 {
		return []string{text}
	}
	if len(text) <= maxChars {
		return []string{text}
	}

	var segments []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if current.Len()+1+len(word) <= maxChars {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			segments = append(segments, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}

	if current.Len() > 0 {
		segments = append(segments, current.String())
	}

	if len(segments) == 0 {
		return []string{text}
	}
	return segments
}

// SegmentWindow computes the time span of segment index out of count
// equal-width slices over [startMS, endMS). The final slice ends at
// endMS exactly so integer-division remainder is absorbed there, and
// every span is widened to at least one millisecond. Arithmetic
// saturates instead of overflowing.
func SegmentWindow(startMS, endMS uint64, index, count int) (uint64, uint64) {
	duration := satSub(endMS, startMS)
	n := uint64(max(count, 1))
	i := uint64(max(index, 0))

	segStart := satAdd(startMS, satMul(duration, i)/n)
	var segEnd uint64
	if index+1 >= count {
		segEnd = endMS
	} else {
		segEnd = satAdd(startMS, satMul(duration, i+1)/n)
	}

	return segStart, max(segEnd, satAdd(segStart, 1))
}

func satAdd(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^uint64(0)
}

func satSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

func satMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if product := a * b; product/a == b {
		return product
	}
	return ^uint64(0)
}
