package bridge

import (
	"fmt"
	"strings"
)

// LineRange is a closed, 0-indexed [Start, End] span of line indices.
type LineRange struct {
	Start int
	End   int
}

// CollapseRanges returns the maximal contiguous ranges covering lines, and
// no other indices. Input need not be sorted or deduplicated.
func CollapseRanges(lines []int) []LineRange {
	if len(lines) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(lines))
	uniq := make([]int, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			uniq = append(uniq, l)
		}
	}

	for i := 1; i < len(uniq); i++ {
		for j := i; j > 0 && uniq[j-1] > uniq[j]; j-- {
			uniq[j-1], uniq[j] = uniq[j], uniq[j-1]
		}
	}

	ranges := []LineRange{{Start: uniq[0], End: uniq[0]}}
	for _, l := range uniq[1:] {
		last := &ranges[len(ranges)-1]
		if l == last.End+1 {
			last.End = l
			continue
		}
		ranges = append(ranges, LineRange{Start: l, End: l})
	}

	return ranges
}

// GutterLine renders a single 1-indexed line with a 6-column
// right-padded line-number gutter: "     1| contents".
func GutterLine(lineNum int, text string) string {
	return fmt.Sprintf("%6d| %s", lineNum, text)
}

// RenderGutterBlock renders lines[startIdx..endIdx] (0-indexed, inclusive)
// with a 1-indexed gutter, one rendered line per source line.
func RenderGutterBlock(lines []string, startIdx, endIdx int) string {
	var b strings.Builder
	for i := startIdx; i <= endIdx && i < len(lines); i++ {
		if i > startIdx {
			b.WriteByte('\n')
		}
		b.WriteString(GutterLine(i+1, lines[i]))
	}
	return b.String()
}

// RenderContextRanges renders every range in ranges (0-indexed, inclusive)
// with a gutter, separating non-adjacent ranges with a "..." line.
func RenderContextRanges(lines []string, ranges []LineRange) string {
	var b strings.Builder
	for i, r := range ranges {
		if i > 0 {
			b.WriteString("\n...\n")
		}
		b.WriteString(RenderGutterBlock(lines, r.Start, r.End))
	}
	return b.String()
}

// ContextLineSet builds the line-index set the references tool collapses
// into ranges: for every reference span [sl, el] (0-indexed), every line in
// [max(0, sl-context) .. min(total-1, el+context)].
func ContextLineSet(sl, el, context, total int) []int {
	lo := sl - context
	if lo < 0 {
		lo = 0
	}
	hi := el + context
	if hi > total-1 {
		hi = total - 1
	}
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
