package materialize

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

type lineOp int

const (
	opEqual lineOp = iota
	opAdded
	opRemoved
)

type diffLine struct {
	op      lineOp
	content string
}

// Diff returns a unified diff from old to newer, or "" if they are identical.
// Lines longer than width are truncated; width <= 0 disables truncation.
func Diff(path string, old, newer []byte, width int) string {
	if bytes.Equal(old, newer) {
		return ""
	}
	if isBinary(old) || isBinary(newer) {
		return fmt.Sprintf("Binary files %s differ\n", path)
	}

	lines := editScript(splitLines(string(old)), splitLines(string(newer)))
	hunks := groupHunks(lines)
	if len(hunks) == 0 {
		// Only a trailing newline differs.
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("--- a/"+path) + "\n")
	b.WriteString(headerStyle.Render("+++ b/"+path) + "\n")

	for _, h := range hunks {
		b.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)) + "\n")
		for _, l := range lines[h.from:h.to] {
			content := truncate(l.content, width-2)
			switch l.op {
			case opAdded:
				b.WriteString(addedStyle.Render("+"+content) + "\n")
			case opRemoved:
				b.WriteString(removedStyle.Render("-"+content) + "\n")
			default:
				b.WriteString(" " + content + "\n")
			}
		}
	}

	return b.String()
}

// editScript computes the shortest edit script between a and b using the
// Myers O(ND) algorithm.
func editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	maxD := n + m
	offset := maxD + 1
	v := make([]int, 2*maxD+2)
	var trace [][]int

	for d := 0; d <= maxD; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				return backtrack(a, b, trace, offset)
			}
		}
	}

	return nil
}

func backtrack(a, b []string, trace [][]int, offset int) []diffLine {
	x, y := len(a), len(b)
	var rev []diffLine

	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			rev = append(rev, diffLine{opEqual, a[x]})
		}

		if d > 0 {
			if x == prevX {
				y--
				rev = append(rev, diffLine{opAdded, b[y]})
			} else {
				x--
				rev = append(rev, diffLine{opRemoved, a[x]})
			}
		}
	}

	out := make([]diffLine, len(rev))
	for i, l := range rev {
		out[len(rev)-1-i] = l
	}
	return out
}

type hunk struct {
	from, to           int // half-open range into the edit script
	oldStart, oldCount int
	newStart, newCount int
}

// groupHunks merges changes closer than 2*contextLines into one hunk.
func groupHunks(lines []diffLine) []hunk {
	// Line positions in the old and new files before each script index.
	oldPos := make([]int, len(lines)+1)
	newPos := make([]int, len(lines)+1)
	for i, l := range lines {
		oldPos[i+1], newPos[i+1] = oldPos[i], newPos[i]
		if l.op != opAdded {
			oldPos[i+1]++
		}
		if l.op != opRemoved {
			newPos[i+1]++
		}
	}

	var hunks []hunk
	for i, l := range lines {
		if l.op == opEqual {
			continue
		}
		from := max(0, i-contextLines)
		to := min(len(lines), i+1+contextLines)

		if n := len(hunks); n > 0 && from <= hunks[n-1].to {
			hunks[n-1].to = max(hunks[n-1].to, to)
			continue
		}
		hunks = append(hunks, hunk{from: from, to: to})
	}

	for i := range hunks {
		h := &hunks[i]
		h.oldCount = oldPos[h.to] - oldPos[h.from]
		h.newCount = newPos[h.to] - newPos[h.from]
		h.oldStart = oldPos[h.from]
		if h.oldCount > 0 {
			h.oldStart++
		}
		h.newStart = newPos[h.from]
		if h.newCount > 0 {
			h.newStart++
		}
	}

	return hunks
}

// isBinary checks if content appears to be binary (contains null bytes)
func isBinary(data []byte) bool {
	checkLen := min(len(data), 8192)
	return bytes.IndexByte(data[:checkLen], 0) != -1
}

// splitLines splits content into lines, dropping the empty line after a final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func truncate(s string, width int) string {
	if width < 4 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// writerWidth returns the terminal width behind w, or 0 when w is not a terminal.
func writerWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
