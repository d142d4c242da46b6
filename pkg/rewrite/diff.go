package rewrite

import (
	"fmt"
	"strings"
)

// diffContextLines is the number of context lines shown around changes.
const diffContextLines = 3

// Diff is a unified diff between original and rewritten content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions and Deletions count changed lines.
	Additions int
	Deletions int
}

// DiffHunk is one hunk of a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLineKind indicates the type of a diff line.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// DiffLine is a single line within a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// GenerateDiff creates a unified diff between original and rewritten
// content. Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	orig := splitLines(original)
	mod := splitLines(modified)

	ops := diffOps(orig, mod)

	diff := &Diff{Path: path}
	for _, hunk := range groupHunks(ops) {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			}
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}

	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

// String renders the diff in unified format with --- / +++ headers.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", d.Path, d.Path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				b.WriteString("+")
			case DiffLineRemove:
				b.WriteString("-")
			default:
				b.WriteString(" ")
			}
			b.WriteString(line.Content)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// diffOp is one step of a line-level diff.
type diffOp struct {
	kind     DiffLineKind
	content  string
	origLine int // 1-based line in original (0 for adds)
	modLine  int // 1-based line in modified (0 for removes)
}

// diffOps computes the edit script between two line slices using a
// longest-common-subsequence walk.
func diffOps(orig, mod []string) []diffOp {
	lcs := lcsTable(orig, mod)

	var ops []diffOp
	i, j := 0, 0
	for i < len(orig) && j < len(mod) {
		switch {
		case orig[i] == mod[j]:
			ops = append(ops, diffOp{DiffLineContext, orig[i], i + 1, j + 1})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, diffOp{DiffLineRemove, orig[i], i + 1, 0})
			i++
		default:
			ops = append(ops, diffOp{DiffLineAdd, mod[j], 0, j + 1})
			j++
		}
	}
	for ; i < len(orig); i++ {
		ops = append(ops, diffOp{DiffLineRemove, orig[i], i + 1, 0})
	}
	for ; j < len(mod); j++ {
		ops = append(ops, diffOp{DiffLineAdd, mod[j], 0, j + 1})
	}

	return ops
}

// lcsTable builds the LCS length table for two line slices.
func lcsTable(orig, mod []string) [][]int {
	table := make([][]int, len(orig)+1)
	for i := range table {
		table[i] = make([]int, len(mod)+1)
	}
	for i := len(orig) - 1; i >= 0; i-- {
		for j := len(mod) - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}
	return table
}

// groupHunks collapses an edit script into hunks with surrounding context.
func groupHunks(ops []diffOp) []DiffHunk {
	var hunks []DiffHunk

	i := 0
	for i < len(ops) {
		// Find the next change.
		for i < len(ops) && ops[i].kind == DiffLineContext {
			i++
		}
		if i >= len(ops) {
			break
		}

		// Extend through changes, bridging context gaps up to twice the
		// context width so nearby changes share a hunk.
		start := max(0, i-diffContextLines)
		end := i
		for j := i; j < len(ops); j++ {
			if ops[j].kind != DiffLineContext {
				end = j
				continue
			}
			if j-end > 2*diffContextLines {
				break
			}
		}
		stop := min(len(ops), end+1+diffContextLines)

		hunks = append(hunks, buildHunk(ops[start:stop]))
		i = stop
	}

	return hunks
}

// buildHunk assembles one DiffHunk from a slice of ops.
func buildHunk(ops []diffOp) DiffHunk {
	hunk := DiffHunk{}

	for _, op := range ops {
		if op.origLine > 0 {
			if hunk.OriginalStart == 0 {
				hunk.OriginalStart = op.origLine
			}
			hunk.OriginalCount++
		}
		if op.modLine > 0 {
			if hunk.ModifiedStart == 0 {
				hunk.ModifiedStart = op.modLine
			}
			hunk.ModifiedCount++
		}
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
	}

	return hunk
}

// splitLines splits content on newlines without keeping a trailing empty
// element for newline-terminated content.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(content), "\n")
	return strings.Split(s, "\n")
}
