package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const blockIndent = "    "

// Split the words into lines of at most width columns, each starting with
// indent. A single value is never broken across lines.
func wrapWords(words []uint16, width int, indent string) []string {
	var lines []string
	var line strings.Builder
	for i, w := range words {
		tok := strconv.Itoa(int(w))
		if i != len(words)-1 {
			tok += ","
		}
		if line.Len() > len(indent) && line.Len()+1+len(tok) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() == 0 {
			line.WriteString(indent)
		} else {
			line.WriteByte(' ')
		}
		line.WriteString(tok)
	}
	if line.Len() != 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Write one structure as a braced literal block, preceded by its name.
func WriteBlock(out io.Writer, name string, words []uint16, width int) error {
	w := bufio.NewWriter(out)
	w.WriteString("// " + name + "\n")
	w.WriteString("{\n")
	for _, l := range wrapWords(words, width, blockIndent) {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	w.WriteString("},\n")
	return w.Flush()
}
