package declfile

import (
	"bytes"

	"dac/internal/source"
)

// spanFinder attributes declarations to the quoted occurrence of their name
// in the fixture text, so diagnostics point at real positions. Repeated
// names advance past previous matches; a name that never appears gets the
// zero span of its file.
type spanFinder struct {
	file    source.FileID
	content []byte
	next    map[string]int
}

func newSpanFinder(file source.FileID, content []byte) *spanFinder {
	return &spanFinder{
		file:    file,
		content: content,
		next:    make(map[string]int),
	}
}

func (sf *spanFinder) find(name string) source.Span {
	if name == "" {
		return source.Span{File: sf.file}
	}
	needle := []byte(`"` + name + `"`)
	from := sf.next[name]
	if from > len(sf.content) {
		from = len(sf.content)
	}
	idx := bytes.Index(sf.content[from:], needle)
	if idx < 0 {
		return source.Span{File: sf.file}
	}
	start := from + idx + 1 // inside the quotes
	end := start + len(name)
	sf.next[name] = end + 1
	return source.Span{File: sf.file, Start: uint32(start), End: uint32(end)}
}
