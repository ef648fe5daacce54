package inscription

import (
	"github.com/inscription-c/pins/constants"
)

// Window takes the next partial group off the front of remaining and returns
// it together with the chunks left over. remaining itself is never modified.
//
// The first group of a chain always starts with the marker chunk. After that
// chunks are taken in index/data pairs while the compiled group stays within
// MaxPayloadLen; the pair that crosses the bound is handed back in rest. A
// single pair that exceeds the bound on its own is kept so every call makes
// progress.
func Window(remaining []Chunk, first bool) (group, rest []Chunk, err error) {
	return window(remaining, first, constants.MaxPayloadLen)
}

func window(remaining []Chunk, first bool, bound int) (group, rest []Chunk, err error) {
	rest = remaining
	if first && len(rest) > 0 {
		group = append(group, rest[0])
		rest = rest[1:]
	}

	size, err := compiledLen(group)
	if err != nil {
		return nil, nil, err
	}
	last := 0
	for size <= bound && len(rest) > 0 {
		last = 2
		if len(rest) < last {
			last = len(rest)
		}
		group = append(group, rest[:last]...)
		rest = rest[last:]
		if size, err = compiledLen(group); err != nil {
			return nil, nil, err
		}
	}

	if size > bound && len(group) > last {
		undo := make([]Chunk, 0, last+len(rest))
		undo = append(undo, group[len(group)-last:]...)
		rest = append(undo, rest...)
		group = group[:len(group)-last]
	}
	return group, rest, nil
}

func compiledLen(chunks []Chunk) (int, error) {
	script, err := Compile(chunks)
	if err != nil {
		return 0, err
	}
	return len(script), nil
}
