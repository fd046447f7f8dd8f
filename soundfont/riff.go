// riff.go - RIFF chunk walking for the SoundFont 2 container format
//
// Grounded on the SF2.04 chunk layout: a top-level "RIFF" chunk of form
// "sfbk" containing three LIST chunks ("INFO", "sdta", "pdta"). Ported from
// scratch for this module's loader scope; informed by the chunk/record
// layout in the retrieved gosfzplayer/sf hydra SF2 reader (see DESIGN.md).

package soundfont

import (
	"encoding/binary"
	"fmt"
)

type chunk struct {
	id   string
	data []byte
}

// readChunk reads one RIFF chunk header + body starting at data[0], and
// returns the chunk plus the number of bytes consumed (header + body,
// padded to an even boundary as RIFF requires).
func readChunk(data []byte) (chunk, int, error) {
	if len(data) < 8 {
		return chunk{}, 0, fmt.Errorf("chunk header truncated")
	}
	id := string(data[0:4])
	size := binary.LittleEndian.Uint32(data[4:8])
	end := 8 + int(size)
	if end > len(data) {
		return chunk{}, 0, fmt.Errorf("chunk %q size %d exceeds remaining data", id, size)
	}
	consumed := end
	if consumed%2 == 1 {
		consumed++ // RIFF chunks are word-aligned
	}
	return chunk{id: id, data: data[8:end]}, consumed, nil
}

// splitSubchunks walks a LIST chunk's body (after its 4-byte form type)
// into its direct child chunks.
func splitSubchunks(body []byte) ([]chunk, error) {
	var out []chunk
	for len(body) > 0 {
		c, n, err := readChunk(body)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		body = body[n:]
	}
	return out, nil
}

// listForm returns a LIST chunk's 4-byte form type and its sub-chunk body.
func listForm(c chunk) (string, []byte, error) {
	if c.id != "LIST" || len(c.data) < 4 {
		return "", nil, fmt.Errorf("expected LIST chunk, got %q", c.id)
	}
	return string(c.data[0:4]), c.data[4:], nil
}
