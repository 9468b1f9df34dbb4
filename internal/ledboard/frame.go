// Package ledboard drives an LED fretboard over a serial link. The board
// firmware keeps one LED per (string, fret); the host sends one frame per
// string each time the scale, tuning or played notes change.
package ledboard

const (
	CmdSetString = 0x20 // light one string: payload is string, frets, lit mask, accent mask
	CmdClear     = 0x21 // all LEDs off, empty payload
	SOF0         = 0xAA
	SOF1         = 0x55
)

// Frame is the state of one string's LEDs. Bit f of Lit (little-endian across
// bytes) lights fret f; Accent marks the same bits in the accent colour.
type Frame struct {
	Cmd    byte
	String byte
	Frets  byte // highest fret covered by the masks
	Lit    []byte
	Accent []byte
}

// maskLen returns the bytes needed for frets 0..frets.
func maskLen(frets int) int { return (frets + 1 + 7) / 8 }

func newStringFrame(str, frets int) Frame {
	return Frame{
		Cmd:    CmdSetString,
		String: byte(str),
		Frets:  byte(frets),
		Lit:    make([]byte, maskLen(frets)),
		Accent: make([]byte, maskLen(frets)),
	}
}

// ClearFrame turns every LED off.
func ClearFrame() Frame { return Frame{Cmd: CmdClear} }

func setBit(mask []byte, bit int) { mask[bit/8] |= 1 << (bit % 8) }

// Encode builds the on-wire representation:
//
//	[SOF0][SOF1][LEN][CMD][payload...][CKS]
//
// LEN counts CMD plus payload; CKS is the XOR of LEN, CMD and the payload.
func (f *Frame) Encode() []byte {
	var payload []byte
	if f.Cmd == CmdSetString {
		payload = make([]byte, 0, 2+len(f.Lit)+len(f.Accent))
		payload = append(payload, f.String, f.Frets)
		payload = append(payload, f.Lit...)
		payload = append(payload, f.Accent...)
	}

	length := byte(len(payload) + 1) // +1 for CMD byte
	cks := length ^ f.Cmd
	for _, b := range payload {
		cks ^= b
	}

	out := []byte{SOF0, SOF1, length, f.Cmd}
	out = append(out, payload...)
	out = append(out, cks)
	return out
}
