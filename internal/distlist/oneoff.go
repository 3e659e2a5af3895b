package distlist

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Decode failures for a single entry.
var (
	ErrTooShort           = errors.New("entry truncated")
	ErrUnterminatedString = errors.New("string missing UTF-16 terminator")
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// OneOffFlags breaks out the additional-flags word of a one-off entry.
// The fields are informational; string boundaries are self-delimiting, so
// decoding proceeds regardless of their values.
type OneOffFlags struct {
	Pad    uint16
	MAE    uint16
	Format uint16
	M      uint16
	U      uint16
	R      uint16
	L      uint16
	Pad2   uint16
}

// OneOffEntry is a self-contained distribution-list member: the name,
// address type, and address are stored inline instead of referencing another
// store object.
type OneOffEntry struct {
	Version      uint16
	Flags        OneOffFlags
	DisplayName  string
	AddressType  string
	EmailAddress string

	// End is the offset immediately after the third string terminator.
	// One-off records carry no length field; this is the only way the
	// caller can know where the next record begins.
	End int
}

// decodeOneOff parses a one-off entry starting at pos in data. The dispatch
// prefix (flags and GUID) has already been consumed by the caller.
func decodeOneOff(data []byte, pos int) (OneOffEntry, error) {
	if pos+4 > len(data) {
		return OneOffEntry{}, fmt.Errorf("%w: need 4 bytes for one-off header at offset %d", ErrTooShort, pos)
	}
	version := uint16(data[pos]) | uint16(data[pos+1])<<8
	additional := uint16(data[pos+2]) | uint16(data[pos+3])<<8
	pos += 4

	entry := OneOffEntry{
		Version: version,
		Flags: OneOffFlags{
			Pad:    additional & 0x8000,
			MAE:    additional & 0x0C00,
			Format: additional & 0x1E00,
			M:      additional & 0x0100,
			U:      additional & 0x0080,
			R:      additional & 0x0060,
			L:      additional & 0x0010,
			Pad2:   additional & 0x000F,
		},
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"display name", &entry.DisplayName},
		{"address type", &entry.AddressType},
		{"email address", &entry.EmailAddress},
	}
	for _, f := range fields {
		end, ok := findNullTerminator(data, pos)
		if !ok {
			return OneOffEntry{}, fmt.Errorf("%w: %s", ErrUnterminatedString, f.name)
		}
		s, err := decodeUTF16LE(data[pos:end])
		if err != nil {
			return OneOffEntry{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
		*f.dst = s
		pos = end + 2
	}
	entry.End = pos
	return entry, nil
}

// findNullTerminator scans for the next 16-bit-aligned 0x0000 code unit at or
// after start. Alignment is relative to start, keeping the scan on code-unit
// boundaries of the string that begins there.
func findNullTerminator(data []byte, start int) (int, bool) {
	for ; start+1 < len(data); start += 2 {
		if data[start] == 0 && data[start+1] == 0 {
			return start, true
		}
	}
	return 0, false
}

func decodeUTF16LE(b []byte) (string, error) {
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
