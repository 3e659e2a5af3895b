package distlist

import (
	"fmt"

	"github.com/jtraulle/pstconv/internal/cursor"
)

// wrappedEntry is the fixed-length record that references another store
// object by descriptor index. It is scoped to a single decode call; only the
// descriptor index and the resolved object survive into the member list.
type wrappedEntry struct {
	EntryType   byte
	AddressType byte
	OneOff      bool
	Flags       uint32
	// GUID2 is read into its own buffer. It must stay independent from the
	// dispatch GUID the list decoder matched on.
	GUID2           [16]byte
	DescriptorIndex uint32
}

// decodeWrapped parses the wrapped-entry body. The cursor is positioned
// immediately after the outer 4-byte flags and 16-byte GUID.
func decodeWrapped(cur *cursor.Cursor) (wrappedEntry, error) {
	if cur.Remaining() < 24 {
		return wrappedEntry{}, fmt.Errorf("%w: need 24 bytes for wrapped entry at offset %d, have %d",
			ErrTooShort, cur.Pos(), cur.Remaining())
	}
	var entry wrappedEntry

	b, err := cur.ReadByte()
	if err != nil {
		return wrappedEntry{}, err
	}
	entry.EntryType = b & 0x0F
	// The parentheses matter: the shift binds tighter than the mask.
	entry.AddressType = (b & 0x70) >> 4
	entry.OneOff = b&0x80 != 0

	if entry.Flags, err = cur.ReadUint(4); err != nil {
		return wrappedEntry{}, err
	}
	guid2, err := cur.ReadBytes(16)
	if err != nil {
		return wrappedEntry{}, err
	}
	copy(entry.GUID2[:], guid2)

	if entry.DescriptorIndex, err = cur.ReadUint(3); err != nil {
		return wrappedEntry{}, err
	}
	// Trailing pad byte. Writers emit it, but a record cut exactly here is
	// still usable.
	if cur.Remaining() > 0 {
		if err := cur.Skip(1); err != nil {
			return wrappedEntry{}, err
		}
	}
	return entry, nil
}
