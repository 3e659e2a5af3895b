// Package distlist decodes the binary value of the
// PidLidDistributionListMembers property: a counted list of member records
// where wrapped entries reference another store object by descriptor index
// and one-off entries carry name/address-type/address strings inline. The
// two shapes are told apart by a 16-byte GUID tag per record.
//
// The input is untrusted. Truncated or malformed lists decode to as many
// members as could be recovered; only a corrupt header is fatal, and
// DecodeMembersSafe converts even that into an empty result.
package distlist

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jtraulle/pstconv/internal/cursor"
	"github.com/jtraulle/pstconv/internal/property"
)

// DefaultMemberCap bounds the declared member count of a list. Counts above
// it are treated as header corruption.
const DefaultMemberCap = 10000

// Header failures for the strict entry point.
var (
	ErrInvalidCount  = errors.New("invalid member count")
	ErrInvalidOffset = errors.New("invalid member data offset")
)

// MemberKind discriminates the closed set of member variants.
type MemberKind int

const (
	// KindResolved is a wrapped entry whose referenced object was loaded.
	KindResolved MemberKind = iota
	// KindOneOff is an inline name/address entry.
	KindOneOff
	// KindSkipped is a wrapped entry whose resolution failed.
	KindSkipped
)

func (k MemberKind) String() string {
	switch k {
	case KindResolved:
		return "resolved"
	case KindOneOff:
		return "one-off"
	case KindSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is one decoded distribution-list entry. Which fields are set
// depends on Kind: DescriptorIndex and Object for resolved entries,
// the OneOff fields for one-off entries, DescriptorIndex and Reason for
// skipped entries.
type Member struct {
	Kind            MemberKind
	DescriptorIndex uint32
	Object          any
	OneOff          OneOffEntry
	Reason          string
}

// Resolver loads another store object by descriptor index. It is supplied by
// the surrounding conversion system, which owns the container's descriptor
// store; it may perform I/O and may fail.
type Resolver func(descriptorIndex uint32) (any, error)

// Diagnostic records a non-fatal condition observed while decoding.
// Member is the zero-based index in the declared list, or -1 for
// list-level conditions.
type Diagnostic struct {
	Member int
	Msg    string
}

// DecodeMembers decodes a PidLidDistributionListMembers blob. memberCap
// bounds the declared count (DefaultMemberCap when <= 0); resolve loads
// wrapped entries and may be nil, in which case wrapped entries are skipped.
//
// A short or absent blob means "no members" and decodes to an empty list.
// A corrupt header (count or offset) is the only fatal outcome. Past the
// header the decode is best-effort: a failing resolver call skips that one
// entry, while an undecodable record stops the walk because record lengths
// are only known after successful type-specific decoding.
func DecodeMembers(data []byte, memberCap int, resolve Resolver) ([]Member, []Diagnostic, error) {
	if memberCap <= 0 {
		memberCap = DefaultMemberCap
	}
	if len(data) < 8 {
		if len(data) > 0 {
			return nil, []Diagnostic{{Member: -1, Msg: fmt.Sprintf("member list too short: %d bytes", len(data))}}, nil
		}
		return nil, nil, nil
	}

	count := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	if count < 0 || count > memberCap {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count == 0 {
		return nil, nil, nil
	}
	bodyOffset := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	if bodyOffset < 0 || bodyOffset >= len(data) {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidOffset, bodyOffset)
	}

	cur := cursor.New(data)
	if err := cur.Seek(bodyOffset); err != nil {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidOffset, bodyOffset)
	}

	members := make([]Member, 0, count)
	var diags []Diagnostic

	for i := 0; i < count; i++ {
		if cur.Remaining() < 20 {
			diags = append(diags, Diagnostic{Member: i, Msg: fmt.Sprintf("not enough data for member at offset %d", cur.Pos())})
			break
		}
		// Per-entry dispatch prefix: 4 flag bytes, then the variant GUID.
		if _, err := cur.ReadUint(4); err != nil {
			diags = append(diags, Diagnostic{Member: i, Msg: err.Error()})
			break
		}
		guid, err := cur.ReadBytes(16)
		if err != nil {
			diags = append(diags, Diagnostic{Member: i, Msg: err.Error()})
			break
		}

		switch {
		case guidEqual(guid, wrappedEntryGUID):
			entry, err := decodeWrapped(cur)
			if err != nil {
				diags = append(diags, Diagnostic{Member: i, Msg: err.Error()})
				return members, diags, nil
			}
			members = append(members, resolveMember(entry, resolve, i, &diags))

		case guidEqual(guid, oneOffEntryGUID):
			entry, err := decodeOneOff(data, cur.Pos())
			if err != nil {
				// The record length is unknowable, so there is no safe
				// continuation point past this entry.
				diags = append(diags, Diagnostic{Member: i, Msg: err.Error()})
				return members, diags, nil
			}
			if err := cur.Seek(entry.End); err != nil {
				diags = append(diags, Diagnostic{Member: i, Msg: err.Error()})
				return members, diags, nil
			}
			members = append(members, Member{Kind: KindOneOff, OneOff: entry})

		default:
			diags = append(diags, Diagnostic{Member: i, Msg: fmt.Sprintf("unknown entry GUID % x", guid)})
			return members, diags, nil
		}
	}
	return members, diags, nil
}

// resolveMember turns a wrapped entry into a resolved or skipped member.
// Resolution failure is the one recoverable per-entry condition: the list
// walk continues at the next record either way.
func resolveMember(entry wrappedEntry, resolve Resolver, index int, diags *[]Diagnostic) Member {
	if resolve == nil {
		return Member{
			Kind:            KindSkipped,
			DescriptorIndex: entry.DescriptorIndex,
			Reason:          fmt.Sprintf("no resolver for descriptor index %d", entry.DescriptorIndex),
		}
	}
	obj, err := resolve(entry.DescriptorIndex)
	if err != nil {
		*diags = append(*diags, Diagnostic{
			Member: index,
			Msg:    fmt.Sprintf("unable to load member with descriptor index %d: %v", entry.DescriptorIndex, err),
		})
		return Member{
			Kind:            KindSkipped,
			DescriptorIndex: entry.DescriptorIndex,
			Reason:          err.Error(),
		}
	}
	return Member{
		Kind:            KindResolved,
		DescriptorIndex: entry.DescriptorIndex,
		Object:          obj,
	}
}

// DecodeMembersSafe is the best-effort entry point: it never returns an
// error. Header corruption decodes to an empty list with the failure
// recorded as a diagnostic.
func DecodeMembersSafe(data []byte, memberCap int, resolve Resolver) ([]Member, []Diagnostic) {
	members, diags, err := DecodeMembers(data, memberCap, resolve)
	if err != nil {
		return nil, append(diags, Diagnostic{Member: -1, Msg: err.Error()})
	}
	return members, diags
}

func init() {
	property.Register(property.Entry{
		Tag:   property.PidLidDistributionListMembers,
		Name:  "members",
		Sniff: sniffMemberList,
	})
}

// sniffMemberList checks the header and the first record's GUID, which is
// enough to tell a member list from other binary properties.
func sniffMemberList(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	count := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	if count <= 0 || count > DefaultMemberCap {
		return false
	}
	bodyOffset := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	if bodyOffset < 8 || bodyOffset+20 > len(data) {
		return false
	}
	guid := data[bodyOffset+4 : bodyOffset+20]
	return guidEqual(guid, wrappedEntryGUID) || guidEqual(guid, oneOffEntryGUID)
}
