// Package pstconv decodes the two binary MAPI property layouts a general
// PST library leaves opaque: distribution-list membership
// (PidLidDistributionListMembers) and appointment recurrence patterns
// (PidLidAppointmentRecur).
package pstconv

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/jtraulle/pstconv/internal/distlist"
	"github.com/jtraulle/pstconv/internal/property"
	"github.com/jtraulle/pstconv/internal/recurrence"
)

// Property kind names accepted by DecodeProperty and the --property flag.
const (
	KindMembers    = "members"
	KindRecurrence = "recurrence"
)

// Result captures the outcome of one property decode.
type Result struct {
	// Property is the decoded kind name ("members" or "recurrence").
	Property string
	// Tag is the MAPI named property ID the layout belongs to.
	Tag       uint16
	ByteCount int

	// Members is set for distribution lists, possibly shorter than the
	// declared count.
	Members []distlist.Member
	// RRule is set for recurrence patterns; empty means "not recurring".
	RRule string

	Diagnostics []distlist.Diagnostic
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"property":   r.Property,
		"tag":        fmt.Sprintf("0x%04X", r.Tag),
		"byte_count": r.ByteCount,
	}
	if r.Property == KindMembers {
		members := make([]map[string]any, 0, len(r.Members))
		for _, m := range r.Members {
			entry := map[string]any{"kind": m.Kind.String()}
			switch m.Kind {
			case distlist.KindOneOff:
				entry["display_name"] = m.OneOff.DisplayName
				entry["address_type"] = m.OneOff.AddressType
				entry["email_address"] = m.OneOff.EmailAddress
			case distlist.KindResolved:
				entry["descriptor_index"] = m.DescriptorIndex
			case distlist.KindSkipped:
				entry["descriptor_index"] = m.DescriptorIndex
				entry["reason"] = m.Reason
			}
			members = append(members, entry)
		}
		summary["members"] = members
	}
	if r.Property == KindRecurrence {
		summary["rrule"] = r.RRule
	}
	if len(r.Diagnostics) > 0 {
		msgs := make([]string, 0, len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			msgs = append(msgs, d.Msg)
		}
		summary["diagnostics"] = msgs
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("property: %s bytes:%d (marshal error: %v)", r.Property, r.ByteCount, err)
	}
	return string(data)
}

// DecodeHex decodes a hex-encoded property blob, auto-detecting its kind.
func DecodeHex(raw string, opts DecodeOptions) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	entry, err := property.Detect(data)
	if err != nil {
		return Result{}, err
	}
	return decodeEntry(entry, data, opts)
}

// DecodeProperty decodes data as the named property kind.
func DecodeProperty(kind string, data []byte, opts DecodeOptions) (Result, error) {
	entry, err := property.Lookup(kind)
	if err != nil {
		return Result{}, fmt.Errorf("%w (known kinds: %s)", err, strings.Join(property.Names(), ", "))
	}
	return decodeEntry(entry, data, opts)
}

// DecodeMembers decodes a distribution-list membership blob.
func DecodeMembers(data []byte, opts DecodeOptions) (Result, error) {
	result := Result{
		Property:  KindMembers,
		Tag:       property.PidLidDistributionListMembers,
		ByteCount: len(data),
	}
	if opts.Strict {
		members, diags, err := distlist.DecodeMembers(data, opts.MemberCap, opts.Resolver)
		if err != nil {
			return result, err
		}
		result.Members = members
		result.Diagnostics = diags
		return result, nil
	}
	result.Members, result.Diagnostics = distlist.DecodeMembersSafe(data, opts.MemberCap, opts.Resolver)
	return result, nil
}

// DecodeRecurrence decodes a recurrence pattern blob. A short or
// unrecognized structure yields an empty RRule, never an error.
func DecodeRecurrence(data []byte) Result {
	return Result{
		Property:  KindRecurrence,
		Tag:       property.PidLidAppointmentRecur,
		ByteCount: len(data),
		RRule:     recurrence.RRule(data),
	}
}

func decodeEntry(entry property.Entry, data []byte, opts DecodeOptions) (Result, error) {
	switch entry.Name {
	case KindMembers:
		return DecodeMembers(data, opts)
	case KindRecurrence:
		return DecodeRecurrence(data), nil
	default:
		return Result{}, fmt.Errorf("no decoder for property kind %q", entry.Name)
	}
}

// DecodeHexBytes decodes a hex string into raw bytes. Whitespace and the
// '|' and '_' separators common in captured dumps are ignored, as is a
// leading 0x prefix.
func DecodeHexBytes(input string) ([]byte, error) {
	return decodeHex(input)
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(strings.ToUpper(clean), "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex blob must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
