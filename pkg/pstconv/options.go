package pstconv

import "github.com/jtraulle/pstconv/internal/distlist"

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// MemberCap bounds the declared member count of a distribution list.
	// Zero means distlist.DefaultMemberCap.
	MemberCap int
	// Strict reports member-list header corruption as an error instead of
	// degrading to an empty list.
	Strict bool
	// Resolver loads the store objects wrapped entries reference. When nil,
	// wrapped entries decode as skipped members.
	Resolver distlist.Resolver
}
