package distlist

// Entry variant GUIDs from the PidLidDistributionListMembers layout. The
// 16 bytes act purely as a variant discriminator and are compared whole;
// never by prefix.
var (
	wrappedEntryGUID = [16]byte{
		0x81, 0x2b, 0x1f, 0xa4, 0xbe, 0xa3, 0x10, 0x19,
		0x9d, 0x6e, 0x00, 0xdd, 0x01, 0x0f, 0x54, 0x02,
	}
	oneOffEntryGUID = [16]byte{
		0xc0, 0x91, 0xad, 0xd3, 0x51, 0x9d, 0xcf, 0x11,
		0xa4, 0xa9, 0x00, 0xaa, 0x00, 0x47, 0xfa, 0xa4,
	}
)

func guidEqual(got []byte, want [16]byte) bool {
	if len(got) != 16 {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
