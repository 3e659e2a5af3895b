// Package property names the MAPI properties whose binary values this module
// decodes and keeps a small registration table used to pick a decoder for an
// untagged blob.
package property

import (
	"fmt"
	"sync"
)

// MAPI named property IDs (PSETID_Address / PSETID_Appointment).
const (
	PidLidDistributionListMembers = 0x8055
	PidLidAppointmentRecur        = 0x8216
)

// Entry describes one decodable property kind.
type Entry struct {
	// Tag is the named property ID the blob is normally stored under.
	Tag uint16
	// Name is the short kind name used on the command line ("members",
	// "recurrence").
	Name string
	// Sniff reports whether data plausibly holds this property's binary
	// layout. It must be cheap and must not allocate per call.
	Sniff func(data []byte) bool
}

var (
	regMu    sync.RWMutex
	registry []Entry
)

// Register stores a property entry in memory. Decoder packages register
// themselves from init.
func Register(e Entry) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, e)
}

// Lookup returns the entry registered under the given kind name.
func Lookup(name string) (Entry, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, e := range registry {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("no decoder registered for property kind %q", name)
}

// Detect returns the first registered entry whose sniffer accepts data.
func Detect(data []byte) (Entry, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, e := range registry {
		if e.Sniff != nil && e.Sniff(data) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("blob does not match any known property layout")
}

// Names lists the registered kind names, in registration order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.Name)
	}
	return names
}
