// Package export renders decoded distribution lists and recurrence rules as
// vCard VLIST and iCalendar VEVENT text, the consumer-facing shapes the
// mailbox conversion writes out.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jtraulle/pstconv/internal/distlist"
)

// Contact is the surface a resolved store object must offer to appear on a
// VLIST. Resolved members whose object does not implement it are left out,
// as are skipped members.
type Contact interface {
	DescriptorID() uint64
	DisplayName() string
	EmailAddress() string
}

// VList renders a decoded distribution list as a VLIST block. It returns
// false when the member list is empty, in which case nothing should be
// written.
func VList(descriptorID uint64, groupName string, members []distlist.Member) (string, bool) {
	if len(members) == 0 {
		return "", false
	}
	uid := fmt.Sprintf("PST-VL-%d", descriptorID)

	var vlist strings.Builder
	vlist.WriteString("BEGIN:VLIST\r\n")
	vlist.WriteString("UID:" + uid + ".vcf\r\n")
	vlist.WriteString("VERSION:1.0\r\n")

	for _, member := range members {
		switch member.Kind {
		case distlist.KindResolved:
			contact, ok := member.Object.(Contact)
			if !ok {
				continue
			}
			fmt.Fprintf(&vlist, "CARD;%s;FN=%s:PST-VC-%d.vcf\r\n",
				Escape(contact.EmailAddress()), Escape(contact.DisplayName()), contact.DescriptorID())
		case distlist.KindOneOff:
			fmt.Fprintf(&vlist, "MEMBER;FN=%s:%s\r\n",
				Escape(member.OneOff.DisplayName), Escape(member.OneOff.EmailAddress))
		}
	}

	if groupName != "" {
		vlist.WriteString("FN:" + groupName + "\r\n")
	}
	vlist.WriteString("END:VLIST\r\n")
	return vlist.String(), true
}

// Event carries the fields of a calendar item that survive into a VEVENT.
// RRule is the already-decoded recurrence rule, empty for one-shot items.
type Event struct {
	DescriptorID uint64
	Summary      string
	Location     string
	Description  string
	Start        time.Time
	End          time.Time
	Sensitivity  int
	RRule        string
}

const dateLayout = "20060102T150405Z"

// VEvent renders an event as a standalone VCALENDAR block. now becomes the
// DTSTAMP.
func VEvent(ev Event, now time.Time) string {
	uid := fmt.Sprintf("PST-VE-%d", ev.DescriptorID)

	var ical strings.Builder
	ical.WriteString("BEGIN:VCALENDAR\r\n")
	ical.WriteString("VERSION:2.0\r\n")
	ical.WriteString("PRODID:-//pstconv//NONSGML v1.0//EN\r\n")
	ical.WriteString("BEGIN:VEVENT\r\n")
	ical.WriteString("UID:" + uid + "\r\n")
	ical.WriteString("DTSTAMP:" + now.UTC().Format(dateLayout) + "\r\n")
	if !ev.Start.IsZero() {
		ical.WriteString("DTSTART:" + ev.Start.UTC().Format(dateLayout) + "\r\n")
	}
	if !ev.End.IsZero() {
		ical.WriteString("DTEND:" + ev.End.UTC().Format(dateLayout) + "\r\n")
	}
	if ev.Summary != "" {
		ical.WriteString("SUMMARY:" + Escape(ev.Summary) + "\r\n")
	}
	if ev.Location != "" {
		ical.WriteString("LOCATION:" + Escape(ev.Location) + "\r\n")
	}
	if ev.Description != "" {
		ical.WriteString("DESCRIPTION:" + Escape(ev.Description) + "\r\n")
	}
	ical.WriteString("CLASS:" + classify(ev.Sensitivity) + "\r\n")
	if ev.RRule != "" {
		ical.WriteString("RRULE:" + ev.RRule + "\r\n")
	}
	ical.WriteString("END:VEVENT\r\n")
	ical.WriteString("END:VCALENDAR\r\n")
	return ical.String()
}

// classify maps Outlook sensitivity to an iCalendar CLASS value.
func classify(sensitivity int) string {
	switch sensitivity {
	case 1, 2:
		return "PRIVATE"
	case 3:
		return "CONFIDENTIAL"
	default:
		return "PUBLIC"
	}
}

var icalEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\n", "\\n",
	"\r", "",
)

// Escape quotes the characters iCalendar and vCard treat as structural.
func Escape(text string) string {
	return icalEscaper.Replace(text)
}
