package ses

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	elementTypeRe = regexp.MustCompile(`^\s+Element type: (.+), subenclosure`)
	descriptorRe  = regexp.MustCompile(`^\s+Element ([0-9]+) descriptor:\s*(.*)$`)
	rawBytesRe    = regexp.MustCompile(`^\s+([0-9a-f ]{11})`)
)

// ParseSlotStatuses walks a status page and collects the raw status bytes of
// array device slot elements, keyed by 1-based slot number (the page reports
// 0-based element indices). Elements with an empty descriptor are skipped;
// they are unwired backplane positions.
func ParseSlotStatuses(status string) map[int]ElementStatus {
	out := make(map[int]ElementStatus)

	inSlotGroup := false
	number := -1
	descriptor := ""
	for _, line := range strings.Split(status, "\n") {
		if m := elementTypeRe.FindStringSubmatch(line); m != nil {
			inSlotGroup = strings.EqualFold(strings.TrimSpace(m[1]), "Array Device Slot")
			number = -1
			continue
		}
		if m := descriptorRe.FindStringSubmatch(line); m != nil {
			number, _ = strconv.Atoi(m[1])
			descriptor = strings.TrimSpace(m[2])
			continue
		}
		if m := rawBytesRe.FindStringSubmatch(line); m != nil {
			if inSlotGroup && number >= 0 && descriptor != "" && descriptor != "<empty>" {
				var b [4]byte
				for i, f := range strings.Fields(m[1]) {
					if i > 3 {
						break
					}
					n, err := strconv.ParseUint(f, 16, 8)
					if err != nil {
						continue
					}
					b[i] = byte(n)
				}
				out[number+1] = ElementStatus{
					Type:       ArrayDeviceSlotType,
					Descriptor: descriptor,
					Status:     b,
				}
			}
			number = -1
			continue
		}
		number = -1
	}

	return out
}
