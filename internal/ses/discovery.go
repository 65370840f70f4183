package ses

import (
	"fmt"
	"os"
	"sort"
)

// DefaultEnclosureRoot is where the kernel exposes enclosure devices.
const DefaultEnclosureRoot = "/sys/class/enclosure"

// Discover enumerates attached SES enclosures. Each entry under root is
// named by the SCSI address of the enclosure device; the matching control
// device lives at /dev/bsg/<addr>.
func Discover(root string) ([]Handle, error) {
	if root == "" {
		root = DefaultEnclosureRoot
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			// no enclosure devices attached
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	var handles []Handle
	for _, entry := range entries {
		handles = append(handles, Handle{
			Addr: entry.Name(),
			Bsg:  "bsg/" + entry.Name(),
		})
	}

	// stable discovery order across calls
	sort.Slice(handles, func(i, j int) bool { return handles[i].Addr < handles[j].Addr })

	return handles, nil
}
