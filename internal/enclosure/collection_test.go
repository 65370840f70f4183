package enclosure

import (
	"errors"
	"testing"

	"github.com/sigreer/shelfctl/internal/element"
)

func collectionOf(encs ...*Enclosure) *Collection {
	c := &Collection{}
	for _, enc := range encs {
		c.Add(enc)
	}
	return c
}

func ids(c *Collection) []string {
	out := make([]string, 0, c.Len())
	for _, enc := range c.All() {
		out = append(out, enc.ID)
	}
	return out
}

func TestSortAndNumberControllersFirst(t *testing.T) {
	c := collectionOf(
		&Enclosure{ID: "a", Name: "HGST H4102-J"},
		&Enclosure{ID: "b", Name: "iX 4024Sp", Controller: true},
	)
	c.SortAndNumber()

	got := ids(c)
	if got[0] != "b" || got[1] != "a" {
		t.Fatalf("order = %v, want controller first", got)
	}
	for i, enc := range c.All() {
		if enc.Number != i {
			t.Errorf("enclosure %s number = %d, want %d", enc.ID, enc.Number, i)
		}
	}
}

func TestSortAndNumberByID(t *testing.T) {
	c := collectionOf(
		&Enclosure{ID: "5b0bd6d1a3097fe5", Name: "HGST H4102-J"},
		&Enclosure{ID: "3b0bd6d1a3097fe5", Name: "HGST H4102-J"},
	)
	c.SortAndNumber()

	got := ids(c)
	if got[0] != "3b0bd6d1a3097fe5" {
		t.Fatalf("order = %v, want ascending by id", got)
	}
}

func TestSortAndNumberFirstExpanderWins(t *testing.T) {
	// the head unit sorts first, but the first R50 drawer expander is
	// forced to the front regardless
	c := collectionOf(
		&Enclosure{ID: "c", Name: "iX eDrawer4048S2 0001"},
		&Enclosure{ID: "a", Name: "iX eDrawer4048S1 0001"},
		&Enclosure{ID: "b", Name: "iX 4024Sp", Controller: true},
	)
	c.SortAndNumber()

	got := ids(c)
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("order = %v, want marker enclosure first", got)
	}
	if c.All()[0].Number != 0 {
		t.Errorf("marker enclosure number = %d, want 0", c.All()[0].Number)
	}
}

func TestBlacklist(t *testing.T) {
	tests := []struct {
		name    string
		product string
		out     bool
	}{
		{"BROADCOM VirtualSES 03-0099", "TRUENAS-M40", true},
		{"BROADCOM VirtualSES 03-0099", "TRUENAS-H10", false},
		{"AHCI SGPIO Enclosure 2.00", "TRUENAS-M40", true},
		{"AHCI SGPIO Enclosure 2.00", "FREENAS-MINI-3.0-E", false},
		{"AHCI SGPIO Enclosure 2.00", "TRUENAS-R20", false},
		{"AHCI SGPIO Enclosure 2.00", "TRUENAS-R20B", false},
		{"iX 4024Sp e001", "TRUENAS-M40", false},
	}
	for _, tc := range tests {
		if got := Blacklisted(tc.name, tc.product); got != tc.out {
			t.Errorf("Blacklisted(%q, %q) = %v, want %v", tc.name, tc.product, got, tc.out)
		}
	}
}

func TestApplyLabels(t *testing.T) {
	c := collectionOf(
		&Enclosure{ID: "a", Name: "first"},
		&Enclosure{ID: "b", Name: "second"},
	)
	c.ApplyLabels(map[string]string{"a": "rack 2 shelf 1"})

	if got := c.GetByID("a").DisplayName(); got != "rack 2 shelf 1" {
		t.Errorf("labeled display name = %q", got)
	}
	if got := c.GetByID("b").DisplayName(); got != "second" {
		t.Errorf("unlabeled display name = %q, want decoded name", got)
	}
}

func TestFindSlot(t *testing.T) {
	withSlot := func(id, devname string, slot int) *Enclosure {
		enc := &Enclosure{ID: id}
		el := element.New(element.KindArrayDeviceSlot, slot, 0x01000000, "")
		el.DeviceName = devname
		enc.Append(el)
		return enc
	}
	c := collectionOf(withSlot("a", "sda", 1), withSlot("b", "sdb", 4))

	enc, el, err := c.FindSlot(ByDevice("sdb"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if enc.ID != "b" || el.Slot != 4 {
		t.Errorf("found %s slot %d, want b slot 4", enc.ID, el.Slot)
	}

	enc, el, err = c.FindSlot(BySlotNumber(4), func(e *Enclosure) bool { return e.ID == "b" })
	if err != nil {
		t.Fatal(err)
	}
	if enc.ID != "b" || el.DeviceName != "sdb" {
		t.Errorf("found %s device %s", enc.ID, el.DeviceName)
	}

	if _, _, err := c.FindSlot(ByDevice("sdz"), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing device err = %v, want ErrNotFound", err)
	}
	if _, _, err := c.FindSlot(ByDevice(""), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty device err = %v, want ErrNotFound", err)
	}
}
