// Package platform answers identity questions about the appliance this
// process is running on.
package platform

import (
	"os"
	"strings"

	"github.com/sigreer/shelfctl/internal/cache"
)

// DefaultDMIRoot is where the kernel exposes DMI identity strings.
const DefaultDMIRoot = "/sys/class/dmi/id"

// R20Variants are the product names of the R20 family.
var R20Variants = []string{"TRUENAS-R20", "TRUENAS-R20A", "TRUENAS-R20B"}

// ProductName returns the DMI system product name, cached for the life of
// the process (hardware identity cannot change while booted).
func ProductName() string {
	c := cache.Global()
	cacheKey := "platform:product"

	if cached := c.Get(cacheKey); cached != nil {
		return cached.(string)
	}

	name := ReadProductName(DefaultDMIRoot)
	if name != "" {
		c.SetStatic(cacheKey, name)
	}
	return name
}

// ReadProductName reads the product name from a DMI root directory.
func ReadProductName(root string) string {
	data, err := os.ReadFile(root + "/product_name")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Supported reports whether enclosure management applies to this platform.
// Everything short-circuits to an empty result on unsupported hardware.
func Supported(product string) bool {
	return strings.HasPrefix(product, "TRUENAS-") || strings.HasPrefix(product, "FREENAS-")
}

// IsR20Variant reports whether the product is one of the R20 family.
func IsR20Variant(product string) bool {
	for _, v := range R20Variants {
		if product == v {
			return true
		}
	}
	return false
}

// IsHSeries reports whether the product is a head-unit controller whose
// slot state is sourced from sysfs rather than SES raw bytes.
func IsHSeries(product string) bool {
	return strings.HasPrefix(product, "TRUENAS-H")
}
