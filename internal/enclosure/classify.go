package enclosure

import (
	"regexp"
	"strings"

	"github.com/sigreer/shelfctl/internal/platform"
)

// modelSource selects where a matched rule takes its model name from.
type modelSource int

const (
	modelLiteral         modelSource = iota
	modelStrippedProduct             // platform product name minus "TRUENAS-"
	modelProduct                     // platform product name verbatim
)

// modelRule is one entry of the classification table. Rules are tried in
// order; the first whose name and product gates both match wins.
type modelRule struct {
	pattern    *regexp.Regexp // anchored match against the enclosure name
	prefixes   []string       // alternative: any-of prefix match
	exact      string         // alternative: exact name match
	productAny []string       // optional gate: product equals one of these
	productRe  *regexp.Regexp // optional gate: product matches
	needle     string         // optional gate: substring of the raw config page
	model      string
	source     modelSource
	controller bool
}

var (
	mSeriesRe  = regexp.MustCompile(`^(ECStream|iX) 4024S([ps])`)
	rSeriesRe  = regexp.MustCompile(`^(ECStream|iX) (FS1|FS2|DSS212S[ps])`)
	r20Re      = regexp.MustCompile(`^(iX (TrueNAS R20|2012S)p|SMC SC826-P)`)
	r50Re      = regexp.MustCompile(`^iX eDrawer4048S([12])`)
	xSeriesRe  = regexp.MustCompile(`^CELESTIC (P3215-O|P3217-B)`)
	es24Re     = regexp.MustCompile(`^(ECStream|iX) 4024J`)
	es24fRe    = regexp.MustCompile(`^(ECStream|iX) 2024J([ps])`)
	miniRe     = regexp.MustCompile(`^(TRUE|FREE)NAS-MINI`)
	sgpioEnc   = "AHCI SGPIO Enclosure 2.00"
	zSeriesSub = "SD_9GV12P1J_12R6K4"
)

// modelRules is the chassis classification table. Hardware support
// additions are rows here, not new control flow.
var modelRules = []modelRule{
	{pattern: mSeriesRe, model: "M Series", controller: true},
	{pattern: rSeriesRe, source: modelStrippedProduct, controller: true},
	{pattern: r20Re, source: modelStrippedProduct, controller: true},
	{pattern: r50Re, source: modelStrippedProduct, controller: true},
	{exact: sgpioEnc, productAny: platform.R20Variants, source: modelStrippedProduct, controller: true},
	{exact: sgpioEnc, productRe: miniRe, source: modelProduct, controller: true},
	// SGPIO on anything else stays unmodeled but counts as the head unit
	{exact: sgpioEnc, controller: true},
	{pattern: xSeriesRe, model: "X Series", controller: true},
	{prefixes: []string{"BROADCOM VirtualSES 03"}, model: "H Series", controller: true},
	{prefixes: []string{"QUANTA JB9 SIM"}, model: "E60"},
	{prefixes: []string{"Storage 1729"}, model: "E24"},
	{prefixes: []string{"ECStream 3U16+4R-4X6G.3"}, needle: zSeriesSub, model: "Z Series", controller: true},
	{prefixes: []string{"ECStream 3U16+4R-4X6G.3"}, model: "E16"},
	{prefixes: []string{"ECStream 3U16RJ-AC.r3"}, model: "E16"},
	{prefixes: []string{"HGST H4102-J"}, model: "ES102"},
	{prefixes: []string{"VikingES NDS-41022-BB", "VikingES VDS-41022-BB"}, model: "ES102G2"},
	{prefixes: []string{"CELESTIC R0904"}, model: "ES60"},
	{prefixes: []string{"HGST H4060-J"}, model: "ES60G2"},
	{pattern: es24Re, model: "ES24"},
	{pattern: es24fRe, model: "ES24F"},
	{prefixes: []string{"CELESTIC X2012"}, model: "ES12"},
}

// Classify maps a decoded enclosure name, platform product name, and raw
// configuration text to the canonical chassis model and head-unit flag.
// Unmatched input yields an empty model and controller false.
func Classify(name, product, config string) (string, bool) {
	for _, r := range modelRules {
		if !r.matches(name, product, config) {
			continue
		}
		switch r.source {
		case modelStrippedProduct:
			return strings.Replace(product, "TRUENAS-", "", 1), r.controller
		case modelProduct:
			return product, r.controller
		default:
			return r.model, r.controller
		}
	}
	return "", false
}

func (r *modelRule) matches(name, product, config string) bool {
	switch {
	case r.pattern != nil:
		if !r.pattern.MatchString(name) {
			return false
		}
	case r.exact != "":
		if name != r.exact {
			return false
		}
	default:
		ok := false
		for _, p := range r.prefixes {
			if strings.HasPrefix(name, p) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if len(r.productAny) > 0 {
		ok := false
		for _, p := range r.productAny {
			if product == p {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if r.productRe != nil && !r.productRe.MatchString(product) {
		return false
	}
	if r.needle != "" && !strings.Contains(config, r.needle) {
		return false
	}

	return true
}
