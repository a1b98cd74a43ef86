// Package permute generates bucket name candidates from a base name.
// Generation is pure and restartable: the same base always yields the same
// ordered, duplicate-free list.
package permute

import (
	"strings"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

// Mode selects between probing the exact base name and the full variant set.
type Mode int

const (
	Exact Mode = iota
	Variations
)

var envTags = []string{"dev", "staging", "test", "qa", "prod"}

var serviceTags = []string{
	"logs", "backups", "archive", "resources", "files", "images",
	"static", "uploads", "cdn", "content", "assets", "config", "data", "api",
}

// Generate expands a base name into candidates. The base name itself is
// always first and is the only entry tagged exact.
func Generate(base string, mode Mode) []core.Candidate {
	if mode == Exact {
		return []core.Candidate{{Base: base, Tag: core.TagExact, Text: base}}
	}

	v := []string{
		base,
		"www." + base, base + "-www",
		base + ".com", "www." + base + ".com", base + "-com", "www-" + base + "-com",
	}
	for _, e := range envTags {
		v = append(v, base+"-"+e)
	}
	for _, e := range envTags {
		v = append(v, e+"-"+base)
	}
	for _, s := range serviceTags {
		v = append(v, base+"-"+s)
	}
	for _, s := range serviceTags {
		v = append(v, s+"-"+base)
	}
	v = append(v,
		base+"-s3", "s3-"+base,
		strings.ReplaceAll(base, "_", "-"), strings.ReplaceAll(base, "-", "_"),
		base+"-app", "app-"+base, base+"-service", "service-"+base,
		base+"-storage", base+"-dist",
		base+"-v1", base+"-v2", base+"-old", base+"-new",
		"v1-"+base, "v2-"+base,
		base+".com-dev", base+".com-test", base+".com-prod",
		"dev-"+base+".com", "test-"+base+".com", "prod-"+base+".com",
	)
	dash := strings.ReplaceAll(base, ".", "-")
	v = append(v, dash, "www-"+dash, dash+"-dev", dash+"-prod", dash+"-logs", dash+"-assets")

	seen := make(map[string]bool, len(v))
	out := make([]core.Candidate, 0, len(v))
	for i, text := range v {
		if seen[text] {
			continue
		}
		seen[text] = true
		tag := core.TagVariation
		if i == 0 {
			tag = core.TagExact
		}
		out = append(out, core.Candidate{Base: base, Tag: tag, Text: text})
	}
	return out
}
