// Package endpoints maps a candidate bucket name onto the concrete hosts and
// paths the web backend probes. Building is pure; the same inputs always
// produce the same ordered slice.
package endpoints

import (
	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

// Regions is every region worth probing, including the partitions that
// reject cross-partition requests outright (cn, gov, iso). Regional
// rejection behavior differs from the global endpoint, so each one is a
// distinct target.
var Regions = []string{
	"us-east-1", "us-east-2", "us-west-1", "us-west-2",
	"af-south-1", "ap-east-1", "ap-southeast-1", "ap-southeast-2",
	"ap-southeast-3", "ap-northeast-1", "ap-northeast-2", "ap-northeast-3",
	"ap-south-1", "ca-central-1",
	"cn-north-1", "cn-northwest-1",
	"eu-central-1", "eu-west-1", "eu-west-2", "eu-west-3",
	"eu-north-1", "eu-south-1",
	"me-south-1", "me-central-1",
	"sa-east-1",
	"us-gov-east-1", "us-gov-west-1",
	"us-iso-east-1", "us-iso-west-1", "us-isob-east-1",
}

type form struct {
	host      string
	path      string
	kind      core.HostForm
	pathStyle bool
	storage   bool
	skip      bool
}

// Build returns the endpoints for one candidate. An empty region yields the
// bare host and the global forms; a region yields the regional, legacy
// hyphenated, dualstack and website forms. Every form is emitted once per
// protocol, http first.
func Build(name, region string) []core.Endpoint {
	var forms []form
	if region == "" {
		forms = []form{
			{host: name, kind: core.FormBare},
			{host: name + ".s3.amazonaws.com", kind: core.FormGlobal, storage: true},
			{host: "s3.amazonaws.com", path: "/" + name, kind: core.FormGlobal, pathStyle: true, storage: true},
		}
	} else {
		forms = []form{
			{host: name + ".s3." + region + ".amazonaws.com", kind: core.FormRegional, storage: true},
			{host: "s3." + region + ".amazonaws.com", path: "/" + name, kind: core.FormRegional, pathStyle: true, storage: true},
			{host: name + ".s3-" + region + ".amazonaws.com", kind: core.FormRegionalLegacy, storage: true},
			{host: "s3-" + region + ".amazonaws.com", path: "/" + name, kind: core.FormRegionalLegacy, pathStyle: true, storage: true},
			{host: name + ".s3.dualstack." + region + ".amazonaws.com", kind: core.FormDualstack, storage: true},
			{host: "s3.dualstack." + region + ".amazonaws.com", path: "/" + name, kind: core.FormDualstack, pathStyle: true, storage: true},
			// Website hosts answer with redirects that say nothing about
			// listing state; they are never dereferenced.
			{host: name + ".s3-website." + region + ".amazonaws.com", kind: core.FormWebsite, storage: true, skip: true},
			{host: name + ".s3-website-" + region + ".amazonaws.com", kind: core.FormWebsite, storage: true, skip: true},
			{host: "s3-website." + region + ".amazonaws.com", path: "/" + name, kind: core.FormWebsite, pathStyle: true, storage: true, skip: true},
			{host: "s3-website-" + region + ".amazonaws.com", path: "/" + name, kind: core.FormWebsite, pathStyle: true, storage: true, skip: true},
		}
	}

	out := make([]core.Endpoint, 0, len(forms)*2)
	for _, f := range forms {
		for _, proto := range []core.Protocol{core.HTTP, core.HTTPS} {
			out = append(out, core.Endpoint{
				Candidate: name,
				Region:    region,
				Host:      f.host,
				Path:      f.path,
				Form:      f.kind,
				PathStyle: f.pathStyle,
				Protocol:  proto,
				Storage:   f.storage,
				Skip:      f.skip,
			})
		}
	}
	return out
}
