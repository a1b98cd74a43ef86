package endpoints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

func TestRegionsAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Regions {
		require.False(t, seen[r], "duplicate region %q", r)
		seen[r] = true
	}
	require.True(t, seen["us-east-1"])
	require.Len(t, Regions, 30)
}

func TestBuildGlobalForms(t *testing.T) {
	eps := Build("acme", "")
	require.Len(t, eps, 6) // 3 forms x 2 protocols

	hosts := make(map[string]core.Endpoint)
	for _, ep := range eps {
		require.False(t, ep.Skip)
		require.Empty(t, ep.Region)
		require.Equal(t, "acme", ep.Candidate)
		if ep.Protocol == core.HTTP {
			hosts[ep.Host+ep.Path] = ep
		}
	}

	bare, ok := hosts["acme"]
	require.True(t, ok)
	require.False(t, bare.Storage)
	require.Equal(t, core.FormBare, bare.Form)

	global, ok := hosts["acme.s3.amazonaws.com"]
	require.True(t, ok)
	require.True(t, global.Storage)
	require.False(t, global.PathStyle)

	pathForm, ok := hosts["s3.amazonaws.com/acme"]
	require.True(t, ok)
	require.True(t, pathForm.PathStyle)
}

func TestBuildRegionalForms(t *testing.T) {
	eps := Build("acme", "eu-west-1")
	require.Len(t, eps, 20) // 10 forms x 2 protocols

	byKey := make(map[string]core.Endpoint)
	for _, ep := range eps {
		require.Equal(t, "eu-west-1", ep.Region)
		require.True(t, ep.Storage)
		if ep.Protocol == core.HTTPS {
			byKey[ep.Host+ep.Path] = ep
		}
	}

	for key, form := range map[string]core.HostForm{
		"acme.s3.eu-west-1.amazonaws.com":           core.FormRegional,
		"s3.eu-west-1.amazonaws.com/acme":           core.FormRegional,
		"acme.s3-eu-west-1.amazonaws.com":           core.FormRegionalLegacy,
		"s3-eu-west-1.amazonaws.com/acme":           core.FormRegionalLegacy,
		"acme.s3.dualstack.eu-west-1.amazonaws.com": core.FormDualstack,
		"s3.dualstack.eu-west-1.amazonaws.com/acme": core.FormDualstack,
	} {
		ep, ok := byKey[key]
		require.True(t, ok, "missing endpoint %q", key)
		require.Equal(t, form, ep.Form)
		require.False(t, ep.Skip)
	}
}

func TestWebsiteFormsAreFlaggedSkip(t *testing.T) {
	var website int
	for _, ep := range Build("acme", "us-west-2") {
		if ep.Form == core.FormWebsite {
			website++
			require.True(t, ep.Skip, "website endpoint %s must be skipped", ep.URL())
		} else {
			require.False(t, ep.Skip)
		}
	}
	require.Equal(t, 8, website) // 4 forms x 2 protocols
}

func TestEndpointURL(t *testing.T) {
	eps := Build("acme", "")
	var urls []string
	for _, ep := range eps {
		urls = append(urls, ep.URL())
	}
	require.Contains(t, urls, "http://acme.s3.amazonaws.com")
	require.Contains(t, urls, "https://s3.amazonaws.com/acme")
}
