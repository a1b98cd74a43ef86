package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
	"github.com/0xDTC/0xAWSCloud/pkg/endpoints"
	"github.com/0xDTC/0xAWSCloud/pkg/permute"
)

type fakeListing struct {
	mu    sync.Mutex
	calls []string
	fn    func(cand core.Candidate, region string) core.ProbeOutcome
}

func (f *fakeListing) Probe(_ context.Context, cand core.Candidate, region string) core.ProbeOutcome {
	f.mu.Lock()
	f.calls = append(f.calls, cand.Text+"|"+region)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(cand, region)
	}
	return core.ProbeOutcome{Kind: core.NotFound, Region: region, ObjectCount: -1}
}

func (f *fakeListing) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeWeb struct {
	mu      sync.Mutex
	calls   int
	skipped int
	fn      func(ep core.Endpoint) core.ProbeOutcome
}

func (f *fakeWeb) Probe(_ context.Context, ep core.Endpoint) core.ProbeOutcome {
	f.mu.Lock()
	f.calls++
	if ep.Skip {
		f.skipped++
	}
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(ep)
	}
	return core.ProbeOutcome{Kind: core.NotFound, Region: ep.Region, ObjectCount: -1}
}

func TestRunExactListingOnly(t *testing.T) {
	// Scenario: exact name, listing path only, one region publicly listable.
	listing := &fakeListing{fn: func(cand core.Candidate, region string) core.ProbeOutcome {
		if cand.Text == "acme-corp" && region == "us-east-1" {
			return core.ProbeOutcome{Kind: core.FoundListable, Region: region, ObjectCount: 12}
		}
		return core.ProbeOutcome{Kind: core.NotFound, Region: region, ObjectCount: -1}
	}}

	cfg := &core.Config{Threads: 8}
	reg := NewRegistry()
	agg := NewAggregator()
	r := NewRunner(cfg, listing, nil, reg, agg, zerolog.Nop())

	r.Run(context.Background(), permute.Generate("acme-corp", permute.Exact))

	report := agg.Report()
	require.Len(t, report, 1)
	require.Equal(t, core.ListingBackend, report[0].Target.Backend)
	require.Equal(t, "acme-corp", report[0].Target.Name)
	require.Equal(t, "us-east-1", report[0].Outcome.Region)
	require.Equal(t, 12, report[0].Outcome.ObjectCount)
	require.True(t, agg.AnyFound())
	require.Equal(t, int64(1), r.Found())

	// One no-region task plus one per region, nothing else.
	require.Equal(t, len(endpoints.Regions)+1, listing.callCount())
	require.Equal(t, int64(len(endpoints.Regions)+1), r.Probed())
	require.Contains(t, listing.calls, "acme-corp|")
}

func TestRunNothingFound(t *testing.T) {
	// Scenario: both paths enabled, nothing accessible anywhere.
	listing := &fakeListing{}
	web := &fakeWeb{}

	cfg := &core.Config{Threads: 16}
	agg := NewAggregator()
	r := NewRunner(cfg, listing, web, NewRegistry(), agg, zerolog.Nop())

	r.Run(context.Background(), permute.Generate("ghost-bucket-xyz", permute.Exact))

	require.Empty(t, agg.Report())
	require.False(t, agg.AnyFound())
	require.Positive(t, web.calls)
	require.Zero(t, web.skipped, "website endpoints must never reach the web backend")
}

func TestRunDeduplicatesTargets(t *testing.T) {
	listing := &fakeListing{}
	cfg := &core.Config{Threads: 4}
	reg := NewRegistry()
	r := NewRunner(cfg, listing, nil, reg, NewAggregator(), zerolog.Nop())

	// The same candidate twice must not double the probes.
	cands := permute.Generate("acme", permute.Exact)
	cands = append(cands, cands...)
	r.Run(context.Background(), cands)

	want := len(endpoints.Regions) + 1
	require.Equal(t, want, listing.callCount())
	require.Equal(t, want, reg.Size())
}

func TestRunCancellationKeepsRecordedResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	const keep = 3
	var n int
	listing := &fakeListing{}
	listing.fn = func(cand core.Candidate, region string) core.ProbeOutcome {
		n++
		if n == keep {
			cancel()
		}
		return core.ProbeOutcome{Kind: core.FoundListable, Region: region, ObjectCount: 0}
	}

	// One worker makes the interleaving deterministic: exactly keep probes
	// complete before the cancellation is observed.
	cfg := &core.Config{Threads: 1}
	agg := NewAggregator()
	r := NewRunner(cfg, listing, nil, NewRegistry(), agg, zerolog.Nop())

	r.Run(ctx, permute.Generate("acme", permute.Exact))

	require.Len(t, agg.Report(), keep)
	require.True(t, agg.AnyFound())
}

func TestRunVariationsTagFindings(t *testing.T) {
	listing := &fakeListing{fn: func(cand core.Candidate, region string) core.ProbeOutcome {
		if region == "eu-west-1" && (cand.Text == "acme" || cand.Text == "acme-logs") {
			return core.ProbeOutcome{Kind: core.FoundListable, Region: region, ObjectCount: 1}
		}
		return core.ProbeOutcome{Kind: core.NotFound, Region: region, ObjectCount: -1}
	}}

	cfg := &core.Config{Threads: 8, Variations: true}
	agg := NewAggregator()
	r := NewRunner(cfg, listing, nil, NewRegistry(), agg, zerolog.Nop())

	r.Run(context.Background(), permute.Generate("acme", permute.Variations))

	report := agg.Report()
	require.Len(t, report, 2)
	tags := map[string]core.VariantTag{}
	for _, f := range report {
		tags[f.Target.Name] = f.Candidate.Tag
	}
	require.Equal(t, core.TagExact, tags["acme"])
	require.Equal(t, core.TagVariation, tags["acme-logs"])
}
