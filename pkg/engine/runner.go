package engine

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
	"github.com/0xDTC/0xAWSCloud/pkg/endpoints"
)

// ListingProber probes one (candidate, region) pair through the listing
// capability.
type ListingProber interface {
	Probe(ctx context.Context, cand core.Candidate, region string) core.ProbeOutcome
}

// EndpointProber probes one endpoint over HTTP.
type EndpointProber interface {
	Probe(ctx context.Context, ep core.Endpoint) core.ProbeOutcome
}

// task is one unit of probe work. Exactly one of the two shapes is set.
type task struct {
	candidate core.Candidate
	listing   bool
	region    string        // listing tasks
	endpoint  core.Endpoint // web tasks
}

func (t task) target() core.Target {
	if t.listing {
		return core.Target{Backend: core.ListingBackend, Name: t.candidate.Text, Region: t.region}
	}
	return core.Target{
		Backend:  core.WebBackend,
		Name:     t.endpoint.Host + t.endpoint.Path,
		Protocol: t.endpoint.Protocol,
	}
}

// Runner drives a bounded pool of workers over the task stream. A slow or
// failed task never blocks unrelated tasks; the only cross-task guarantees
// are the registry's exactly-one-claim and the write probe's PUT-before-
// DELETE ordering.
type Runner struct {
	cfg     *core.Config
	listing ListingProber  // nil when the listing path is disabled
	web     EndpointProber // nil when the web path is disabled
	reg     *Registry
	agg     *Aggregator
	limiter *rate.Limiter
	log     zerolog.Logger

	probed atomic.Int64
	found  atomic.Int64
}

func NewRunner(cfg *core.Config, listing ListingProber, web EndpointProber,
	reg *Registry, agg *Aggregator, log zerolog.Logger) *Runner {
	r := &Runner{
		cfg:     cfg,
		listing: listing,
		web:     web,
		reg:     reg,
		agg:     agg,
		log:     log,
	}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Rate)
	}
	return r
}

// Run feeds the task stream to cfg.Threads workers and blocks until every
// task is done or the context is cancelled. Already-recorded findings
// survive cancellation.
func (r *Runner) Run(ctx context.Context, candidates []core.Candidate) {
	jobs := make(chan task, r.cfg.Threads*4)
	go r.feed(ctx, candidates, jobs)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Threads; i++ {
		g.Go(func() error {
			r.worker(ctx, jobs)
			return nil
		})
	}
	_ = g.Wait()
}

// Probed and Found report progress counters for the closing summary.
func (r *Runner) Probed() int64 { return r.probed.Load() }
func (r *Runner) Found() int64  { return r.found.Load() }

// feed generates the task stream: listing tasks for candidate x region,
// web tasks for every probeable endpoint. The bounded channel provides
// backpressure; nothing is enqueued ahead of consumption beyond the buffer.
func (r *Runner) feed(ctx context.Context, candidates []core.Candidate, jobs chan<- task) {
	defer close(jobs)

	push := func(t task) bool {
		select {
		case <-ctx.Done():
			return false
		case jobs <- t:
			return true
		}
	}

	for _, cand := range candidates {
		if r.listing != nil {
			if !push(task{candidate: cand, listing: true, region: ""}) {
				return
			}
			for _, region := range endpoints.Regions {
				if !push(task{candidate: cand, listing: true, region: region}) {
					return
				}
			}
		}
		if r.web != nil {
			regions := append([]string{""}, endpoints.Regions...)
			for _, region := range regions {
				for _, ep := range endpoints.Build(cand.Text, region) {
					if ep.Skip {
						continue
					}
					if !push(task{candidate: cand, endpoint: ep}) {
						return
					}
				}
			}
		}
	}
}

func (r *Runner) worker(ctx context.Context, jobs <-chan task) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-jobs:
			if !ok {
				return
			}
			r.execute(ctx, t)
		}
	}
}

func (r *Runner) execute(ctx context.Context, t task) {
	if ctx.Err() != nil {
		return
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return
		}
	}

	target := t.target()
	if !r.reg.Claim(target) {
		return
	}
	r.probed.Add(1)

	var out core.ProbeOutcome
	if t.listing {
		out = r.listing.Probe(ctx, t.candidate, t.region)
	} else {
		out = r.web.Probe(ctx, t.endpoint)
	}
	if out.Kind == core.NotFound {
		return
	}

	f := core.Finding{Target: target, Candidate: t.candidate, Outcome: out}
	r.agg.Record(f)
	r.found.Add(1)
	r.emit(f)
}

// emit prints one real-time report line per classified target.
func (r *Runner) emit(f core.Finding) {
	ev := r.log.Info().Str("backend", f.Target.Backend.String())
	if f.Target.Backend == core.ListingBackend {
		ev = ev.Str("bucket", "s3://"+f.Target.Name)
	} else {
		ev = ev.Str("url", string(f.Target.Protocol)+"://"+f.Target.Name)
	}
	if f.Outcome.Region != "" {
		ev = ev.Str("region", f.Outcome.Region)
	} else {
		ev = ev.Str("region", "no-region")
	}
	if f.Outcome.ObjectCount >= 0 {
		ev = ev.Int("objects", f.Outcome.ObjectCount)
	}
	if w := f.Outcome.Write.String(); w != "" {
		ev = ev.Str("write", w)
	}
	ev.Msg(f.Outcome.Kind.String())
}
