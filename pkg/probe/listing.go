package probe

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

// Lister is the unauthenticated list-objects capability the listing backend
// consumes. It reports only success or failure: an error may equally mean
// access denied or no such bucket, so the backend never claims to know which.
type Lister interface {
	List(ctx context.Context, bucket, region string) (count int, err error)
	Put(ctx context.Context, bucket, region, key string, payload []byte) error
	Delete(ctx context.Context, bucket, region, key string) error
}

// ListingBackend probes candidates through the listing capability. The
// no-region call and each per-region call are distinct targets; every
// capability call runs under the configured per-call timeout.
type ListingBackend struct {
	lister Lister
	cfg    *core.Config
	log    zerolog.Logger
}

func NewListingBackend(lister Lister, cfg *core.Config, log zerolog.Logger) *ListingBackend {
	return &ListingBackend{lister: lister, cfg: cfg, log: log}
}

// Probe lists one (bucket, region) pair. A successful listing is the only
// signal this path can give; every failure maps to NotFound.
func (b *ListingBackend) Probe(ctx context.Context, cand core.Candidate, region string) core.ProbeOutcome {
	if ctx.Err() != nil {
		return core.ProbeOutcome{Kind: core.NotFound, Region: region, ObjectCount: -1}
	}

	lctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	count, err := b.lister.List(lctx, cand.Text, region)
	cancel()
	if err != nil {
		b.log.Debug().Str("bucket", cand.Text).Str("region", regionLabel(region)).
			Err(err).Msg("listing probe failed")
		return core.ProbeOutcome{Kind: core.NotFound, Region: region, ObjectCount: -1}
	}

	out := core.ProbeOutcome{Kind: core.FoundListable, Region: region, ObjectCount: count}
	out.Write = b.writeProbe(ctx, cand.Text, region)
	return out
}

func (b *ListingBackend) writeProbe(ctx context.Context, bucket, region string) core.WritePermissions {
	sess := NewWriteSession(b.cfg.WriteMode)
	perms := sess.Run(ctx,
		func(ctx context.Context) error {
			pctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
			defer cancel()
			return b.lister.Put(pctx, bucket, region, WriteProbeKey, b.cfg.Marker)
		},
		func(ctx context.Context) error {
			dctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
			defer cancel()
			return b.lister.Delete(dctx, bucket, region, WriteProbeKey)
		},
	)
	if b.cfg.WriteMode != core.WriteSkip && !perms.Put {
		b.log.Debug().Str("bucket", bucket).Str("region", regionLabel(region)).
			Msg("write probe denied")
	}
	return perms
}

func regionLabel(region string) string {
	if region == "" {
		return "no-region"
	}
	return region
}
