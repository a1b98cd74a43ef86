package probe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
	"github.com/0xDTC/0xAWSCloud/pkg/net"
)

// WebBackend probes endpoints over raw HTTP. Storage-service hosts are
// fetched without redirect following (a redirect there means region
// mismatch, not absence); bare candidate hosts may follow redirects.
type WebBackend struct {
	client *net.Client
	cfg    *core.Config
	log    zerolog.Logger
}

func NewWebBackend(client *net.Client, cfg *core.Config, log zerolog.Logger) *WebBackend {
	return &WebBackend{client: client, cfg: cfg, log: log}
}

// Probe fetches one endpoint and classifies the response. Transport
// failures and unclassifiable bodies are NotFound, never errors.
func (b *WebBackend) Probe(ctx context.Context, ep core.Endpoint) core.ProbeOutcome {
	out := core.ProbeOutcome{Kind: core.NotFound, Region: ep.Region, ObjectCount: -1}
	if ep.Skip || ctx.Err() != nil {
		return out
	}

	status, body, err := b.client.Get(ep.URL(), !ep.Storage)
	if err != nil {
		b.log.Debug().Str("url", ep.URL()).Err(err).Msg("web probe failed")
		return out
	}

	out.Kind = Classify(ep.Storage, status, body)
	if out.Kind == core.NotFound {
		b.log.Debug().Str("url", ep.URL()).Int("status", status).Msg("not listable")
		return out
	}

	// Write probes only make sense against the storage service itself.
	if ep.Storage {
		out.Write = b.writeProbe(ctx, ep)
	}
	return out
}

func (b *WebBackend) writeProbe(ctx context.Context, ep core.Endpoint) core.WritePermissions {
	markerURL := ep.URL() + "/" + WriteProbeKey
	sess := NewWriteSession(b.cfg.WriteMode)
	perms := sess.Run(ctx,
		func(context.Context) error {
			status, err := b.client.Put(markerURL, b.cfg.Marker)
			if err != nil {
				return err
			}
			return statusErr(status)
		},
		func(context.Context) error {
			status, err := b.client.Delete(markerURL)
			if err != nil {
				return err
			}
			return statusErr(status)
		},
	)
	if b.cfg.WriteMode != core.WriteSkip && !perms.Put {
		b.log.Debug().Str("url", markerURL).Msg("write probe denied")
	}
	return perms
}

func statusErr(status int) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return fmt.Errorf("status %d", status)
}
