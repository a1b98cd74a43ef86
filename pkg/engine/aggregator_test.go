package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

func TestReportPreservesInsertionOrder(t *testing.T) {
	agg := NewAggregator()
	require.False(t, agg.AnyFound())

	for i := 0; i < 5; i++ {
		agg.Record(core.Finding{
			Target:  core.Target{Backend: core.ListingBackend, Name: fmt.Sprintf("bucket-%d", i)},
			Outcome: core.ProbeOutcome{Kind: core.FoundListable},
		})
	}

	report := agg.Report()
	require.Len(t, report, 5)
	for i, f := range report {
		require.Equal(t, fmt.Sprintf("bucket-%d", i), f.Target.Name)
	}
	require.True(t, agg.AnyFound())
}

func TestReportReturnsACopy(t *testing.T) {
	agg := NewAggregator()
	agg.Record(core.Finding{Target: core.Target{Name: "a"}})

	first := agg.Report()
	agg.Record(core.Finding{Target: core.Target{Name: "b"}})

	require.Len(t, first, 1)
	require.Len(t, agg.Report(), 2)
}

func TestConcurrentRecord(t *testing.T) {
	agg := NewAggregator()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			agg.Record(core.Finding{Target: core.Target{Name: fmt.Sprintf("b-%d", i)}})
		}(i)
	}
	wg.Wait()

	require.Len(t, agg.Report(), n)
	require.True(t, agg.AnyFound())
}
