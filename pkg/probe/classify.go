package probe

import (
	"bytes"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

// The classifier is a pure function of (host class, status, body) so the
// marker tables can be tested and tightened without touching any I/O.
// It is deliberately conservative: anything ambiguous is NotFound.

var listingMarkers = [][]byte{
	[]byte("<ListBucketResult"),
	[]byte("<Contents>"),
	[]byte("<Key>"),
	[]byte("CommonPrefixes"),
}

var deniedMarker = []byte("AccessDenied")

// Markers that mean the bucket name does not resolve to a bucket.
var absentMarkers = [][]byte{
	[]byte("NoSuchBucket"),
	[]byte("InvalidBucketName"),
}

// A 200 body carrying any of these is an error page, not a listing.
var errorMarkers = [][]byte{
	[]byte("PermanentRedirect"),
	[]byte("TemporaryRedirect"),
	[]byte("NoSuchBucket"),
	[]byte("InvalidBucketName"),
	[]byte("AllAccessDisabled"),
}

func containsAny(body []byte, markers [][]byte) bool {
	for _, m := range markers {
		if bytes.Contains(body, m) {
			return true
		}
	}
	return false
}

// Classify maps one GET response onto an outcome kind.
func Classify(storageHost bool, status int, body []byte) core.OutcomeKind {
	switch status {
	case 403:
		if containsAny(body, absentMarkers) {
			return core.NotFound
		}
		if bytes.Contains(body, deniedMarker) {
			return core.FoundAccessDenied
		}
	case 200:
		if containsAny(body, errorMarkers) {
			return core.NotFound
		}
		if !containsAny(body, listingMarkers) {
			return core.NotFound
		}
		if storageHost {
			return core.FoundListable
		}
		// A plain host needs a non-empty body on top of the markers;
		// the markers imply one, but keep the rule explicit.
		if len(body) > 0 {
			return core.FoundListable
		}
	}
	return core.NotFound
}
