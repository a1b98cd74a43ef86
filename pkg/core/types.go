package core

// VariantTag records how a candidate name was produced. The closing summary
// distinguishes hits on the exact base name from hits on generated variants.
type VariantTag int

const (
	TagExact VariantTag = iota
	TagVariation
)

// Candidate is one bucket name to try. Produced once, never mutated.
type Candidate struct {
	Base string
	Tag  VariantTag
	Text string
}

// Protocol is the URL scheme an endpoint is probed over.
type Protocol string

const (
	HTTP  Protocol = "http"
	HTTPS Protocol = "https"
)

// HostForm identifies which S3 addressing style an endpoint uses.
type HostForm int

const (
	FormBare HostForm = iota // the candidate name itself, as a plain host
	FormGlobal
	FormRegional
	FormRegionalLegacy // hyphenated s3-{region} hosts, predate dot-region suffixes
	FormDualstack
	FormWebsite
)

// Endpoint is a concrete (host, path, protocol) derived from a candidate.
// PathStyle endpoints carry the bucket in the path instead of the host.
// Skip marks website forms: they are generated for completeness but never
// dereferenced, since their responses do not reveal listing state.
type Endpoint struct {
	Candidate string
	Region    string
	Host      string
	Path      string
	Form      HostForm
	PathStyle bool
	Protocol  Protocol
	Storage   bool // host belongs to the storage service
	Skip      bool
}

// URL renders the endpoint as an absolute URL.
func (e Endpoint) URL() string {
	return string(e.Protocol) + "://" + e.Host + e.Path
}

// BackendKind names the probe path that produced a target.
type BackendKind int

const (
	ListingBackend BackendKind = iota
	WebBackend
)

func (b BackendKind) String() string {
	if b == ListingBackend {
		return "listing"
	}
	return "web"
}

// Target is the dedup unit: one listing (bucket, region) pair or one web
// (protocol, host+path) pair. Key is the registry admission key.
type Target struct {
	Backend  BackendKind
	Name     string // bucket name (listing) or host+path (web)
	Region   string // listing targets only
	Protocol Protocol
}

func (t Target) Key() string {
	if t.Backend == ListingBackend {
		return "ls|" + t.Name + "|" + t.Region
	}
	return "web|" + string(t.Protocol) + "|" + t.Name
}

// OutcomeKind classifies a single probe.
type OutcomeKind int

const (
	NotFound OutcomeKind = iota
	FoundListable
	FoundAccessDenied
)

func (k OutcomeKind) String() string {
	switch k {
	case FoundListable:
		return "listable"
	case FoundAccessDenied:
		return "access-denied"
	default:
		return "not-found"
	}
}

// WritePermissions records the result of the optional write probe.
type WritePermissions struct {
	Put    bool
	Delete bool
}

// String renders the permissions the way report lines show them:
// "(PUT)" or "(PUT,DELETE)", empty when nothing was writable.
func (w WritePermissions) String() string {
	switch {
	case w.Put && w.Delete:
		return "(PUT,DELETE)"
	case w.Put:
		return "(PUT)"
	default:
		return ""
	}
}

// ProbeOutcome is the result of probing one target. ObjectCount is -1 when
// the backend cannot count objects (the web backend never can).
type ProbeOutcome struct {
	Kind        OutcomeKind
	Region      string
	ObjectCount int
	Write       WritePermissions
}

// Finding pairs a claimed target with its outcome for the report.
type Finding struct {
	Target    Target
	Candidate Candidate
	Outcome   ProbeOutcome
}
