package domain

// IntentKind enumerates the purposes a query can be classified into.
type IntentKind string

const (
	IntentInstall  IntentKind = "install"
	IntentRemove   IntentKind = "remove"
	IntentSearch   IntentKind = "search"
	IntentUpdate   IntentKind = "update"
	IntentRollback IntentKind = "rollback"
	IntentList     IntentKind = "list"
	IntentInfo     IntentKind = "info"
	IntentUnknown  IntentKind = "unknown"
)

// Stage identifies which recognizer stage produced an intent.
type Stage string

const (
	StageExact    Stage = "exact"
	StageFuzzy    Stage = "fuzzy"
	StageFallback Stage = "fallback"
)

// Intent is the classified purpose of a query plus extracted entities.
// Kind is IntentUnknown iff no stage matched.
type Intent struct {
	Kind       IntentKind        `json:"kind"`
	Entities   map[string]string `json:"entities,omitempty"`
	Confidence float64           `json:"confidence"`
	Stage      Stage             `json:"stage"`
}

// RequiresEntity reports whether the kind is malformed without a primary
// entity. Extraction that comes up empty downgrades these to IntentUnknown.
func (k IntentKind) RequiresEntity() bool {
	switch k {
	case IntentInstall, IntentRemove:
		return true
	default:
		return false
	}
}

// Entity returns the named entity or "".
func (i Intent) Entity(name string) string {
	if i.Entities == nil {
		return ""
	}
	return i.Entities[name]
}
