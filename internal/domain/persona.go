package domain

// Verbosity selects how much detail the formatter emits.
type Verbosity string

const (
	VerbosityMinimal  Verbosity = "minimal"
	VerbosityNormal   Verbosity = "normal"
	VerbosityDetailed Verbosity = "detailed"
)

// PersonaStyle carries the stylistic parameters the formatter applies.
// The values are supplied by the external persona collaborator (or config
// presets); the core never computes them.
type PersonaStyle struct {
	Name             string    `yaml:"name" json:"name"`
	Verbosity        Verbosity `yaml:"verbosity" json:"verbosity"`
	SimpleWords      bool      `yaml:"simple_words" json:"simple_words"`
	JargonOK         bool      `yaml:"jargon_ok" json:"jargon_ok"`
	MaxSentenceWords int       `yaml:"max_sentence_words" json:"max_sentence_words"`
}

// DefaultPersona is applied when no persona is selected.
func DefaultPersona() PersonaStyle {
	return PersonaStyle{
		Name:             "friendly",
		Verbosity:        VerbosityNormal,
		SimpleWords:      false,
		JargonOK:         true,
		MaxSentenceWords: 20,
	}
}
