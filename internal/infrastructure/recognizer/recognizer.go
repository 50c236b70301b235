// Package recognizer turns normalized natural-language text into a typed
// Intent. Recognition is staged: exact regex matching first, then a fuzzy
// pass that repairs misspelled trigger words and entity names, then an
// UNKNOWN fallback. Confidence never increases across stages.
package recognizer

import (
	"sort"
	"strings"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// aliases maps common spoken names to their package attribute names.
var aliases = map[string]string{
	"chrome":  "google-chrome",
	"code":    "vscode",
	"node":    "nodejs",
	"python":  "python3",
	"vi":      "vim",
	"browser": "firefox",
}

// triggerVocab is the word list the fuzzy stage repairs trigger verbs
// against. Entity names are repaired against the knowledge vocabulary
// instead.
var triggerVocab = []string{
	"install", "add", "remove", "uninstall", "delete",
	"search", "find", "update", "upgrade", "refresh",
	"rollback", "revert", "list", "show", "installed",
	"packages", "system", "everything", "explain", "describe",
	"generation", "generations",
}

const (
	vagueConfidence = 0.6
	unlistedEntity  = 0.9
)

// Recognizer implements ports.IntentRecognizer.
type Recognizer struct {
	vocab  []string
	logger ports.Logger
}

// New builds a recognizer over the given entity vocabulary. Alias keys are
// merged in so typos of spoken names can still be repaired.
func New(vocab []string, logger ports.Logger) *Recognizer {
	merged := make(map[string]bool, len(vocab)+len(aliases))
	for _, w := range vocab {
		merged[w] = true
	}
	for spoken := range aliases {
		merged[spoken] = true
	}
	all := make([]string, 0, len(merged))
	for w := range merged {
		all = append(all, w)
	}
	sort.Strings(all)
	return &Recognizer{vocab: all, logger: logger}
}

// Recognize implements the staged pipeline. The same input always yields
// the same intent: patterns run in a fixed order and fuzzy ties are broken
// deterministically.
func (r *Recognizer) Recognize(text string) domain.Intent {
	norm := domain.NormalizeText(text)
	if norm == "" {
		return fallback()
	}

	if intent, ok := r.exactStage(norm); ok {
		r.log(text, intent)
		return intent
	}
	if intent, ok := r.fuzzyStage(norm); ok {
		r.log(text, intent)
		return intent
	}
	intent := fallback()
	r.log(text, intent)
	return intent
}

func (r *Recognizer) exactStage(norm string) (domain.Intent, bool) {
	for _, kind := range kindOrder {
		for _, re := range kindPatterns[kind] {
			if !re.MatchString(norm) {
				continue
			}
			return r.buildIntent(kind, norm, domain.StageExact, 1.0), true
		}
	}
	return domain.Intent{}, false
}

// fuzzyStage repairs misspelled trigger words ("instal firefox") and reruns
// the pattern set. Confidence is scaled down by the weakest repair.
func (r *Recognizer) fuzzyStage(norm string) (domain.Intent, bool) {
	tokens := strings.Fields(norm)
	repaired := false
	floor := 1.0
	for i, tok := range tokens {
		if skipWords[tok] {
			continue
		}
		corrected, sim, ok := Correct(tok, triggerVocab)
		if !ok || corrected == tok {
			continue
		}
		tokens[i] = corrected
		repaired = true
		if sim < floor {
			floor = sim
		}
	}
	if !repaired {
		return domain.Intent{}, false
	}
	rebuilt := strings.Join(tokens, " ")
	for _, kind := range kindOrder {
		for _, re := range kindPatterns[kind] {
			if !re.MatchString(rebuilt) {
				continue
			}
			intent := r.buildIntent(kind, rebuilt, domain.StageFuzzy, floor)
			return intent, true
		}
	}
	return domain.Intent{}, false
}

// buildIntent extracts entities for the kind and applies confidence
// adjustments. Kinds that require a target but have none degrade to
// UNKNOWN rather than producing an unactionable intent.
func (r *Recognizer) buildIntent(kind domain.IntentKind, norm string, stage domain.Stage, confidence float64) domain.Intent {
	name, wantsEntity := entityName[kind]
	if !wantsEntity {
		return domain.Intent{Kind: kind, Confidence: confidence, Stage: stage, Entities: map[string]string{}}
	}

	remaining := make([]string, 0, 4)
	for _, tok := range strings.Fields(norm) {
		if !skipWords[tok] {
			remaining = append(remaining, tok)
		}
	}
	if len(remaining) == 0 {
		// Install and remove are unactionable without a target; search and
		// info without one still reach the knowledge base, which answers
		// with guidance instead.
		if kind.RequiresEntity() {
			return fallback()
		}
		return domain.Intent{Kind: kind, Confidence: confidence, Stage: stage, Entities: map[string]string{}}
	}

	entities := map[string]string{}
	var value string
	if kind == domain.IntentSearch {
		value = strings.Join(remaining, " ")
	} else {
		value = remaining[0]
		if len(remaining) > 1 {
			entities["discarded"] = strings.Join(remaining[1:], " ")
		}
	}

	switch {
	case vagueTargets[value]:
		confidence = min(confidence, vagueConfidence)
	case kind == domain.IntentSearch:
		// Search queries are free-form; no vocabulary check.
	default:
		if canonical, ok := aliases[value]; ok {
			value = canonical
		} else if !r.known(value) {
			if corrected, sim, ok := Correct(value, r.vocab); ok && corrected != value {
				entities["corrected_from"] = value
				value = corrected
				if canonical, ok := aliases[value]; ok {
					value = canonical
				}
				stage = domain.StageFuzzy
				confidence = min(confidence, sim)
			} else {
				// Unlisted targets are still actionable; the toolchain
				// itself decides whether the name resolves.
				confidence = min(confidence, unlistedEntity)
			}
		}
	}

	entities[name] = value
	return domain.Intent{Kind: kind, Confidence: confidence, Stage: stage, Entities: entities}
}

func (r *Recognizer) known(word string) bool {
	i := sort.SearchStrings(r.vocab, word)
	return i < len(r.vocab) && r.vocab[i] == word
}

func (r *Recognizer) log(text string, intent domain.Intent) {
	if r.logger == nil {
		return
	}
	r.logger.Debug("intent recognized", map[string]interface{}{
		"kind":       string(intent.Kind),
		"stage":      string(intent.Stage),
		"confidence": intent.Confidence,
	})
}

func fallback() domain.Intent {
	return domain.Intent{
		Kind:       domain.IntentUnknown,
		Confidence: 0,
		Stage:      domain.StageFallback,
		Entities:   map[string]string{},
	}
}

var _ ports.IntentRecognizer = (*Recognizer)(nil)
