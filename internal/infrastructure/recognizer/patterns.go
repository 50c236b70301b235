package recognizer

import (
	"regexp"

	"github.com/asknix/asknix/internal/domain"
)

// kindOrder fixes the matching order. LIST runs before REMOVE and INSTALL so
// "list installed packages" is not read as an install request, and REMOVE
// runs before INSTALL so "get rid of X" is not read as "get X".
var kindOrder = []domain.IntentKind{
	domain.IntentList,
	domain.IntentRemove,
	domain.IntentInstall,
	domain.IntentUpdate,
	domain.IntentSearch,
	domain.IntentRollback,
	domain.IntentInfo,
}

var kindPatterns = map[domain.IntentKind][]*regexp.Regexp{
	domain.IntentList: compile(
		`\b(list|show|what)\s+(packages?\s+)?(are\s+)?installed\b`,
		`\bwhat\s+do\s+i\s+have\s+installed\b`,
		`\bshow\s+(me\s+)?my\s+packages\b`,
		`\binstalled\s+packages?\b`,
		`\b(list|show|view)\s+(my\s+)?(packages|generations)\b`,
	),
	domain.IntentRemove: compile(
		`\b(remove|uninstall|delete)\s+(\S+)`,
		`\bget\s+rid\s+of\s+(\S+)`,
		`\bi\s+don'?t\s+want\s+(\S+)\s+anymore\b`,
	),
	domain.IntentInstall: compile(
		`\b(install|add|set\s+up)\s+(\S+)`,
		`\bi\s+(need|want|would\s+like)\s+(\S+)`,
		`\b(need|want|get)\s+(\S+)`,
		`\b(can\s+you|please|could\s+you)\s+(install|add|get)\s+(\S+)`,
	),
	domain.IntentUpdate: compile(
		`\b(update|upgrade|refresh)\s+(my\s+)?(system|everything|all|packages)\b`,
		`\b(system|packages)\s+(update|upgrade)\b`,
		`^(update|upgrade)$`,
	),
	domain.IntentSearch: compile(
		`\b(search|look\s+for|look\s+up)\s+(for\s+)?(\S+)`,
		`\bfind\s+(me\s+)?(a\s+)?(\S+)`,
		`\bis\s+there\s+(a\s+|an\s+)?(\S+)`,
	),
	domain.IntentRollback: compile(
		`\b(rollback|roll\s+back|revert|go\s+back)\b`,
		`\b(previous|last|old)\s+(generation|version|state)\b`,
		`\bundo\s+(the\s+)?(update|upgrade|changes|last)\b`,
	),
	domain.IntentInfo: compile(
		`\b(what\s+is|what'?s|tell\s+me\s+about|describe)\s+(\S+)`,
		`\b(info|information)\s+(about|on|for)\s+(\S+)`,
		`\bexplain\s+(\S+)`,
	),
}

// entityName maps kinds to the primary entity they extract. Kinds absent
// here carry no entities.
var entityName = map[domain.IntentKind]string{
	domain.IntentInstall: "package",
	domain.IntentRemove:  "package",
	domain.IntentSearch:  "query",
	domain.IntentInfo:    "topic",
}

// skipWords are trigger verbs and politeness fillers removed before entity
// extraction. "get" sits here because it appears both as a trigger ("get
// firefox") and as a filler ("get rid of").
var skipWords = map[string]bool{
	"i": true, "me": true, "my": true, "a": true, "an": true, "the": true,
	"please": true, "to": true, "for": true, "of": true, "on": true,
	"need": true, "want": true, "would": true, "like": true,
	"you": true, "can": true, "could": true, "some": true,
	"install": true, "add": true, "get": true, "set": true, "up": true,
	"remove": true, "uninstall": true, "delete": true, "rid": true,
	"search": true, "find": true, "look": true, "is": true, "there": true,
	"what": true, "whats": true, "what's": true, "tell": true, "about": true,
	"describe": true, "explain": true, "info": true, "information": true,
	"anymore": true, "don't": true, "dont": true,
}

// vagueTargets are entity values too unspecific to act on with full
// confidence.
var vagueTargets = map[string]bool{
	"something": true, "anything": true, "stuff": true, "things": true, "it": true,
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
