// Package knowledge maps recognized intents onto concrete package-toolchain
// commands. The mapping is a static table: no network calls, no generated
// commands, every argv the engine can run is written down here.
package knowledge

import (
	"fmt"
	"sort"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/infrastructure/recognizer"
	"github.com/asknix/asknix/internal/ports"
)

// popularPackages seeds the recognizer vocabulary and the "did you mean"
// suggestions. Being unlisted never blocks an install; the toolchain
// resolves real attribute names itself.
var popularPackages = []string{
	"firefox", "google-chrome", "chromium", "vscode", "vim", "neovim",
	"emacs", "git", "htop", "tmux", "curl", "wget", "nodejs", "python3",
	"go", "rustc", "gcc", "docker", "ripgrep", "fd", "jq", "tree",
	"zsh", "fish", "ffmpeg", "vlc", "gimp", "inkscape", "libreoffice",
	"thunderbird", "spotify", "discord", "slack", "obsidian",
}

// entry describes how one intent kind becomes a command.
type entry struct {
	args        func(target string) []string
	privilege   bool
	reversible  bool
	mutating    bool
	explanation func(target string) string
	entity      string
	education   string
}

var commandTable = map[domain.IntentKind]entry{
	domain.IntentInstall: {
		args:        func(t string) []string { return []string{"profile", "install", "nixpkgs#" + t} },
		reversible:  true,
		mutating:    true,
		entity:      "package",
		explanation: func(t string) string { return fmt.Sprintf("install %s into your profile", t) },
		education:   "Installed packages go into your own profile, not the whole system, so no administrator password is needed and you can undo the change later.",
	},
	domain.IntentRemove: {
		args:        func(t string) []string { return []string{"profile", "remove", t} },
		mutating:    true,
		entity:      "package",
		explanation: func(t string) string { return fmt.Sprintf("remove %s from your profile", t) },
		education:   "Removing only detaches the package from your profile. The files stay on disk until garbage collection runs, so nothing is destroyed immediately.",
	},
	domain.IntentSearch: {
		args:        func(t string) []string { return []string{"search", "nixpkgs", t} },
		entity:      "query",
		explanation: func(t string) string { return fmt.Sprintf("search available packages for %q", t) },
		education:   "Search looks through the package collection without changing anything on your machine.",
	},
	domain.IntentUpdate: {
		args:        func(string) []string { return []string{"profile", "upgrade", "--all"} },
		reversible:  true,
		mutating:    true,
		explanation: func(string) string { return "upgrade every package in your profile" },
		education:   "Upgrades create a new profile generation. If anything breaks you can roll back to the previous one.",
	},
	domain.IntentRollback: {
		args:        func(string) []string { return []string{"profile", "rollback"} },
		reversible:  true,
		mutating:    true,
		explanation: func(string) string { return "switch your profile back to its previous generation" },
		education:   "Every change makes a new generation and the old ones are kept, which is why going back is always possible.",
	},
	domain.IntentList: {
		args:        func(string) []string { return []string{"profile", "list"} },
		explanation: func(string) string { return "list the packages in your profile" },
		education:   "This reads your profile manifest; it never modifies anything.",
	},
	domain.IntentInfo: {
		args: func(t string) []string {
			return []string{"eval", "--raw", fmt.Sprintf("nixpkgs#%s.meta.description", t)}
		},
		entity:      "topic",
		explanation: func(t string) string { return fmt.Sprintf("show the description of %s", t) },
		education:   "Package metadata is evaluated locally from the package collection; nothing is downloaded or installed.",
	},
}

// Base is the static knowledge base. It implements ports.KnowledgeBase.
type Base struct {
	executable string
	vocab      []string
}

// New builds the knowledge base. The executable defaults to "nix" and is
// only overridable for tests.
func New(executable string) *Base {
	if executable == "" {
		executable = "nix"
	}
	vocab := make([]string, len(popularPackages))
	copy(vocab, popularPackages)
	sort.Strings(vocab)
	return &Base{executable: executable, vocab: vocab}
}

// Resolve maps an intent onto a CommandSpec. UNKNOWN intents and intents
// missing their required entity yield a NotFoundError carrying suggestions.
func (b *Base) Resolve(intent domain.Intent) (domain.CommandSpec, error) {
	e, ok := commandTable[intent.Kind]
	if !ok {
		return domain.CommandSpec{}, &domain.NotFoundError{
			Kind:        intent.Kind,
			Suggestions: []string{"install <package>", "remove <package>", "search <query>", "update my system"},
		}
	}

	var target string
	if e.entity != "" {
		target = intent.Entity(e.entity)
		if target == "" {
			return domain.CommandSpec{}, &domain.NotFoundError{
				Kind:        intent.Kind,
				Suggestions: []string{fmt.Sprintf("name the %s, for example: %s firefox", e.entity, intent.Kind)},
			}
		}
	}

	return domain.CommandSpec{
		Executable:        b.executable,
		Args:              e.args(target),
		RequiresPrivilege: e.privilege,
		Reversible:        e.reversible,
		Mutating:          e.mutating,
		Explanation:       e.explanation(target),
	}, nil
}

// Education returns a short teaching sentence for the kind, or "" when
// there is nothing worth saying.
func (b *Base) Education(kind domain.IntentKind) string {
	return commandTable[kind].education
}

// Vocabulary returns the known package names, sorted.
func (b *Base) Vocabulary() []string {
	out := make([]string, len(b.vocab))
	copy(out, b.vocab)
	return out
}

// Suggestions returns up to three vocabulary names close to the entity.
func (b *Base) Suggestions(entity string) []string {
	return recognizer.Rank(entity, b.vocab, 3)
}

var _ ports.KnowledgeBase = (*Base)(nil)
