// Package format renders pipeline outcomes into user-facing responses. The
// formatter is pure: the same inputs always produce the same Response, and
// nothing here touches the clock, the filesystem or the terminal.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/asknix/asknix/internal/domain"
	"github.com/asknix/asknix/internal/ports"
)

// jargonReplacer rewrites toolchain vocabulary for personas that asked for
// simple words. It is applied to prose only, never to command previews.
var jargonReplacer = strings.NewReplacer(
	"generation", "saved version",
	"derivation", "build recipe",
	"garbage collection", "cleanup",
	"attribute", "package name",
	"profile", "package set",
)

// intentVerbs phrase what was attempted in failure messages.
var intentVerbs = map[domain.IntentKind]string{
	domain.IntentInstall:  "install the package",
	domain.IntentRemove:   "remove the package",
	domain.IntentSearch:   "search for packages",
	domain.IntentUpdate:   "update your packages",
	domain.IntentRollback: "roll back to the previous state",
	domain.IntentList:     "list your packages",
	domain.IntentInfo:     "look up package details",
	domain.IntentUnknown:  "understand the request",
}

// Formatter implements ports.Formatter. educate supplies the optional
// teaching sentence per intent kind; it must be a pure lookup.
type Formatter struct {
	educate func(domain.IntentKind) string
}

// New builds a formatter. educate may be nil.
func New(educate func(domain.IntentKind) string) *Formatter {
	if educate == nil {
		educate = func(domain.IntentKind) string { return "" }
	}
	return &Formatter{educate: educate}
}

// Success renders a completed (or previewed) execution.
func (f *Formatter) Success(q domain.Query, intent domain.Intent, spec domain.CommandSpec, res domain.ExecutionResult) domain.Response {
	var b strings.Builder

	if res.State == domain.StatePreview {
		fmt.Fprintf(&b, "Would run: %s", spec.Rendered())
		if spec.Explanation != "" && q.Persona.Verbosity != domain.VerbosityMinimal {
			fmt.Fprintf(&b, "\nThis would %s.", spec.Explanation)
		}
		if !spec.Reversible && spec.Mutating {
			b.WriteString("\nNote: this cannot be undone automatically.")
		}
	} else {
		switch q.Persona.Verbosity {
		case domain.VerbosityMinimal:
			b.WriteString(minimalSuccess(res))
		case domain.VerbosityDetailed:
			fmt.Fprintf(&b, "Done: %s.", spec.Explanation)
			if out := strings.TrimSpace(res.Stdout); out != "" {
				b.WriteString("\n")
				b.WriteString(out)
			}
			fmt.Fprintf(&b, "\nBackend: %s, took %s ms.", res.Backend, humanize.Comma(res.DurationMS))
			if res.RollbackToken != "" {
				fmt.Fprintf(&b, "\nUndo reference: %s", res.RollbackToken)
			}
			if lesson := f.educate(intent.Kind); lesson != "" {
				b.WriteString("\n")
				b.WriteString(lesson)
			}
		default:
			fmt.Fprintf(&b, "Done: %s.", spec.Explanation)
			if out := strings.TrimSpace(res.Stdout); out != "" {
				b.WriteString("\n")
				b.WriteString(out)
			}
		}
	}

	return domain.Response{
		Success:        true,
		Message:        f.style(q.Persona, b.String()),
		CommandPreview: spec.Rendered(),
		Intent:         intent,
		Confidence:     intent.Confidence,
	}
}

// Violation renders a security rejection. The raw input never appears in
// the message.
func (f *Formatter) Violation(q domain.Query, v domain.SecurityViolation) domain.Response {
	var b strings.Builder
	fmt.Fprintf(&b, "I can't run that: %s.", v.Detail)
	if v.Wait > 0 {
		fmt.Fprintf(&b, " Try again in about %s.", relWait(v.Wait))
	} else if v.Remediation != "" {
		fmt.Fprintf(&b, " %s.", upperFirst(v.Remediation))
	}
	violation := v
	return domain.Response{
		Success:   false,
		Message:   f.style(q.Persona, b.String()),
		Violation: &violation,
	}
}

// Failure renders non-security failures as attempted / why / next step.
func (f *Formatter) Failure(q domain.Query, intent domain.Intent, err error) domain.Response {
	failure := classify(intent, err)

	var b strings.Builder
	fmt.Fprintf(&b, "I tried to %s but couldn't.", intentVerbs[intent.Kind])
	if failure.Detail != "" {
		fmt.Fprintf(&b, "\nWhat went wrong: %s.", failure.Detail)
	}
	for _, step := range failure.Remediation {
		fmt.Fprintf(&b, "\nYou could try: %s", step)
	}
	if q.Persona.Verbosity == domain.VerbosityDetailed {
		if lesson := f.educate(intent.Kind); lesson != "" {
			b.WriteString("\n")
			b.WriteString(lesson)
		}
	}

	return domain.Response{
		Success:    false,
		Message:    f.style(q.Persona, b.String()),
		Failure:    &failure,
		Intent:     intent,
		Confidence: intent.Confidence,
	}
}

func classify(intent domain.Intent, err error) domain.Failure {
	var (
		notFound  *domain.NotFoundError
		execErr   *domain.ExecutionError
		timeout   *domain.TimeoutError
		rateLimit *domain.RateLimitError
		validate  *domain.ValidationError
		confirm   *domain.ConfirmationError
	)
	switch {
	case errors.As(err, &confirm):
		return domain.Failure{
			Class:       domain.ClassValidation,
			Detail:      "this change cannot be undone automatically, so it needs explicit confirmation",
			Remediation: []string{"re-run with --yes to confirm", "or preview it first with --dry-run"},
		}
	case errors.As(err, &notFound):
		remediation := append([]string(nil), notFound.Suggestions...)
		detail := "I don't know a command for that request"
		if intent.Kind != domain.IntentUnknown {
			detail = fmt.Sprintf("no command is known for %q here", intent.Kind)
		}
		return domain.Failure{Class: domain.ClassNotFound, Detail: detail, Remediation: remediation}
	case errors.As(err, &timeout):
		return domain.Failure{
			Class:       domain.ClassTimeout,
			Detail:      fmt.Sprintf("the command ran longer than %s and was stopped", timeout.Limit),
			Remediation: []string{"run it again with a higher --timeout", "check your network connection"},
		}
	case errors.As(err, &execErr):
		detail := execErr.Detail
		if detail == "" {
			detail = "the command failed without explaining itself"
		}
		return domain.Failure{
			Class:       domain.ClassExecution,
			Detail:      detail,
			Remediation: []string{"re-run with --verbose to see the full output"},
		}
	case errors.As(err, &rateLimit):
		return domain.Failure{
			Class:       domain.ClassRateLimit,
			Detail:      "too many requests in a short time",
			Remediation: []string{fmt.Sprintf("wait about %s and try again", relWait(rateLimit.Wait))},
		}
	case errors.As(err, &validate):
		return domain.Failure{Class: domain.ClassValidation, Detail: validate.Violation.Detail}
	default:
		return domain.Failure{
			Class:       domain.ClassInternal,
			Detail:      "an unexpected internal error occurred",
			Remediation: []string{"re-run with --verbose and report the log output"},
		}
	}
}

// style applies persona adjustments to finished prose.
func (f *Formatter) style(p domain.PersonaStyle, msg string) string {
	if p.SimpleWords || !p.JargonOK {
		msg = jargonReplacer.Replace(msg)
	}
	if p.Verbosity == domain.VerbosityMinimal && p.MaxSentenceWords > 0 {
		msg = clampFirstLine(msg, p.MaxSentenceWords)
	}
	return msg
}

func minimalSuccess(res domain.ExecutionResult) string {
	if out := strings.TrimSpace(res.Stdout); out != "" {
		return out
	}
	return "Done."
}

// clampFirstLine keeps only the first line, cut to max words.
func clampFirstLine(msg string, max int) string {
	line := msg
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	words := strings.Fields(line)
	if len(words) <= max {
		return line
	}
	return strings.Join(words[:max], " ") + "..."
}

// relWait renders a duration as friendly text. Anchored at a fixed instant
// so the formatter stays pure.
func relWait(d time.Duration) string {
	base := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(base, base.Add(d), "", ""))
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var _ ports.Formatter = (*Formatter)(nil)
