package stage

import (
	"strings"

	"github.com/thruflo/loanops/internal/backend"
	"github.com/thruflo/loanops/internal/logging"
)

// Rule maps reply keywords to a stage. A rule matches when the lower-cased
// reply contains any of its keywords.
type Rule struct {
	Keywords []string
	Stage    Stage
}

// Matches reports whether text (already lower-cased) contains a keyword.
func (r Rule) Matches(text string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DefaultRules returns the inference rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"sanction"}, Stage: Sanction},
		{Keywords: []string{"verify", "pan"}, Stage: Verification},
		{Keywords: []string{"approve", "eligib"}, Stage: Underwriting},
	}
}

// Resolver maps orchestrator responses to pipeline stages.
type Resolver struct {
	rules []Rule
	log   *logging.Logger
}

// NewResolver creates a Resolver. With no rules, DefaultRules is used.
// Keywords are lower-cased so matching stays case-insensitive.
func NewResolver(rules ...Rule) *Resolver {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		normalized[i] = Rule{Keywords: kws, Stage: r.Stage}
	}
	return &Resolver{
		rules: normalized,
		log:   logging.With("component", "resolver"),
	}
}

// WithLogger returns a copy of r that logs through l.
func (r *Resolver) WithLogger(l *logging.Logger) *Resolver {
	out := *r
	out.log = l
	return &out
}

// Rules returns a copy of the resolver's rules in evaluation order.
func (r *Resolver) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Resolve returns the stage implied by resp.
//
// A recognised explicit stage always wins. Otherwise the reply text is
// matched against the rules in order and the first hit wins. With no hit
// the previous stage is kept, so ambiguous replies never move the pipeline
// backwards. An explicit stage that is not recognised is ignored.
func (r *Resolver) Resolve(previous Stage, resp *backend.ChatResponse) Stage {
	if resp == nil {
		return previous
	}

	if resp.Stage != "" {
		if st, ok := Parse(resp.Stage); ok {
			return st
		}
		r.log.Warn("ignoring unrecognized stage", "stage", resp.Stage)
	}

	return r.Infer(previous, resp.Reply)
}

// Infer applies only the keyword rules to reply.
func (r *Resolver) Infer(previous Stage, reply string) Stage {
	text := strings.ToLower(reply)
	if text == "" {
		return previous
	}
	for _, rule := range r.rules {
		if rule.Matches(text) {
			return rule.Stage
		}
	}
	return previous
}
