package formatter

import (
	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// EmitFunc reports a violation found by a rule at an absolute offset of the
// tree being visited.
type EmitFunc func(offset int, message string, canBeAutoCorrected bool)

// Rule inspects, and in autocorrect mode fixes, the layout of syntax nodes.
// A rule instance serves exactly one pass over one tree.
type Rule interface {
	// ID returns the stable "<ruleset>:<rule-name>" identifier.
	ID() string

	// Properties lists the configuration keys the rule reads.
	Properties() []config.Key

	// Kinds lists the node kinds the rule wants to visit. An empty list
	// means every node.
	Kinds() []syntax.Kind

	// BeforeFirstNode hands the rule its resolved properties, restricted to
	// the declared keys, before any node is visited.
	BeforeFirstNode(props config.Properties) error

	// BeforeVisitChildNodes is called for each matching node before its
	// children are visited. In autocorrect mode the rule may mutate the
	// subtree of id and the whitespace or comments adjacent to it. A
	// returned error aborts the pass.
	BeforeVisitChildNodes(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, emit EmitFunc) error
}

// Provider creates a fresh rule instance.
type Provider func() Rule

// Violation is a layout problem reported by a rule.
type Violation struct {
	RuleID  string `json:"rule"`
	Offset  int    `json:"offset"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Fixable bool   `json:"fixable"`
	// Corrected is set when the rule applied its fix during the pass.
	Corrected bool `json:"corrected"`
}
