package postsel

import (
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/common"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
)

var (
	ErrUnknownPolicy = errors.New("unknown post-selection policy")
	ErrNoFeasible    = errors.New("no feasible bitstring in counts")
)

// Policy decides what happens to bitstrings outside the cardinality sector.
type Policy int

const (
	PolicyDiscard Policy = iota // drop infeasible bitstrings
	PolicyNone                  // pass counts through untouched
)

func (p Policy) String() string {
	switch p {
	case PolicyDiscard:
		return "discard"
	case PolicyNone:
		return "none"
	default:
		return "unknown"
	}
}

// ToPolicy parses a policy name. The empty string selects discard, which is
// what a cardinality-constrained run wants by default.
func ToPolicy(s string) (Policy, error) {
	switch s {
	case "", "discard":
		return PolicyDiscard, nil
	case "none":
		return PolicyNone, nil
	default:
		return 0, errors.Wrapf(ErrUnknownPolicy, "%q", s)
	}
}

// Apply post-selects the measurement counts of a finished run. Under the
// discard policy only bitstrings with exactly b assets survive; an empty
// survivor set is an error because no candidate portfolio exists.
func Apply(counts core.Counts, b int, policy Policy) (core.Counts, error) {
	switch policy {
	case PolicyNone:
		return counts, nil
	case PolicyDiscard:
		kept := make(core.Counts)
		dropped := uint32(0)
		for bitstring, c := range counts {
			if common.HammingWeight(bitstring) == b {
				kept[bitstring] = c
			} else {
				dropped += c
			}
		}
		if dropped > 0 {
			zap.L().Debug(fmt.Sprintf("post-selection dropped %d of %d shots",
				dropped, counts.TotalShots()))
		}
		if len(kept) == 0 {
			return nil, errors.Wrapf(ErrNoFeasible, "cardinality %d", b)
		}
		return kept, nil
	default:
		return nil, errors.Wrapf(ErrUnknownPolicy, "%d", policy)
	}
}
