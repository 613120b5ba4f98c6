package review

import (
	"quote-engine/core/money"
	"quote-engine/core/quote"
	"quote-engine/core/rates"
)

// Decision is one of exactly two terminal states: AutoApproved (no reasons)
// or ManualReview (one or more reasons). There is no partial state; this is
// a synchronous pure computation, not a workflow.
type Decision struct {
	RequiresManualReview bool
	Reasons              []quote.Reason
}

// Evaluate runs the default rule table against the input and the
// floor-adjusted price. It never mutates the input and has no side effects;
// routing to a human reviewer is the caller's job.
func Evaluate(pol rates.Policy, in *quote.PricingInput, adjusted money.Money) Decision {
	return EvaluateRules(DefaultRules(), pol, in, adjusted)
}

// EvaluateRules runs a specific rule list in order, collecting every
// violated rule's reason. Legacy rules are skipped unless the policy
// enables them.
func EvaluateRules(rules []Rule, pol rates.Policy, in *quote.PricingInput, adjusted money.Money) Decision {
	reasons := make([]quote.Reason, 0, len(rules))

	for _, rule := range rules {
		if rule.Legacy && !pol.EnableLegacyFrequencyRules {
			continue
		}
		if violated, message := rule.Check(pol, in, adjusted); violated {
			reasons = append(reasons, quote.Reason{Code: rule.Code, Message: message})
		}
	}

	return Decision{
		RequiresManualReview: len(reasons) > 0,
		Reasons:              reasons,
	}
}
