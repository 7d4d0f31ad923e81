package art

// Rule is an explicit, named validation rule.
//
// ID must be stable across versions.
// Apply must be deterministic and side-effect free.
type Rule struct {
	ID    string
	Apply func(Object) error
}

func (r Rule) apply(o Object) error {
	if r.Apply == nil {
		return newError(KindInternal, ruleNilApply, "nil rule Apply: "+r.ID)
	}
	return r.Apply(o)
}

// ValidateRules runs rules in order, returning the first failure.
//
// Rule order is the evaluation order; keep it stable so that the reported
// error is deterministic.
func ValidateRules(o Object, rules []Rule) error {
	for _, r := range rules {
		if err := r.apply(o); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRulesAll runs all rules in order, returning a (deterministically
// ordered) slice of all violations.
func ValidateRulesAll(o Object, rules []Rule) []error {
	var out []error
	for _, r := range rules {
		if err := r.apply(o); err != nil {
			out = append(out, err)
		}
	}
	return out
}
