package art

import "fmt"

// AuthorizationRules returns the trait checks for t, in evaluation order.
func AuthorizationRules(t Trait) []Rule {
	caps := t.Capabilities()
	return []Rule{
		{ID: RuleTraitColor, Apply: func(o Object) error {
			if !caps.AllowsColor(o.Color) {
				return newError(KindInvalidColor, RuleTraitColor, fmt.Sprintf("color %s not in token palette", o.Color))
			}
			return nil
		}},
		{ID: RuleTraitShape, Apply: func(o Object) error {
			if !caps.AllowsShape(o) {
				return newError(KindInvalidShape, RuleTraitShape, fmt.Sprintf("shape %s not permitted for token", o.Shape))
			}
			return nil
		}},
		{ID: RuleTraitPolygon, Apply: func(o Object) error {
			if o.Shape == Polygon && len(o.Points) != caps.PolygonPoints {
				return newError(KindInvalidPoints, RuleTraitPolygon, fmt.Sprintf("polygon needs exactly %d points, got %d", caps.PolygonPoints, len(o.Points)))
			}
			return nil
		}},
	}
}

// Authorize checks a structurally valid object against t.
// The first violated rule is reported.
func Authorize(o Object, t Trait) error {
	return ValidateRules(o, AuthorizationRules(t))
}

// Validate runs the structural checks and then the trait checks.
func Validate(o Object, t Trait) error {
	if err := ValidateStructure(o); err != nil {
		return err
	}
	return Authorize(o, t)
}

// Check reports every structural and trait violation of o, in rule order.
// It is meant for diagnostics; submissions use Validate.
func Check(o Object, t Trait) []error {
	rules := append(append([]Rule(nil), StructureRules...), AuthorizationRules(t)...)
	return ValidateRulesAll(o, rules)
}

// Accept decodes p and validates the result against t.
func Accept(p Packed, t Trait) (Object, error) {
	o, err := Decode(p)
	if err != nil {
		return Object{}, err
	}
	if err := Validate(o, t); err != nil {
		return Object{}, err
	}
	return o, nil
}

// AcceptAll accepts every packed object or none. The returned error carries
// the Kind and RuleID of the first rejected object.
func AcceptAll(ps []Packed, t Trait) ([]Object, error) {
	out := make([]Object, 0, len(ps))
	for i, p := range ps {
		o, err := Accept(p, t)
		if err != nil {
			return nil, wrapError(fmt.Sprintf("object %d rejected", i), err)
		}
		out = append(out, o)
	}
	return out, nil
}
