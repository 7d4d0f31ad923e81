package registry

// Usage restricts which programs accept a backend. Backends are linked at
// build time and enabled by importing their package.
type Usage uint8

const (
	// UsageCLI marks backends available to paintctl.
	UsageCLI Usage = 1 << iota
	// UsageDaemon marks backends available to paintd and paintstored.
	UsageDaemon
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }
