package publishcmd

// FeatureGates exposes runtime feature toggles required by publish command
// handlers. Callers supply closures reading from bundle.Config.Features so
// handlers stay decoupled from configuration while honouring feature flags.
type FeatureGates struct {
	PublicationsEnabled func() bool
}

func (g FeatureGates) publicationsEnabled() bool {
	if g.PublicationsEnabled == nil {
		return true
	}
	return g.PublicationsEnabled()
}
