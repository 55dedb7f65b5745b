// Package rules manages registration of the formatting rules.
package rules

import (
	"fmt"
	"slices"

	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

var providers []formatter.Provider

// Register adds a rule provider to the registry.
// Rules visit a node in the order they are registered.
func Register(p formatter.Provider) {
	providers = append(providers, p)
}

// Providers returns all registered rule providers in registration order.
func Providers() []formatter.Provider {
	return slices.Clone(providers)
}

// Enabled returns the providers of the rules cfg does not switch off.
func Enabled(cfg *config.Config) []formatter.Provider {
	var out []formatter.Provider
	for _, p := range providers {
		if cfg.RuleEnabled(p().ID()) {
			out = append(out, p)
		}
	}
	return out
}

// Info describes a registered rule.
type Info struct {
	ID         string
	Properties []config.Key
	Kinds      []syntax.Kind
}

// Infos describes every registered rule, in registration order.
func Infos() []Info {
	infos := make([]Info, 0, len(providers))
	for _, p := range providers {
		r := p()
		infos = append(infos, Info{ID: r.ID(), Properties: r.Properties(), Kinds: r.Kinds()})
	}
	return infos
}

// CheckConfig reports rule ids in cfg that no registered rule carries.
func CheckConfig(cfg *config.Config) error {
	known := make(map[string]bool, len(providers))
	for _, p := range providers {
		known[p().ID()] = true
	}
	var unknown []string
	for id := range cfg.Rules {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("rules: unknown rule ids %q", unknown)
	}
	return nil
}
