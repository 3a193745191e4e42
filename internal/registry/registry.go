package registry

import (
	"fmt"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/pkg/contracts"
)

// Registry manages the league modules, remembering registration order
type Registry struct {
	modules map[string]contracts.LeagueModule
	order   []string
}

// New creates a registry holding the given modules in order
func New(modules ...contracts.LeagueModule) *Registry {
	r := &Registry{
		modules: make(map[string]contracts.LeagueModule),
	}
	for _, m := range modules {
		r.Register(m)
	}
	return r
}

// Register adds a league module. Re-registering a key replaces the module in place.
func (r *Registry) Register(module contracts.LeagueModule) {
	key := module.Key()
	if _, exists := r.modules[key]; !exists {
		r.order = append(r.order, key)
	}
	r.modules[key] = module
}

// GetModule retrieves a league module by key
func (r *Registry) GetModule(leagueKey string) (contracts.LeagueModule, error) {
	module, ok := r.modules[leagueKey]
	if !ok {
		return nil, fmt.Errorf("league module not found: %s", leagueKey)
	}
	return module, nil
}

// Modules returns all modules in registration order
func (r *Registry) Modules() []contracts.LeagueModule {
	modules := make([]contracts.LeagueModule, 0, len(r.order))
	for _, key := range r.order {
		modules = append(modules, r.modules[key])
	}
	return modules
}

// AllLeagueKeys returns all registered league keys in registration order
func (r *Registry) AllLeagueKeys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}
