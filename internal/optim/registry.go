package optim

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Hyperparameters carries rule settings by name for NewRule. A nil field
// selects the default of the rule being built; fields a rule does not use
// are ignored.
type Hyperparameters struct {
	Beta        *float64 // Momentum and RMSprop decay
	Beta1       *float64 // Adam first-moment decay
	Beta2       *float64 // Adam second-moment decay
	Eps         *float64 // Division guard
	UseVelocity bool     // Momentum: step along the velocity
}

// RuleFactory builds a rule from named hyperparameters.
type RuleFactory func(hp Hyperparameters) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]RuleFactory{
		"basic": func(Hyperparameters) Rule { return SGDConfig{} },
		"momentum": func(hp Hyperparameters) Rule {
			r := DefaultMomentum()
			setIf(&r.Beta, hp.Beta)
			r.UseVelocity = hp.UseVelocity
			return r
		},
		"adagrad": func(hp Hyperparameters) Rule {
			r := DefaultAdaGrad()
			setIf(&r.Eps, hp.Eps)
			return r
		},
		"rmsprop": func(hp Hyperparameters) Rule {
			r := DefaultRMSprop()
			setIf(&r.Beta, hp.Beta)
			setIf(&r.Eps, hp.Eps)
			return r
		},
		"adam": func(hp Hyperparameters) Rule {
			r := DefaultAdam()
			setIf(&r.Betas[0], hp.Beta1)
			setIf(&r.Betas[1], hp.Beta2)
			setIf(&r.Eps, hp.Eps)
			return r
		},
	}
)

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// RegisterRule makes a rule available to NewRule under name
// (case-insensitive). Registering an existing name is an error.
func RegisterRule(name string, f RuleFactory) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || f == nil {
		return errors.New("rule name and factory must be set")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[key]; ok {
		return errors.Errorf("rule %q already registered", key)
	}
	registry[key] = f
	return nil
}

// NewRule builds the named rule and validates it.
func NewRule(name string, hp Hyperparameters) (Rule, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	registryMu.RLock()
	f, ok := registry[key]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrInvalidHyperparameter, "unknown rule %q (known: %s)", name, strings.Join(RuleNames(), ", "))
	}

	rule := f(hp)
	if err := rule.Validate(); err != nil {
		return nil, errors.WithMessage(err, key)
	}
	return rule, nil
}

// RuleNames lists the registered rule names in sorted order.
func RuleNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
