package contract

import "github.com/induct/apiary/apiaryerrors"

// ResolveEnvironment selects the environment named name from the contract's
// generation config. Matching is exact and case-sensitive; when names repeat
// the first declaration wins. An empty name, a missing config or an unknown
// name yields an *apiaryerrors.EnvironmentError. There is no default
// environment.
func ResolveEnvironment(c *Contract, name string) (Environment, error) {
	if c == nil {
		return Environment{}, &apiaryerrors.EnvironmentError{Name: name}
	}
	if name == "" {
		return Environment{}, &apiaryerrors.EnvironmentError{Contract: c.Name, Available: c.EnvironmentNames()}
	}
	if c.Config != nil {
		for _, env := range c.Config.Environments {
			if env.Name == name {
				return env, nil
			}
		}
	}
	return Environment{}, &apiaryerrors.EnvironmentError{
		Contract:  c.Name,
		Name:      name,
		Available: c.EnvironmentNames(),
	}
}
