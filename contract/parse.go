package contract

import (
	"fmt"
	"os"

	"github.com/induct/apiary/apiaryerrors"
	"go.yaml.in/yaml/v4"
)

// Parse decodes a contract from YAML or JSON. It does not validate the
// result; call Contract.Validate for that.
func Parse(data []byte) (*Contract, error) {
	var c Contract
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &apiaryerrors.ValidationError{Message: "malformed contract document", Cause: err}
	}
	return &c, nil
}

// ParseFile reads and decodes the contract at path.
func ParseFile(path string) (*Contract, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided contract location
	if err != nil {
		return nil, fmt.Errorf("contract: reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("contract: %s: %w", path, err)
	}
	return c, nil
}

// Marshal encodes the contract as YAML.
func Marshal(c *Contract) ([]byte, error) {
	return yaml.Marshal(c)
}
