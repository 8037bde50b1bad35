package envexport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParseSecrets parses the mandatory secrets input, a JSON object of secret
// names to values.
func ParseSecrets(text string) (map[string]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("the secrets input is required; pass it the JSON object of secret names to values, e.g. ${{ toJSON(secrets) }}")
	}

	secrets, err := parseObject(text)
	if err != nil {
		return nil, fmt.Errorf("parsing the secrets input: %w; it must be a JSON object of secret names to values, e.g. ${{ toJSON(secrets) }}", err)
	}

	return secrets, nil
}

// ParseVars parses the optional vars input. An absent or empty input is
// treated as an empty object.
func ParseVars(text string) (map[string]string, error) {
	if strings.TrimSpace(text) == "" {
		return map[string]string{}, nil
	}

	vars, err := parseObject(text)
	if err != nil {
		return nil, fmt.Errorf("parsing the vars input: %w; it must be a JSON object of variable names to values, e.g. ${{ toJSON(vars) }}", err)
	}

	return vars, nil
}

func parseObject(text string) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, err
	}
	return m, nil
}
