package config

import "fmt"

// templateHeader is the comment block prepended to generated config files.
const templateHeader = `# relint configuration
# See 'relint rules' for the built-in rewrite rule IDs.
`

// Template generates a starter configuration file with defaults filled in.
func Template() ([]byte, error) {
	yamlBytes, err := Default().ToYAML()
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	out := make([]byte, 0, len(templateHeader)+1+len(yamlBytes))
	out = append(out, templateHeader...)
	out = append(out, '\n')
	out = append(out, yamlBytes...)

	return out, nil
}
