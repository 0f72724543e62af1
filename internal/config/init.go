package config

import (
	"os"
	"path/filepath"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
)

const exampleConfig = `# apidocs configuration
version: "1"

site:
  # Prefix of every generated link. Must end with "/".
  base_path: /api/
  # Declared versions; the first one is the default.
  versions:
    - "8.0"
  sort_locale: en

metadata:
  dir: metadata

markdown:
  extensions: [gfm]
  unsafe: false

output:
  dir: public/api
  precompress: none

server:
  addr: 127.0.0.1:8090
  metrics: true
  watch: true

logging:
  level: info
  format: text

generator:
  command: ""
  args: []
  inputs: []
`

// Init writes an example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return foundationerrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return foundationerrors.FileSystemError("failed to create configuration directory").
				WithCause(err).
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return foundationerrors.FileSystemError("failed to write configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
