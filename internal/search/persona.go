package search

import (
	_ "embed"
	"os"
	"strings"

	"go.uber.org/zap"
)

//go:embed persona_default.txt
var defaultPersona string

// LoadPersona reads the system-level persona instruction from path. A
// missing or empty file falls back to the embedded default; initialization
// never fails because of the persona.
func LoadPersona(path string) string {
	if path == "" {
		return strings.TrimSpace(defaultPersona)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("search: persona file unavailable, using default",
			zap.String("path", path),
			zap.Error(err),
		)
		return strings.TrimSpace(defaultPersona)
	}

	persona := strings.TrimSpace(string(data))
	if persona == "" {
		return strings.TrimSpace(defaultPersona)
	}
	return persona
}
