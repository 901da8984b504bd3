package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/book-fingerprint/pkg/storage"
	"gopkg.in/yaml.v3"
)

// PathFor returns the manifest path that accompanies imagePath:
// "output.png" -> "output.yaml".
func PathFor(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".yaml"
}

// GenerateSummary writes m next to its image and returns the manifest path.
func GenerateSummary(m SummaryManifest, s *storage.Storage) (string, error) {
	manifestPath := PathFor(m.OutputPath)
	manifestData, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
