package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one device in the output manifest.
type ManifestEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Error string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json for a finished batch run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			ID:    r.DeviceID,
			Name:  r.Name,
			Image: r.Image,
		}
		if !r.Success {
			entries[i].Error = r.Error
			entries[i].Image = ""
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
