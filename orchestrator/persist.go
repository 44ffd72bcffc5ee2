package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// persist writes the analysis bundle under a per-analysis directory in the
// configured outputs root. The directory is named after the analysis ID so
// bundles written in the same second never collide.
func (p *Pipeline) persist(a *Analysis) error {
	dir := filepath.Join(p.cfg.Paths.Outputs, a.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, "analysis.json"), a)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
