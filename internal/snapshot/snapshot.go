// Package snapshot reads user snapshots from YAML or JSON files.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"dailycoach/internal/engine"
	"dailycoach/internal/models"
)

// Load reads a snapshot file; the format is picked by extension.
// A missing "now" is filled with the current time.
func Load(path string) (engine.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Parse(data, filepath.Ext(path), time.Now)
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or ".json")
func Parse(data []byte, ext string, now func() time.Time) (engine.Snapshot, error) {
	var snap engine.Snapshot
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&snap); err != nil {
			return engine.Snapshot{}, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return engine.Snapshot{}, fmt.Errorf("decode json snapshot: %w", err)
		}
	default:
		return engine.Snapshot{}, fmt.Errorf("unsupported snapshot format %q", ext)
	}

	if snap.Now.IsZero() {
		snap.Now = now()
	}
	if err := Validate(snap); err != nil {
		return engine.Snapshot{}, err
	}
	return snap, nil
}

// Validate rejects unknown enum values; numeric ranges are clamped later by the engine
func Validate(snap engine.Snapshot) error {
	if err := models.ValidateProfile(snap.Profile); err != nil {
		return err
	}
	return models.ValidateHistory(snap.Sessions, snap.Progressions)
}
