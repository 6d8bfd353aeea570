package frames

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// frameDef is the manifest form of a frame, with string enums.
type frameDef struct {
	ID        int    `json:"id"`
	Pose      string `json:"pose"`
	Tier      string `json:"tier"`
	Direction string `json:"direction"`
	Type      string `json:"type"`
}

// LoadFile loads frame definitions from a JSON manifest on disk.
// The manifest is a plain list of frame objects.
func LoadFile(path string) ([]Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame manifest: %w", err)
	}
	return parseManifest(data)
}

// LoadDirectory loads all *.json manifests from a directory.
// Useful for loading custom frame packs alongside the bundled set.
func LoadDirectory(dir string) ([]Frame, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list frame manifests: %w", err)
	}

	var all []Frame
	for _, file := range files {
		fs, err := LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		all = append(all, fs...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no manifests in %s", ErrNoFrames, dir)
	}
	return all, nil
}

func parseManifest(data []byte) ([]Frame, error) {
	var defs []frameDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse frame manifest: %w", err)
	}
	if len(defs) == 0 {
		return nil, ErrNoFrames
	}

	out := make([]Frame, 0, len(defs))
	for i, d := range defs {
		if d.Pose == "" {
			return nil, fmt.Errorf("%w: frame %d has no pose label", ErrInvalidFrame, i)
		}
		tier, err := ParseTier(d.Tier)
		if err != nil {
			return nil, err
		}
		dir, err := ParseDirection(d.Direction)
		if err != nil {
			return nil, err
		}
		typ, err := ParseFrameType(d.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, Frame{
			ID:        d.ID,
			Pose:      d.Pose,
			Tier:      tier,
			Direction: dir,
			Type:      typ,
		})
	}
	return out, nil
}
