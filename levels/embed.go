package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is where levels live on disk.
var Dir = "levels"

var ErrInvalidDimensions = errors.New("levels: invalid level dimensions")

const defaultLayerColor = "#3c78ff"

// LoadLevelFromFS loads a level JSON from an fs.FS (e.g. embedded levels).
// A leading "levels/" is stripped so disk-style paths work too.
func LoadLevelFromFS(fsys fs.FS, path string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "levels/")
	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadLevel loads a level from a JSON file on disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return parse(path, data)
}

// Load tries the embedded levels first, then disk.
func Load(path string) (*Level, error) {
	if path == "" {
		return nil, fmt.Errorf("levels: level path is empty")
	}
	lvl, embErr := LoadLevelFromFS(LevelsFS, path)
	if embErr == nil {
		return lvl, nil
	}
	lvl, err := LoadLevel(path)
	if err == nil {
		return lvl, nil
	}
	// a level that exists but is malformed should report why
	if !errors.Is(embErr, fs.ErrNotExist) {
		return nil, embErr
	}
	return nil, err
}

func parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: %s is %dx%d: %w", name, lvl.Width, lvl.Height, ErrInvalidDimensions)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("levels: %s layer %d has %d tiles, want %d: %w",
				name, i, len(layer), lvl.Width*lvl.Height, ErrInvalidDimensions)
		}
	}

	// Ensure layer meta exists for each layer.
	if len(lvl.LayerMeta) < len(lvl.Layers) {
		meta := make([]LayerMeta, len(lvl.Layers))
		copy(meta, lvl.LayerMeta)
		lvl.LayerMeta = meta
	}
	for i := range lvl.LayerMeta {
		if lvl.LayerMeta[i].Color == "" {
			lvl.LayerMeta[i].Color = defaultLayerColor
		}
	}
	lvl.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return &lvl, nil
}
