package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a scene the binaries can render: either a built-in
// scene or a config file found on disk
type SceneInfo struct {
	ID          string // Value accepted by the -scene flag
	Name        string // Display name
	Description string // Optional description
	Builtin     bool
}

// BuiltinScenes returns the scenes compiled into the binary
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "diorama",
			Name:        "Diorama",
			Description: "Terrain diorama with a glass block, a lamp and a sphere",
			Builtin:     true,
		},
		{
			ID:          "showcase",
			Name:        "Showcase",
			Description: "Material test with matte and glass blocks on a checkered slab",
			Builtin:     true,
		},
	}
}

// DiscoverConfigs scans a directory for scene config files and reads their
// metadata without building them. A missing directory yields an empty list.
func DiscoverConfigs(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %v", err)
	}

	var scenes []SceneInfo
	for _, path := range files {
		scenes = append(scenes, configMetadata(path))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// configMetadata extracts the name and description fields from a config
// file, falling back to the filename when they are absent or unreadable
func configMetadata(path string) SceneInfo {
	filename := filepath.Base(path)
	info := SceneInfo{
		ID:   path,
		Name: titleCase(strings.TrimSuffix(filename, filepath.Ext(filename))),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info
	}

	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	info.Description = meta.Description
	return info
}

// ListScenes returns the built-in scenes followed by any configs found in
// the given directory. Discovery problems are ignored so listings work
// without a scenes directory.
func ListScenes(dir string) []SceneInfo {
	scenes := BuiltinScenes()
	if discovered, err := DiscoverConfigs(dir); err == nil {
		scenes = append(scenes, discovered...)
	}
	return scenes
}

// titleCase converts a filename-style string to title case
// e.g., "glass-garden" -> "Glass Garden"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
