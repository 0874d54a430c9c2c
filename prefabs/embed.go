package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the on-disk prefab directory. Files found there win over the
// embedded copies so edits show up without a rebuild.
const Dir = "prefabs"

//go:embed *.yaml scripts/*.tengo colliders/*.collider
var PrefabsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	return Load(subPath("scripts", name))
}

func LoadColliderFile(name string) ([]byte, error) {
	return Load(subPath("colliders", name))
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

// subPath accepts "x", "dir/x" or "prefabs/dir/x" and returns "dir/x".
func subPath(dir, name string) string {
	s := cleanPrefabPath(name)
	if after, ok := strings.CutPrefix(s, dir+"/"); ok {
		s = after
	}
	return dir + "/" + s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
