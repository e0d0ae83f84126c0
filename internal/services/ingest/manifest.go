package ingest

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// manifestDelimiter is the thorn field separator used by load-file
// manifests that ship alongside document productions.
const manifestDelimiter = "þ"

// ParseManifest reads a .DAT load file and returns the bates mapping it
// carries. The first line is a header and is skipped. Each remaining
// line is split on the thorn delimiter, empty fields dropped; the first
// field keys the second. Missing files yield an empty map, not an error.
func ParseManifest(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	bates := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		fields := splitManifestLine(scanner.Text())
		if len(fields) >= 2 {
			bates[fields[0]] = fields[1]
		}
	}

	return bates, scanner.Err()
}

// LoadManifests merges every .DAT file found under dir into one map
func LoadManifests(dir string) (map[string]string, error) {
	merged := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".dat") {
			return nil
		}
		m, err := ParseManifest(path)
		if err != nil {
			return err
		}
		for k, v := range m {
			merged[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

func splitManifestLine(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), manifestDelimiter)
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}
