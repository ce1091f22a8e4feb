package nixinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ParseConf reads settings in the nix.conf format. Later assignments win,
// except for extra- settings which accumulate. include directives are skipped.
func ParseConf(r io.Reader) (Config, error) {
	cfg := Config{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "include ") || strings.HasPrefix(line, "!include ") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected 'name = value', got %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Join(strings.Fields(value), " ")
		if key == "" {
			return nil, fmt.Errorf("line %d: missing setting name", lineNo)
		}

		if strings.HasPrefix(key, "extra-") {
			if prev, ok := cfg.String(key); ok && prev != "" {
				value = prev + " " + value
			}
		}
		cfg[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromConfFile builds a snapshot from a nix.conf file and the host CPU count.
func FromConfFile(path string) (Info, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Info{}, err
	}
	defer file.Close()

	cfg, err := ParseConf(file)
	if err != nil {
		return Info{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return Info{CPUs: runtime.NumCPU(), Config: cfg}, nil
}
