// Package envfile reads KEY=VALUE fallback files for the environment handed
// to child processes. Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Parse reads KEY=VALUE lines. Blank lines and # comments are skipped,
// an "export " prefix is dropped and matching quotes around values are removed.
func Parse(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// Merge returns environ extended with the variables from the file at path
// that are unset or empty in environ, along with the sorted names of the
// variables it added. A missing file leaves environ as is.
func Merge(environ []string, path string) ([]string, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return environ, nil, nil
		}
		return environ, nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	vars, err := Parse(file)
	if err != nil {
		return environ, nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	set := make(map[string]bool, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok && value != "" {
			set[key] = true
		}
	}

	merged := append([]string(nil), environ...)
	var added []string
	for key, value := range vars {
		if set[key] {
			continue
		}
		merged = append(merged, key+"="+value)
		added = append(added, key)
	}
	sort.Strings(added)
	return merged, added, nil
}

// Lookup returns the last value of key in environ, matching os.Getenv
// semantics for a duplicated key under exec.
func Lookup(environ []string, key string) string {
	value := ""
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			value = kv[len(prefix):]
		}
	}
	return value
}

// parseEnvLine extracts KEY=VALUE from a line.
func parseEnvLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}
