package settings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AUSAXS/AUSAXS-sub011/ausaxserr"
)

// parseLines scans §6's settings-file grammar: one `key=value` per
// line, blank lines ignored, lines whose first non-whitespace character
// is '#' ignored, values environment-expanded the way the legacy
// ReadConfigFile kept under internal/inmapref/ expands its own string
// fields. Viper's built-in file formats don't cover this bare grammar,
// so it is pre-parsed into a map and fed through viper.MergeConfigMap so
// every downstream lookup still goes through viper's own type coercion.
func parseLines(r io.Reader) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("settings: line %d %q is not a key=value pair: %w", lineNum, line, ausaxserr.ErrConfigurationError)
		}
		key = strings.TrimSpace(key)
		value = os.ExpandEnv(strings.TrimSpace(value))
		out[key] = coerce(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("settings: reading configuration: %w", err)
	}
	return out, nil
}

// coerce converts a raw string value to bool/int/float64 when it
// unambiguously parses as one, leaving it a string otherwise (strategy
// names, exv_method, radiation).
func coerce(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Load merges every key=value pair read from r into s, overriding
// compiled-in defaults. It does not itself validate cross-option
// combinations; call the typed setters (or Validate) afterward for that.
func (s *Settings) Load(r io.Reader) error {
	parsed, err := parseLines(r)
	if err != nil {
		return err
	}
	return s.v.MergeConfigMap(parsed)
}

// LoadFile opens path and delegates to Load.
func (s *Settings) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("settings: opening %s: %w", path, err)
	}
	defer f.Close()
	return s.Load(f)
}

// Validate re-checks every cross-option combination a typed setter would
// have enforced, for settings that arrived via Load rather than a
// setter call.
func (s *Settings) Validate() error {
	if !recognizedExvMethods[s.ExvMethod()] {
		return configErr("exv_method", s.ExvMethod())
	}
	if !recognizedHydrationStrategies[s.HydrationStrategy()] {
		return configErr("hydration_strategy", s.HydrationStrategy())
	}
	if !recognizedCullingStrategies[s.CullingStrategy()] {
		return configErr("culling_strategy", s.CullingStrategy())
	}
	if !recognizedHydrationStrategies[s.PlacementStrategy()] {
		return configErr("placement_strategy", s.PlacementStrategy())
	}
	if !recognizedExpansionStrategies[s.ExpansionStrategy()] {
		return configErr("expansion_strategy", s.ExpansionStrategy())
	}
	if !recognizedRadiations[s.Radiation()] {
		return configErr("radiation", s.Radiation())
	}
	qmin, qmax, bins := s.QAxis()
	if qmin >= qmax || bins <= 0 {
		return fmt.Errorf("settings: invalid q-axis (qmin=%v, qmax=%v, bins=%d): %w", qmin, qmax, bins, ausaxserr.ErrConfigurationError)
	}
	maxDistance, binWidth := s.DAxis()
	if maxDistance <= 0 || binWidth <= 0 || binWidth > maxDistance {
		return fmt.Errorf("settings: invalid d-axis (max_distance=%v, distance_bin_width=%v): %w", maxDistance, binWidth, ausaxserr.ErrConfigurationError)
	}
	_, _, _, _, exvDW := s.FitEnabled()
	excludedVolume, _, _, _, _ := s.FitEnabled()
	if exvDW && !excludedVolume {
		return fmt.Errorf("settings: fit_exv_debye_waller requires fit_excluded_volume: %w", ausaxserr.ErrConfigurationError)
	}
	return nil
}
