package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Package profiles loads named storage endpoints from YAML/JSON files.

// Profile describes one remote storage endpoint a client can target.
// TimeoutSeconds is optional; zero means the app-wide HTTP timeout applies.
type Profile struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	BaseURL        string            `json:"base_url" yaml:"base_url"`
	EndpointPath   string            `json:"endpoint_path" yaml:"endpoint_path"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
	Default        *bool             `json:"default" yaml:"default"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
}

// configFile represents the structure of the profiles configuration file.
type configFile struct {
	Profiles []Profile `json:"profiles" yaml:"profiles"`
}

// Registry materializes profile definitions loaded from config files.
type Registry struct {
	mu        sync.RWMutex
	profiles  []Profile
	idx       map[string]Profile
	defaultID string
}

// Load loads the profile registry from a YAML/JSON file.
func Load(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("profiles file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	fileReg, err := parseProfileRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Profiles) == 0 {
		return nil, errors.New("profiles file contains no profiles entries")
	}

	reg := &Registry{
		profiles: make([]Profile, len(fileReg.Profiles)),
		idx:      make(map[string]Profile, len(fileReg.Profiles)),
	}

	for i := range fileReg.Profiles {
		p := sanitizeProfile(fileReg.Profiles[i])
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profiles[%d]: %w", i, err)
		}
		if _, exists := reg.idx[p.ID]; exists {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		if p.DefaultValue() {
			if reg.defaultID != "" {
				return nil, fmt.Errorf("profiles %q and %q both flagged default", reg.defaultID, p.ID)
			}
			reg.defaultID = p.ID
		}
		reg.profiles[i] = p
		reg.idx[p.ID] = p
	}

	return reg, nil
}

// parseProfileRegistry attempts to decode the profiles file content.
func parseProfileRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if reg, err := unmarshalProfileRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return configFile{}, errors.New("profiles file format not recognized (expected YAML or JSON)")
}

// unmarshalProfileRegistry decodes the profiles file using the provided function.
func unmarshalProfileRegistry(name string, data []byte, fn func([]byte, any) error) (configFile, error) {
	var reg configFile
	if err := fn(data, &reg); err != nil {
		return configFile{}, fmt.Errorf("decode %s profiles: %w", name, err)
	}
	return reg, nil
}

// sanitizeProfile trims and normalizes the profile fields.
func sanitizeProfile(p Profile) Profile {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	p.EndpointPath = strings.Trim(strings.TrimSpace(p.EndpointPath), "/")
	p.Headers = sanitizeHeaders(p.Headers)

	if p.TimeoutSeconds < 0 {
		p.TimeoutSeconds = 0
	}

	return p
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// validateProfile checks that required fields are present.
func validateProfile(p Profile) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required for profile %q", p.ID)
	}
	if p.BaseURL == "" {
		return fmt.Errorf("base_url is required for profile %q", p.ID)
	}
	return nil
}

// ByID returns the profile config by id.
func (r *Registry) ByID(id string) (Profile, bool) {
	if r == nil {
		return Profile{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.idx[id]
	return p, ok
}

// All returns all configured profiles.
func (r *Registry) All() []Profile {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Default returns the profile flagged default, falling back to the first
// declared entry.
func (r *Registry) Default() (Profile, bool) {
	if r == nil {
		return Profile{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.defaultID != "" {
		p, ok := r.idx[r.defaultID]
		return p, ok
	}
	if len(r.profiles) == 0 {
		return Profile{}, false
	}
	return r.profiles[0], true
}

// DefaultValue returns the default flag, false when unset.
func (p Profile) DefaultValue() bool {
	if p.Default == nil {
		return false
	}
	return *p.Default
}

// Timeout returns the per-request timeout for the profile, zero when the
// profile does not override the app-wide default.
func (p Profile) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}
