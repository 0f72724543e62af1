// Package store holds the loaded API metadata for every declared version and
// answers exact and case-insensitive type lookups.
//
// A Store is populated once at startup and is read-only afterwards. The
// metadata it returns is shared and must be treated as immutable; the
// processing pipeline derives new values instead of editing it.
package store

import (
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	ferrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
)

// Store maps version → type name → metadata.
type Store struct {
	once     sync.Once
	versions []string
	types    map[string]map[string]*apimeta.Type
	names    map[string][]string // per version, sorted
}

// New creates an empty store.
func New() *Store {
	return &Store{
		types: make(map[string]map[string]*apimeta.Type),
		names: make(map[string][]string),
	}
}

// Load populates the store from data, keyed by version then type name. The
// first entry of versions is the default version. Only the first call has an
// effect; later calls are ignored.
func (s *Store) Load(versions []string, data map[string]map[string]apimeta.Type) error {
	if len(versions) == 0 {
		return ferrors.ValidationError("load metadata: at least one version is required").Build()
	}
	for i, v := range versions {
		if slices.Contains(versions[:i], v) {
			return ferrors.ValidationError("load metadata: duplicate version").
				WithContext("version", v).
				Build()
		}
	}

	s.once.Do(func() {
		s.versions = slices.Clone(versions)
		for version := range data {
			if !slices.Contains(versions, version) {
				slog.Warn("Ignoring metadata for undeclared version", logfields.Version(version))
			}
		}
		for _, version := range versions {
			byName := make(map[string]*apimeta.Type, len(data[version]))
			names := make([]string, 0, len(data[version]))
			for key, typ := range data[version] {
				t := typ
				if t.Name == "" {
					t.Name = key
				}
				byName[t.Name] = &t
				names = append(names, t.Name)
			}
			sort.Strings(names)
			s.types[version] = byName
			s.names[version] = names
			slog.Debug("Loaded metadata", logfields.Version(version), logfields.Count(len(names)))
		}
	})
	return nil
}

// Versions returns the declared versions in order.
func (s *Store) Versions() []string {
	return slices.Clone(s.versions)
}

// DefaultVersion returns the first declared version.
func (s *Store) DefaultVersion() string {
	if len(s.versions) == 0 {
		return ""
	}
	return s.versions[0]
}

// HasVersion reports whether version was declared.
func (s *Store) HasVersion(version string) bool {
	return slices.Contains(s.versions, version)
}

// IsDefault reports whether version is the default version. The null version
// counts as the default.
func (s *Store) IsDefault(version string) bool {
	return version == apimeta.NullVersion || version == s.DefaultVersion()
}

// HasMultipleVersions reports whether more than one version was declared.
func (s *Store) HasMultipleVersions() bool {
	return len(s.versions) > 1
}

// LinkVersion returns the version argument to use when resolving links from
// metadata of the given version: the null version unless several versions are
// declared and version is not the default.
func (s *Store) LinkVersion(version string) string {
	if !s.HasMultipleVersions() || s.IsDefault(version) {
		return apimeta.NullVersion
	}
	return version
}

func (s *Store) effective(version string) string {
	if version == apimeta.NullVersion {
		return s.DefaultVersion()
	}
	return version
}

// Find looks up a type by exact name. The null version selects the default
// version. A miss is reported through ok, never as an error.
func (s *Store) Find(typeName, version string) (*apimeta.Type, bool) {
	t, ok := s.types[s.effective(version)][typeName]
	return t, ok
}

// FindCaseInsensitive scans the version's types comparing lower-cased names
// and returns the first match in name order.
func (s *Store) FindCaseInsensitive(typeName, version string) (*apimeta.Type, bool) {
	version = s.effective(version)
	want := strings.ToLower(typeName)
	for _, name := range s.names[version] {
		if strings.ToLower(name) == want {
			return s.types[version][name], true
		}
	}
	return nil, false
}

// Types returns the type names of version in sorted order.
func (s *Store) Types(version string) []string {
	return slices.Clone(s.names[s.effective(version)])
}
