// Package xref resolves key-path references ("Type" or "Type.member") to the
// display name and canonical path of the documented entity.
package xref

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	"git.home.luguber.info/inful/apidocs/internal/store"
)

// Resolver resolves key-paths against a Store.
type Resolver struct {
	store *store.Store
}

// NewResolver creates a resolver backed by s.
func NewResolver(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// ResolveLink resolves keyPath in version (the default version when version is
// the null version). A key-path may be qualified as "<version>/<keyPath>" with
// a declared version, which then takes precedence. Resolution failure is
// reported through ok and is not an error.
func (r *Resolver) ResolveLink(keyPath, basePath, version string) (apimeta.LinkTarget, bool) {
	keyPath = strings.TrimSpace(keyPath)
	if keyPath == "" || strings.ContainsAny(keyPath, " \t\n") {
		return apimeta.LinkTarget{}, false
	}

	if strings.Contains(keyPath, "/") {
		qualifier, rest, ok := r.splitVersion(keyPath)
		if !ok {
			return apimeta.LinkTarget{}, false
		}
		keyPath = rest
		version = r.store.LinkVersion(qualifier)
	}

	if _, ok := r.store.Find(keyPath, version); ok {
		return apimeta.LinkTarget{Name: keyPath, Path: TypePath(basePath, version, keyPath, "")}, true
	}

	idx := strings.LastIndex(keyPath, ".")
	if idx <= 0 || idx == len(keyPath)-1 {
		return apimeta.LinkTarget{}, false
	}
	typeName, memberName := keyPath[:idx], keyPath[idx+1:]
	typ, ok := r.store.Find(typeName, version)
	if !ok {
		return apimeta.LinkTarget{}, false
	}
	member, _, ok := typ.FindMember(memberName)
	if !ok {
		return apimeta.LinkTarget{}, false
	}

	owner := typeName
	if member.InheritedFrom(typeName) {
		if _, declared := r.store.Find(member.Inherits, version); declared {
			owner = member.Inherits
		}
	}
	return apimeta.LinkTarget{Name: keyPath, Path: TypePath(basePath, version, owner, memberName)}, true
}

// splitVersion strips a declared version prefix. Versions may themselves
// contain slashes, so the longest matching version wins.
func (r *Resolver) splitVersion(keyPath string) (string, string, bool) {
	best := ""
	for _, v := range r.store.Versions() {
		if strings.HasPrefix(keyPath, v+"/") && len(v) > len(best) {
			best = v
		}
	}
	if best == "" || strings.Contains(keyPath[len(best)+1:], "/") {
		return "", "", false
	}
	return best, keyPath[len(best)+1:], true
}

// TypePath builds the canonical page path of a type, optionally anchored at a
// member: <basePath>[<version>/]<Type>.html[#<member>].
func TypePath(basePath, version, typeName, member string) string {
	base := basePath
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	p := base
	if version != apimeta.NullVersion {
		p = path.Join(base, version) + "/"
	}
	p += typeName + ".html"
	if member != "" {
		p += "#" + strings.ToLower(member)
	}
	return p
}

// LinkTable maps every loaded type, per version, to its canonical path. Paths
// for non-default versions are version-qualified.
func (r *Resolver) LinkTable(basePath string) map[string]map[string]string {
	table := make(map[string]map[string]string)
	for _, version := range r.store.Versions() {
		linkVersion := r.store.LinkVersion(version)
		names := r.store.Types(version)
		entries := make(map[string]string, len(names))
		for _, name := range names {
			entries[name] = TypePath(basePath, linkVersion, name, "")
		}
		table[version] = entries
	}
	return table
}
