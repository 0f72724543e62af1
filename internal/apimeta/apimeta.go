// Package apimeta defines the API reference metadata model: the raw type
// descriptions produced by the external generator, their rendered
// counterparts handed to the page layer, resolved link targets and
// navigation headers.
package apimeta

import (
	"regexp"
	"strings"
)

// NullVersion means "do not version-qualify a resolved link". It applies when
// a single version is declared or the current metadata belongs to the default one.
const NullVersion = ""

// MemberKind names one of the member lists of a type.
type MemberKind string

const (
	KindProperties MemberKind = "properties"
	KindMethods    MemberKind = "methods"
	KindEvents     MemberKind = "events"
	KindConstants  MemberKind = "constants"
)

// Title returns the kind name with its first letter upper-cased ("Properties").
func (k MemberKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// MemberKinds lists the kinds the generator emits, in transform order.
var MemberKinds = []MemberKind{KindProperties, KindMethods, KindEvents}

var constantName = regexp.MustCompile(`^[A-Z0-9_]+$`)

// IsConstantName reports whether name consists only of upper-case letters,
// digits and underscores.
func IsConstantName(name string) bool {
	return constantName.MatchString(name)
}

// Type is one documented API type as emitted by the metadata generator.
type Type struct {
	Name        string    `json:"name" yaml:"name"`
	Summary     string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Extends     string    `json:"extends,omitempty" yaml:"extends,omitempty"`
	Since       string    `json:"since,omitempty" yaml:"since,omitempty"`
	Platforms   []string  `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Examples    []Example `json:"examples,omitempty" yaml:"examples,omitempty"`
	Properties  []Member  `json:"properties,omitempty" yaml:"properties,omitempty"`
	Methods     []Member  `json:"methods,omitempty" yaml:"methods,omitempty"`
	Events      []Member  `json:"events,omitempty" yaml:"events,omitempty"`
}

// Members returns the member list for kind. Constants are never part of raw metadata.
func (t *Type) Members(kind MemberKind) []Member {
	switch kind {
	case KindProperties:
		return t.Properties
	case KindMethods:
		return t.Methods
	case KindEvents:
		return t.Events
	default:
		return nil
	}
}

// SetMembers replaces the member list for kind.
func (t *Type) SetMembers(kind MemberKind, members []Member) {
	switch kind {
	case KindProperties:
		t.Properties = members
	case KindMethods:
		t.Methods = members
	case KindEvents:
		t.Events = members
	}
}

// FindMember looks name up across properties, methods and events, in that order.
func (t *Type) FindMember(name string) (Member, MemberKind, bool) {
	for _, kind := range MemberKinds {
		for _, m := range t.Members(kind) {
			if m.Name == name {
				return m, kind, true
			}
		}
	}
	return Member{}, "", false
}

// Member is a property, method or event entry.
type Member struct {
	Name        string      `json:"name" yaml:"name"`
	Summary     string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Examples    []Example   `json:"examples,omitempty" yaml:"examples,omitempty"`
	Deprecated  *Deprecated `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Returns     *Returns    `json:"returns,omitempty" yaml:"returns,omitempty"`
	Inherits    string      `json:"inherits,omitempty" yaml:"inherits,omitempty"`
	Platforms   []string    `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"`
	Default     string      `json:"default,omitempty" yaml:"default,omitempty"`
	Permission  string      `json:"permission,omitempty" yaml:"permission,omitempty"`
	Since       string      `json:"since,omitempty" yaml:"since,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// InheritedFrom reports whether the member is declared on a type other than owner.
func (m Member) InheritedFrom(owner string) bool {
	return m.Inherits != "" && m.Inherits != owner
}

// Example is one code sample attached to a member.
type Example struct {
	Description string `json:"description" yaml:"description"`
	Code        string `json:"code" yaml:"code"`
}

// Deprecated marks a member as deprecated, optionally with notes.
type Deprecated struct {
	Since   string `json:"since,omitempty" yaml:"since,omitempty"`
	Removed string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Notes   string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Returns describes a method's return value.
type Returns struct {
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Parameter is a method argument or event payload field.
type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	Summary  string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// LinkTarget is the resolved display name and canonical path of a key-path.
type LinkTarget struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Header is one entry of a page's navigation outline.
type Header struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}
