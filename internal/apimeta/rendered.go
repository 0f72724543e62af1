package apimeta

// RenderedType is a Type after the processing pipeline: inherited members
// removed, lists sorted, every textual field converted to HTML and constants
// split out of properties. The top-level description and examples are dropped.
type RenderedType struct {
	Name       string           `json:"name"`
	Summary    string           `json:"summary,omitempty"`
	Extends    string           `json:"extends,omitempty"`
	Since      string           `json:"since,omitempty"`
	Platforms  []string         `json:"platforms,omitempty"`
	Properties []RenderedMember `json:"properties"`
	Methods    []RenderedMember `json:"methods"`
	Events     []RenderedMember `json:"events"`
	Constants  []RenderedMember `json:"constants"`
}

// RenderedMember is a Member whose textual fields hold HTML. Examples is the
// single rendered "Examples" block, never a list.
type RenderedMember struct {
	Name        string      `json:"name"`
	Summary     string      `json:"summary,omitempty"`
	Description string      `json:"description,omitempty"`
	Examples    string      `json:"examples,omitempty"`
	Deprecated  *Deprecated `json:"deprecated,omitempty"`
	Returns     *Returns    `json:"returns,omitempty"`
	Inherits    string      `json:"inherits,omitempty"`
	Platforms   []string    `json:"platforms,omitempty"`
	Type        string      `json:"type,omitempty"`
	Default     string      `json:"default,omitempty"`
	Permission  string      `json:"permission,omitempty"`
	Since       string      `json:"since,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
}

// Names returns the member names in order.
func Names[M interface{ Member | RenderedMember }](members []M) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		switch v := any(m).(type) {
		case Member:
			names = append(names, v.Name)
		case RenderedMember:
			names = append(names, v.Name)
		}
	}
	return names
}
