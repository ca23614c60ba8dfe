// Package prompt owns the platform profiles, their documentation templates,
// and the assembly of the final LLM prompt.
package prompt

import "strings"

// Profile selects the platform-specific documentation template.
type Profile int

const (
	Default Profile = iota
	Fabric
	Synapse
	Databricks
	PowerBi
	Aws
	DataFactory
)

// profileSpec is the single source of truth for profile names, selector
// flags, and template file stems.
type profileSpec struct {
	profile  Profile
	name     string
	selector string // CLI flag; empty for Default
	stem     string
}

var profileSpecs = []profileSpec{
	{profile: Default, name: "default", selector: "", stem: "default"},
	{profile: Fabric, name: "fabric", selector: "-fabric", stem: "fabric"},
	{profile: Synapse, name: "synapse", selector: "-synapse", stem: "synapse"},
	{profile: Databricks, name: "databricks", selector: "-databricks", stem: "databricks"},
	{profile: PowerBi, name: "powerbi", selector: "-powerbi", stem: "powerbi"},
	{profile: Aws, name: "aws", selector: "-aws", stem: "aws"},
	{profile: DataFactory, name: "datafactory", selector: "-datafactory", stem: "datafactory"},
}

func spec(p Profile) profileSpec {
	for _, s := range profileSpecs {
		if s.profile == p {
			return s
		}
	}
	return profileSpecs[0]
}

// String returns the canonical profile name.
func (p Profile) String() string { return spec(p).name }

// TemplateStem returns the template filename stem for the profile.
func (p Profile) TemplateStem() string { return spec(p).stem }

// ProfileFromSelector maps a CLI selector flag such as "-fabric" to its
// profile. The second return is false for unknown flags.
func ProfileFromSelector(flag string) (Profile, bool) {
	for _, s := range profileSpecs {
		if s.selector != "" && s.selector == flag {
			return s.profile, true
		}
	}
	return Default, false
}

// ProfileFromName maps a canonical name to its profile. Unrecognized names
// fall back to Default.
func ProfileFromName(name string) Profile {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range profileSpecs {
		if s.name == name {
			return s.profile
		}
	}
	return Default
}

// Selectors lists the supported CLI selector flags in declaration order.
func Selectors() []string {
	out := make([]string, 0, len(profileSpecs))
	for _, s := range profileSpecs {
		if s.selector != "" {
			out = append(out, s.selector)
		}
	}
	return out
}
