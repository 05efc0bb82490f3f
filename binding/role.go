package binding

import "go-midikeys/keys"

// Role is one of the five learnable bindings
type Role int

const (
	Format Role = iota
	Build
	JumpToDefinition
	ShowDefinition
	Enter

	NumRoles = 5
)

// Descriptor ties a role to its prompt label and fixed host action
type Descriptor struct {
	Role   Role
	Name   string
	Label  string
	Action keys.Action
}

// Roles is both the learning order and the dispatch priority
var Roles = [NumRoles]Descriptor{
	{Role: Format, Name: "Format", Label: "Format", Action: keys.ToggleFormat},
	{Role: Build, Name: "Build", Label: "Build", Action: keys.ToggleBuild},
	{Role: JumpToDefinition, Name: "JumpToDefinition", Label: "Opening Definition", Action: keys.Jump},
	{Role: ShowDefinition, Name: "ShowDefinition", Label: "Inline Def", Action: keys.PeekDefinition},
	{Role: Enter, Name: "Enter", Label: "Enter", Action: keys.Confirm},
}

func (r Role) String() string {
	if r < 0 || r >= NumRoles {
		return "Unknown"
	}
	return Roles[r].Name
}

// Action returns the host action bound to r
func (r Role) Action() keys.Action {
	if r < 0 || r >= NumRoles {
		return ""
	}
	return Roles[r].Action
}

// Label returns the operator-facing name used in prompts
func (r Role) Label() string {
	if r < 0 || r >= NumRoles {
		return "Unknown"
	}
	return Roles[r].Label
}
