package binding

// Binding is one role's learned key-code
type Binding struct {
	Role    Role
	Code    uint8
	Learned bool
}

// Table holds every role's binding in dispatch order
type Table [NumRoles]Binding

// Lookup returns the first learned role bound to code
func (t Table) Lookup(code uint8) (Role, bool) {
	for _, b := range t {
		if b.Learned && b.Code == code {
			return b.Role, true
		}
	}
	return 0, false
}

// Complete reports whether every role has been learned
func (t Table) Complete() bool {
	for _, b := range t {
		if !b.Learned {
			return false
		}
	}
	return true
}

// Shadowed returns the learned roles that can never fire because an earlier
// role shares their key-code
func (t Table) Shadowed() []Role {
	var out []Role
	for i, b := range t {
		if !b.Learned {
			continue
		}
		if r, _ := t.Lookup(b.Code); r != Role(i) {
			out = append(out, Role(i))
		}
	}
	return out
}
