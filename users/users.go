package users

import (
	"encoding/json"
	"sort"
	"strings"
)

// RoleType is the coarse privilege level of a user
type RoleType string

const (
	RoleAdmin    RoleType = "admin"    // Every module plus account management
	RoleStandard RoleType = "standard" // Only the modules granted to the user
)

// ModulesDelimiter separates module identifiers in the stored modules column
const ModulesDelimiter = ","

// IsValid reports whether r is one of the known roles
func (r RoleType) IsValid() bool {
	return r == RoleAdmin || r == RoleStandard
}

type User struct {
	ID           int64     `json:"id"`       // user_id, never reused
	Username     string    `json:"username"` // Unique login handle
	PasswordHash string    `json:"-"`        // One-way hash - never serialize
	Role         RoleType  `json:"role"`
	Modules      ModuleSet `json:"modules"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ModuleSet is the set of module identifiers a user may open.
type ModuleSet map[string]struct{}

// NewModuleSet builds a set from ids, duplicates collapse.
func NewModuleSet(ids ...string) ModuleSet {
	set := make(ModuleSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ParseModuleSet splits the stored delimited string. No whitespace is trimmed
// and an empty string is the empty set.
func ParseModuleSet(stored string) ModuleSet {
	if stored == "" {
		return ModuleSet{}
	}
	return NewModuleSet(strings.Split(stored, ModulesDelimiter)...)
}

// String serializes the set for storage, sorted so equal sets store equal strings.
func (m ModuleSet) String() string {
	return strings.Join(m.Slice(), ModulesDelimiter)
}

// Slice returns the members sorted.
func (m ModuleSet) Slice() []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (m ModuleSet) Contains(id string) bool {
	_, ok := m[id]
	return ok
}

// Clone returns an independent copy, never nil.
func (m ModuleSet) Clone() ModuleSet {
	out := make(ModuleSet, len(m))
	for id := range m {
		out[id] = struct{}{}
	}
	return out
}

// Equal reports set equality, order never matters.
func (m ModuleSet) Equal(other ModuleSet) bool {
	if len(m) != len(other) {
		return false
	}
	for id := range m {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the set as a sorted array.
func (m ModuleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Slice())
}

func (m *ModuleSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*m = NewModuleSet(ids...)
	return nil
}
