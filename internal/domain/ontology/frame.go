// Package ontology models the frame ontology: per-frame definitions, role
// tables, and the ancestor/descendant declarations from which the navigable
// hierarchy index is derived.
package ontology

import (
	"encoding/json"
	"sort"
)

// FrameNode is one processed frame.  Ancestors and Descendants preserve the
// source order of the raw ontology; Descendants is passthrough metadata only
// and is never used to build the hierarchy index (see BuildHierarchy).
type FrameNode struct {
	Name        string            `json:"name"`
	Definition  string            `json:"definition"`
	Ancestors   []string          `json:"ancestors"`
	Descendants []string          `json:"descendants"`
	CoreRoles   map[string]string `json:"core_roles"`
	AllRoles    map[string]string `json:"all_roles"`
}

// Table is the full set of frames keyed by frame name.  It is built once at
// ingestion and treated as read-only thereafter, so unlimited concurrent
// readers need no locking.
type Table map[string]FrameNode

// Lookup returns the frame and whether it is declared in the ontology.
func (t Table) Lookup(frame string) (FrameNode, bool) {
	node, ok := t[frame]
	return node, ok
}

// RoleDefinitions returns the frame's full role table (core and non-core),
// or nil when the frame is unknown.
func (t Table) RoleDefinitions(frame string) map[string]string {
	node, ok := t[frame]
	if !ok {
		return nil
	}
	return node.AllRoles
}

// Names returns all frame names in lexical order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RawFrame is the on-disk shape of one ontology entry.  Role maps use raw
// messages because the source data occasionally carries non-object values in
// role position; those entries are skipped rather than failing the frame.
type RawFrame struct {
	Definition  string                     `json:"definition"`
	Ancestors   []string                   `json:"ancestors"`
	Descendants []string                   `json:"descendants"`
	CoreRoles   map[string]json.RawMessage `json:"core roles"`
	Roles       map[string]json.RawMessage `json:"roles"`
}

type rawRole struct {
	Definition string `json:"definition"`
}

// ProcessFrame converts one raw ontology entry into a FrameNode.
func ProcessFrame(name string, raw RawFrame) FrameNode {
	return FrameNode{
		Name:        name,
		Definition:  raw.Definition,
		Ancestors:   raw.Ancestors,
		Descendants: raw.Descendants,
		CoreRoles:   roleDefinitions(raw.CoreRoles),
		AllRoles:    roleDefinitions(raw.Roles),
	}
}

// ProcessTable converts a full raw ontology into a Table.
func ProcessTable(raw map[string]RawFrame) Table {
	table := make(Table, len(raw))
	for name, rf := range raw {
		table[name] = ProcessFrame(name, rf)
	}
	return table
}

// roleDefinitions extracts role -> definition, skipping entries that are not
// objects with a definition field.
func roleDefinitions(raw map[string]json.RawMessage) map[string]string {
	defs := make(map[string]string, len(raw))
	for role, msg := range raw {
		var r rawRole
		if err := json.Unmarshal(msg, &r); err != nil || r.Definition == "" {
			continue
		}
		defs[role] = r.Definition
	}
	return defs
}
