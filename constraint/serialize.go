// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package constraint

import (
	"encoding/json"
	"fmt"
)

// Expr is the untagged wire form of a constraint node: a bare credential
// identifier string for a leaf, or a single-key object ("any", "all" or
// "enumerate") for a compound.
type Expr struct {
	leaf     string
	op       string
	children []Expr
}

// MarshalJSON renders a leaf as a bare string and a compound as
// {"<op>": [...]}.
func (e Expr) MarshalJSON() ([]byte, error) {
	if e.op == "" {
		return json.Marshal(e.leaf)
	}
	return json.Marshal(map[string][]Expr{e.op: e.children})
}

// UnmarshalJSON accepts either shape.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.leaf, e.op, e.children = s, "", nil
		return nil
	}
	var m map[string][]Expr
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("constraint: decoding expression: %w", err)
	}
	for _, candidate := range []string{"any", "all", "enumerate"} {
		if children, ok := m[candidate]; ok {
			e.leaf, e.op, e.children = "", candidate, children
			return nil
		}
	}
	return fmt.Errorf("constraint: unrecognized expression shape")
}

// ProtocolItem is the full per-credential parameter object that always
// appears in a proof request's items list, regardless of how the tree
// that referenced it is shaped.
type ProtocolItem struct {
	Identifier         string  `json:"identifier"`
	IssuerSchemaID     string  `json:"issuer_schema_id"`
	Signal             string  `json:"signal,omitempty"`
	GenesisIssuedAtMin *uint64 `json:"genesis_issued_at_min,omitempty"`
}

// ToProtocolForm flattens a validated tree into the pair of structures a
// proof request carries on the wire: the full parameter object for every
// referenced credential, and an optional constraint expression. A tree
// that is a single Item needs no constraint expression at all -- the
// singleton items list already says everything. A compound tree always
// emits one, with leaves serialized as bare identifier strings since the
// full parameters already live in items.
func ToProtocolForm(n Node) ([]ProtocolItem, *Expr, error) {
	if err := n.Validate(); err != nil {
		return nil, nil, err
	}

	items := make([]ProtocolItem, 0, len(n.Leaves()))
	for _, req := range n.Leaves() {
		if !req.Kind.Valid() {
			return nil, nil, fmt.Errorf("constraint: unknown credential kind %q", req.Kind)
		}
		item := ProtocolItem{
			Identifier:     string(req.Kind),
			IssuerSchemaID: req.Kind.SchemaIDElement().String(),
		}
		if req.Signal != nil {
			item.Signal = req.Signal.WireString()
		}
		if req.GenesisMinTimestamp != nil {
			v := *req.GenesisMinTimestamp
			item.GenesisIssuedAtMin = &v
		}
		items = append(items, item)
	}

	if n.IsItem() {
		return items, nil, nil
	}

	expr := toExpr(n)
	return items, &expr, nil
}

func toExpr(n Node) Expr {
	if n.item != nil {
		return Expr{leaf: string(n.item.Kind)}
	}
	children := make([]Expr, 0, len(n.children))
	for _, child := range n.children {
		children = append(children, toExpr(child))
	}
	return Expr{op: n.op.wireName(), children: children}
}
