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

// Package constraint implements the boolean expression tree a relying party
// builds to declare which credentials it wants, combined with any/all/
// enumerate operators.
package constraint

import (
	"errors"
	"fmt"

	"github.com/worldcoin/idkit-go/credential"
	"github.com/worldcoin/idkit-go/signal"
)

// ErrInvalidConfiguration is returned when a constraint tree violates one of
// the structural invariants: an empty compound node, nesting deeper than 2,
// or more than 12 total nodes.
var ErrInvalidConfiguration = errors.New("constraint: invalid configuration")

const (
	maxDepth = 2
	maxNodes = 12
)

type op int

const (
	opNone op = iota
	opAny
	opAll
	opEnumerate
)

func (o op) wireName() string {
	switch o {
	case opAny:
		return "any"
	case opAll:
		return "all"
	case opEnumerate:
		return "enumerate"
	default:
		return ""
	}
}

// Request is a single credential a relying party wants proved, optionally
// bound to an RP-chosen signal and a minimum genesis timestamp.
type Request struct {
	Kind                credential.Kind
	Signal              *signal.Signal
	GenesisMinTimestamp *uint64
}

// Node is a constraint tree node: either a leaf credential request, or a
// compound any/all/enumerate combinator over child nodes.
type Node struct {
	item     *Request
	op       op
	children []Node
}

// Item builds a leaf node for a single credential request.
func Item(req Request) Node {
	r := req
	return Node{item: &r}
}

// Any builds an any-of-these-children node: satisfied iff any child is.
func Any(children ...Node) Node {
	return Node{op: opAny, children: children}
}

// All builds an all-of-these-children node: satisfied iff every child is.
func All(children ...Node) Node {
	return Node{op: opAll, children: children}
}

// Enumerate builds an enumerate node. It is any-like in satisfiability (any
// child suffices) but asks the authenticator to return all satisfiable
// children rather than stopping at the first.
func Enumerate(children ...Node) Node {
	return Node{op: opEnumerate, children: children}
}

// IsItem reports whether n is a leaf credential request.
func (n Node) IsItem() bool { return n.item != nil }

// Validate checks the structural invariants: every compound node has at
// least one child, nesting depth does not exceed 2, and the tree has at
// most 12 total nodes (leaves and compounds combined).
func (n Node) Validate() error {
	count := 0
	var walk func(node Node, depth int) error
	walk = func(node Node, depth int) error {
		if depth > maxDepth {
			return fmt.Errorf("%w: nesting depth %d exceeds maximum of %d", ErrInvalidConfiguration, depth, maxDepth)
		}
		count++
		if count > maxNodes {
			return fmt.Errorf("%w: %d nodes exceeds maximum of %d", ErrInvalidConfiguration, count, maxNodes)
		}
		if node.item != nil {
			return nil
		}
		if len(node.children) == 0 {
			return fmt.Errorf("%w: %s node has no children", ErrInvalidConfiguration, node.op.wireName())
		}
		for _, child := range node.children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(n, 0)
}

// Evaluate reports whether the tree is satisfied given the set of credential
// kinds the authenticator actually produced.
func (n Node) Evaluate(present map[credential.Kind]bool) bool {
	if n.item != nil {
		return present[n.item.Kind]
	}
	switch n.op {
	case opAll:
		for _, child := range n.children {
			if !child.Evaluate(present) {
				return false
			}
		}
		return true
	case opAny, opEnumerate:
		for _, child := range n.children {
			if child.Evaluate(present) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// FirstSatisfying returns the first satisfied credential request in
// left-to-right order -- the rule relying parties use to communicate
// preference. For All, the whole subtree must be satisfied first; the
// result is then the first concrete credential found in left-to-right
// traversal (not necessarily the one that made the difference).
func (n Node) FirstSatisfying(present map[credential.Kind]bool) (*Request, bool) {
	switch {
	case n.item != nil:
		if present[n.item.Kind] {
			return n.item, true
		}
		return nil, false
	case n.op == opAll:
		if !n.Evaluate(present) {
			return nil, false
		}
		return firstConcrete(n), true
	case n.op == opAny || n.op == opEnumerate:
		for _, child := range n.children {
			if r, ok := child.FirstSatisfying(present); ok {
				return r, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func firstConcrete(n Node) *Request {
	if n.item != nil {
		return n.item
	}
	for _, child := range n.children {
		if r := firstConcrete(child); r != nil {
			return r
		}
	}
	return nil
}

// Leaves returns every credential request in the tree, in left-to-right
// (pre-order) traversal order.
func (n Node) Leaves() []Request {
	var out []Request
	var walk func(node Node)
	walk = func(node Node) {
		if node.item != nil {
			out = append(out, *node.item)
			return
		}
		for _, child := range node.children {
			walk(child)
		}
	}
	walk(n)
	return out
}
