// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gamestate

import "fmt"

// ExpressionKind tags which variant of Expression is populated.
type ExpressionKind int

const (
	ExprUnary ExpressionKind = iota
	ExprNot
	ExprAnd
	ExprOr
)

// Expression is a small boolean-combinator tree over leaf claims, used to
// represent compound testimony (e.g. "villager #2 is good AND villager #4
// lies"). Type is constrained to fmt.Stringer so the tree itself can always
// be displayed, matching the generic bound on the original's Expression<T>.
type Expression[T fmt.Stringer] struct {
	kind  ExpressionKind
	leaf  T
	inner *Expression[T]
	lhs   *Expression[T]
	rhs   *Expression[T]
}

// Unary wraps a single leaf claim.
func Unary[T fmt.Stringer](leaf T) Expression[T] {
	return Expression[T]{kind: ExprUnary, leaf: leaf}
}

// Not negates an expression.
func Not[T fmt.Stringer](e Expression[T]) Expression[T] {
	return Expression[T]{kind: ExprNot, inner: &e}
}

// And combines two expressions conjunctively.
func And[T fmt.Stringer](lhs, rhs Expression[T]) Expression[T] {
	return Expression[T]{kind: ExprAnd, lhs: &lhs, rhs: &rhs}
}

// Or combines two expressions disjunctively.
func Or[T fmt.Stringer](lhs, rhs Expression[T]) Expression[T] {
	return Expression[T]{kind: ExprOr, lhs: &lhs, rhs: &rhs}
}

// Kind returns which combinator this expression node is.
func (e Expression[T]) Kind() ExpressionKind { return e.kind }

// Leaf returns the wrapped value for a Unary expression; the zero value
// otherwise.
func (e Expression[T]) Leaf() T { return e.leaf }

// Inner returns the negated sub-expression for a Not expression.
func (e Expression[T]) Inner() *Expression[T] { return e.inner }

// Operands returns the two sub-expressions for an And/Or expression.
func (e Expression[T]) Operands() (*Expression[T], *Expression[T]) { return e.lhs, e.rhs }

// String renders the expression using the same notation as the original:
// "leaf", "!(expr)", "(lhs && rhs)", "(lhs || rhs)".
func (e Expression[T]) String() string {
	switch e.kind {
	case ExprUnary:
		return e.leaf.String()
	case ExprNot:
		return fmt.Sprintf("!(%s)", e.inner.String())
	case ExprAnd:
		return fmt.Sprintf("(%s && %s)", e.lhs.String(), e.rhs.String())
	case ExprOr:
		return fmt.Sprintf("(%s || %s)", e.lhs.String(), e.rhs.String())
	default:
		return "?"
	}
}
