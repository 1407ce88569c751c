package grammar

import (
	"strings"
)

type StateID int

const StateIDInitial = StateID(0)

func (id StateID) Int() int {
	return int(id)
}

// stateArena interns state identities. The identity of a state is the
// sequence of symbols leading to it from the initial state; every state keeps
// only its parent and the last symbol.
type stateArena struct {
	parents []StateID
	symbols []string
}

func newStateArena() *stateArena {
	return &stateArena{
		parents: []StateID{-1},
		symbols: []string{""},
	}
}

func (a *stateArena) intern(parent StateID, sym string) StateID {
	a.parents = append(a.parents, parent)
	a.symbols = append(a.symbols, sym)
	return StateID(len(a.parents) - 1)
}

func (a *stateArena) path(id StateID) []string {
	var path []string
	for ; id > StateIDInitial; id = a.parents[id] {
		path = append(path, a.symbols[id])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// name renders an identity like `(E, +, T)`. The initial state is `()`.
func (a *stateArena) name(id StateID) string {
	return "(" + strings.Join(a.path(id), ", ") + ")"
}

// closureIndex finds the earliest state whose closure contains a set of
// items.
type closureIndex struct {
	holders map[Item][]StateID
}

func newClosureIndex() *closureIndex {
	return &closureIndex{
		holders: map[Item][]StateID{},
	}
}

// register must be called in ascending order of state IDs.
func (x *closureIndex) register(id StateID, c *closure) {
	for _, item := range c.items {
		x.holders[item] = append(x.holders[item], id)
	}
}

func (x *closureIndex) findSuperset(goal []Item) (StateID, bool) {
	var cands []StateID
	for n, item := range goal {
		holders, ok := x.holders[item]
		if !ok {
			return 0, false
		}
		if n == 0 {
			cands = holders
			continue
		}
		cands = intersectStateIDs(cands, holders)
		if len(cands) == 0 {
			return 0, false
		}
	}
	if len(cands) == 0 {
		return 0, false
	}
	return cands[0], true
}

func intersectStateIDs(a, b []StateID) []StateID {
	var res []StateID
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			res = append(res, a[i])
			i++
			j++
		}
	}
	return res
}
