package server

import (
	"strings"

	"github.com/truora/dynamite/attribute"
)

// MatcherFunc decides a write condition from the item currently stored
// under the written key. item is nil when no item is stored.
type MatcherFunc func(item attribute.Map) bool

func matcherKey(tableName, expression string) string {
	return tableName + "|" + strings.Join(strings.Fields(expression), " ")
}

// AddConditionMatcher evaluates expression on tableName with matcher
// instead of the condition language. Expressions are compared after
// collapsing whitespace.
func (s *Store) AddConditionMatcher(tableName, expression string, matcher MatcherFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matchers[matcherKey(tableName, expression)] = matcher
}

// AddConditionMatcher registers a native condition matcher on the store.
func (s *Server) AddConditionMatcher(tableName, expression string, matcher MatcherFunc) {
	s.store.AddConditionMatcher(tableName, expression, matcher)
}
