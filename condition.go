package dynamite

import "strings"

// Condition is a ConditionExpression sent verbatim with a write. Attribute
// names are not escaped.
type Condition struct {
	expr string
}

// AttributeExists requires the attribute to be present.
func AttributeExists(name string) Condition {
	return Condition{expr: "attribute_exists(" + name + ")"}
}

// AttributeNotExists requires the attribute to be absent.
func AttributeNotExists(name string) Condition {
	return Condition{expr: "attribute_not_exists(" + name + ")"}
}

// And holds when every condition holds.
func And(first, second Condition, rest ...Condition) Condition {
	return join("AND", append([]Condition{first, second}, rest...))
}

// Or holds when any condition holds.
func Or(first, second Condition, rest ...Condition) Condition {
	return join("OR", append([]Condition{first, second}, rest...))
}

// Not negates c.
func Not(c Condition) Condition {
	return Condition{expr: "NOT (" + c.expr + ")"}
}

func join(op string, conds []Condition) Condition {
	parts := make([]string, 0, len(conds))

	for _, c := range conds {
		if !c.IsZero() {
			parts = append(parts, c.expr)
		}
	}

	if len(parts) == 1 {
		return Condition{expr: parts[0]}
	}

	for i := range parts {
		parts[i] = "(" + parts[i] + ")"
	}

	return Condition{expr: strings.Join(parts, " "+op+" ")}
}

// IsZero reports whether the condition is empty.
func (c Condition) IsZero() bool {
	return c.expr == ""
}

func (c Condition) String() string {
	return c.expr
}
