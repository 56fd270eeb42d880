package relation

// Filter selects relations for a buffer view
type Filter func(*Relation) bool

// All accepts every relation
func All() Filter {
	return func(*Relation) bool { return true }
}

// OfType accepts relations with the given edge label or property key
func OfType(t string) Filter {
	return func(r *Relation) bool { return r.Type == t }
}

// OfKind accepts only edges or only properties
func OfKind(k Kind) Filter {
	return func(r *Relation) bool { return r.Kind == k }
}

// IncidentOn accepts relations touching vertex
func IncidentOn(vertex uint64) Filter {
	return func(r *Relation) bool { return r.IsIncidentOn(vertex) }
}

// And accepts relations every filter accepts. No filters accepts everything.
func And(filters ...Filter) Filter {
	return func(r *Relation) bool {
		for _, f := range filters {
			if !f(r) {
				return false
			}
		}
		return true
	}
}

// Or accepts relations any filter accepts
func Or(filters ...Filter) Filter {
	return func(r *Relation) bool {
		for _, f := range filters {
			if f(r) {
				return true
			}
		}
		return false
	}
}

func Not(f Filter) Filter {
	return func(r *Relation) bool { return !f(r) }
}
