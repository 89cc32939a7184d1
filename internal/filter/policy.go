package filter

// Policy annotates each field with whether a change applies immediately
// (hot) or waits for an explicit commit (cold).
type Policy struct {
	autoApply map[Field]bool
}

// DefaultPolicy makes time window, video format and the small-channel toggle
// hot, and the view range cold.
func DefaultPolicy() Policy {
	return Policy{autoApply: map[Field]bool{
		FieldTimeWindow:        true,
		FieldVideoFormat:       true,
		FieldSmallChannelsOnly: true,
		FieldViewRange:         false,
	}}
}

// NewPolicy builds a policy where exactly the given fields auto-apply
func NewPolicy(hot ...Field) Policy {
	p := Policy{autoApply: make(map[Field]bool, len(hot))}
	for _, f := range AllFields() {
		p.autoApply[f] = false
	}
	for _, f := range hot {
		p.autoApply[f] = true
	}
	return p
}

// PolicyFromNames builds a policy from configured field names
func PolicyFromNames(names []string) (Policy, error) {
	hot := make([]Field, 0, len(names))
	for _, name := range names {
		f, err := ParseField(name)
		if err != nil {
			return Policy{}, err
		}
		hot = append(hot, f)
	}
	return NewPolicy(hot...), nil
}

// AutoApply reports whether a change to f should re-query without a commit
func (p Policy) AutoApply(f Field) bool {
	if p.autoApply == nil {
		return DefaultPolicy().autoApply[f]
	}
	return p.autoApply[f]
}

// HotFields lists the auto-applying fields in canonical order
func (p Policy) HotFields() []Field {
	var hot []Field
	for _, f := range AllFields() {
		if p.AutoApply(f) {
			hot = append(hot, f)
		}
	}
	return hot
}
