package sheaf

// Overrides temporarily changes option values of a Section.
//
// An Overrides is reusable but not reentrant: calling Enter twice before Exit
// replaces the captured values with the overridden ones, so the later Exit
// no longer restores the original state.
type Overrides struct {
	section *Section
	values  map[string]any
	old     map[string]any
}

// Override prepares a scoped override of the given options.
func (s *Section) Override(values map[string]any) *Overrides {
	return &Overrides{section: s, values: values}
}

// Enter captures the current values of the overridden options and applies
// the overrides.
func (o *Overrides) Enter() error {
	o.old = nil
	old := make(map[string]any, len(o.values))
	for name := range o.values {
		v, err := o.section.Get(name)
		if err != nil {
			return err
		}
		old[name] = v
	}
	o.old = old
	return o.section.Update(o.values, false)
}

// Exit restores the values captured by the last Enter verbatim.
func (o *Overrides) Exit() {
	for name, v := range o.old {
		o.section.values[name] = v
	}
}

// With runs fn with values applied to the section and restores the previous
// values afterwards, including when fn fails or panics.
func (s *Section) With(values map[string]any, fn func() error) error {
	o := s.Override(values)
	if err := o.Enter(); err != nil {
		o.Exit()
		return err
	}
	defer o.Exit()
	return fn()
}
