package transform

import "stylename/internal/helper"

const (
	DefaultAttribute = "styleName"
	DefaultTarget    = "className"
)

type Options struct {
	// Attribute is the attribute that gets folded into Target.
	Attribute string
	Target    string
	Helper    helper.EmitHelper
}

// DefaultOptions rewrites styleName into className with the standard helper.
func DefaultOptions() Options {
	return Options{
		Attribute: DefaultAttribute,
		Target:    DefaultTarget,
		Helper:    helper.StyleNameHelper,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Attribute == "" {
		o.Attribute = d.Attribute
	}
	if o.Target == "" {
		o.Target = d.Target
	}
	if o.Helper.Name == "" {
		o.Helper = d.Helper
	}
	return o
}
