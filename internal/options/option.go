package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID names a single configuration parameter. Flag is the command line name
// and the key under which the value is stored. Name is the name shown over
// the protocol; an empty Name keeps the parameter off the protocol surface.
type ID struct {
	Flag string
	Name string
	Help string
}

type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindChoice
)

// Option is the declared metadata of one parameter: identity, type,
// default and legal domain. Values live in a Dict, not here.
type Option struct {
	ID      ID
	Kind    Kind
	Min     float64
	Max     float64
	Choices []string
	Default any
	hidden  bool
}

// UciString renders the option declaration in protocol form.
func (o *Option) UciString(value any) string {
	switch o.Kind {
	case KindBool:
		return fmt.Sprintf("option name %v type %v default %v",
			o.ID.Name, "check", value)
	case KindInt:
		return fmt.Sprintf("option name %v type %v default %v min %v max %v",
			o.ID.Name, "spin", value, int(o.Min), int(o.Max))
	case KindFloat:
		// Floats have no native protocol type and travel as strings.
		return fmt.Sprintf("option name %v type %v default %v",
			o.ID.Name, "string", value)
	case KindString:
		return fmt.Sprintf("option name %v type %v default %v",
			o.ID.Name, "string", value)
	case KindChoice:
		var sb strings.Builder
		fmt.Fprintf(&sb, "option name %v type %v default %v",
			o.ID.Name, "combo", value)
		for _, choice := range o.Choices {
			fmt.Fprintf(&sb, " var %v", choice)
		}
		return sb.String()
	}
	panic(fmt.Sprintf("option %q has unknown kind %v", o.ID.Flag, o.Kind))
}

// Parse converts a textual value to the option's typed value, enforcing the
// declared domain.
func (o *Option) Parse(s string) (any, error) {
	switch o.Kind {
	case KindBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", o.ID.Flag, err)
		}
		return v, nil
	case KindInt:
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", o.ID.Flag, err)
		}
		if float64(v) < o.Min || float64(v) > o.Max {
			return nil, fmt.Errorf("option %q: argument out of range", o.ID.Flag)
		}
		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", o.ID.Flag, err)
		}
		if v < o.Min || v > o.Max {
			return nil, fmt.Errorf("option %q: argument out of range", o.ID.Flag)
		}
		return v, nil
	case KindString:
		return s, nil
	case KindChoice:
		for _, choice := range o.Choices {
			if strings.EqualFold(choice, s) {
				return choice, nil
			}
		}
		return nil, fmt.Errorf("option %q: %q is not a legal value", o.ID.Flag, s)
	}
	return nil, errors.New("unknown option kind")
}
