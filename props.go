package scrollfx

import (
	"fmt"
	"strings"
)

// Prop names one animatable visual property of a Target.
type Prop uint8

const (
	PropOpacity    Prop = iota // 0 transparent .. 1 opaque
	PropOffsetY                // vertical offset in pixels
	PropTranslateY             // vertical offset in percent of the target's height
	PropScale                  // uniform scale around the target's center
	PropBlur                   // blur radius in pixels
	PropRotation               // rotation in degrees, clockwise
	numProps
)

var propNames = [numProps]string{"opacity", "offsetY", "translateY", "scale", "blur", "rotation"}

// String returns the property's manifest name.
func (p Prop) String() string {
	if p < numProps {
		return propNames[p]
	}
	return fmt.Sprintf("Prop(%d)", uint8(p))
}

// ParseProp resolves a manifest property name. Matching is case-insensitive;
// "y" is accepted for offsetY and "yPercent" for translateY.
func ParseProp(name string) (Prop, error) {
	switch strings.ToLower(name) {
	case "opacity", "alpha":
		return PropOpacity, nil
	case "offsety", "y":
		return PropOffsetY, nil
	case "translatey", "ypercent":
		return PropTranslateY, nil
	case "scale":
		return PropScale, nil
	case "blur":
		return PropBlur, nil
	case "rotation", "rotate":
		return PropRotation, nil
	}
	return 0, fmt.Errorf("scrollfx: unknown property %q", name)
}

// Props is a sparse property set: a value per Prop plus a presence mask.
// It is a plain value; copying it never allocates.
type Props struct {
	vals [numProps]float64
	mask uint8
}

// With returns a copy of p with prop set to v.
func (p Props) With(prop Prop, v float64) Props {
	p.vals[prop] = v
	p.mask |= 1 << prop
	return p
}

// Get returns the value of prop and whether it is present.
func (p Props) Get(prop Prop) (float64, bool) {
	if !p.Has(prop) {
		return 0, false
	}
	return p.vals[prop], true
}

// Value returns the value of prop, or 0 if absent.
func (p Props) Value(prop Prop) float64 {
	return p.vals[prop]
}

// Has reports whether prop is present.
func (p Props) Has(prop Prop) bool {
	return p.mask&(1<<prop) != 0
}

// Len returns the number of present properties.
func (p Props) Len() int {
	n := 0
	for m := p.mask; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// Merge returns p overlaid with every property present in o.
func (p Props) Merge(o Props) Props {
	for i := Prop(0); i < numProps; i++ {
		if o.Has(i) {
			p = p.With(i, o.vals[i])
		}
	}
	return p
}

// String formats the present properties in declaration order.
func (p Props) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i := Prop(0); i < numProps; i++ {
		if !p.Has(i) {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %g", i, p.vals[i])
	}
	b.WriteByte('}')
	return b.String()
}

// PropsFromMap builds a Props from manifest-style names.
func PropsFromMap(m map[string]float64) (Props, error) {
	var p Props
	for name, v := range m {
		prop, err := ParseProp(name)
		if err != nil {
			return Props{}, err
		}
		p = p.With(prop, v)
	}
	return p, nil
}
