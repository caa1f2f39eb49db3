package scrollfx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// ErrUnknownEase is returned by ParseEase for an unrecognized name.
var ErrUnknownEase = errors.New("scrollfx: unknown ease")

type easeFamily struct {
	in, out, inOut ease.TweenFunc
}

var easeFamilies = map[string]easeFamily{
	"quad":    {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"cubic":   {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"quart":   {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"quint":   {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"sine":    {ease.InSine, ease.OutSine, ease.InOutSine},
	"expo":    {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	"circ":    {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	"elastic": {ease.InElastic, ease.OutElastic, ease.InOutElastic},
	"back":    {ease.InBack, ease.OutBack, ease.InOutBack},
	"bounce":  {ease.InBounce, ease.OutBounce, ease.InOutBounce},
	// powerN names count from a quadratic curve.
	"power1": {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"power2": {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"power3": {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"power4": {ease.InQuint, ease.OutQuint, ease.InOutQuint},
}

// ParseEase resolves an easing curve by name. Both "outCubic" style names and
// dotted "power2.out" / "cubic.inOut" names are accepted; a bare family name
// means its "out" variant. An empty name returns nil, which controllers
// replace with their default.
func ParseEase(name string) (ease.TweenFunc, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "":
		return nil, nil
	case "linear", "none":
		return ease.Linear, nil
	}
	family, variant := n, "out"
	if i := strings.IndexByte(n, '.'); i >= 0 {
		family, variant = n[:i], n[i+1:]
	} else {
		for _, v := range [...]string{"inout", "in", "out"} {
			if rest, ok := strings.CutPrefix(n, v); ok && rest != "" {
				if _, known := easeFamilies[rest]; known {
					family, variant = rest, v
					break
				}
			}
		}
	}
	f, ok := easeFamilies[family]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEase, name)
	}
	switch variant {
	case "in":
		return f.in, nil
	case "out":
		return f.out, nil
	case "inout":
		return f.inOut, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEase, name)
}
