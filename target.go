package scrollfx

import "sync/atomic"

// targetIDCounter is shared by every stage in the process; stages may run on
// separate goroutines.
var targetIDCounter atomic.Uint32

func nextTargetID() uint32 {
	return targetIDCounter.Add(1)
}

// Target is one renderable page element: its layout geometry plus the visual
// properties the orchestration layer animates. A Target is owned by at most
// one controller for the properties that controller writes.
type Target struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Target
	children []*Target

	// Bounds is the layout rectangle in document coordinates. Animated
	// properties never change it, so region geometry stays stable while the
	// element is pinned or translated.
	Bounds Rect

	// Animated properties
	Opacity    float64
	OffsetY    float64
	TranslateY float64
	Scale      float64
	Blur       float64
	Rotation   float64

	// Color tints the element when drawn by Stage.Draw.
	Color Color
	// Visible hides the element and its subtree from drawing.
	Visible bool

	// Metadata
	UserData any

	pinned     bool
	pinScreenY float64

	writes   uint64
	disposed bool
}

// NewTarget creates a target with the given layout rectangle and neutral
// visual state (opaque, unscaled, untranslated).
func NewTarget(name string, bounds Rect) *Target {
	return &Target{
		ID:      nextTargetID(),
		Name:    name,
		Bounds:  bounds,
		Opacity: 1,
		Scale:   1,
		Color:   ColorWhite,
		Visible: true,
	}
}

// Get returns the current value of a property.
func (t *Target) Get(p Prop) float64 {
	switch p {
	case PropOpacity:
		return t.Opacity
	case PropOffsetY:
		return t.OffsetY
	case PropTranslateY:
		return t.TranslateY
	case PropScale:
		return t.Scale
	case PropBlur:
		return t.Blur
	case PropRotation:
		return t.Rotation
	}
	return 0
}

func (t *Target) set(p Prop, v float64) {
	switch p {
	case PropOpacity:
		t.Opacity = v
	case PropOffsetY:
		t.OffsetY = v
	case PropTranslateY:
		t.TranslateY = v
	case PropScale:
		t.Scale = v
	case PropBlur:
		t.Blur = v
	case PropRotation:
		t.Rotation = v
	}
}

// Props returns every property of the target as a full property set.
func (t *Target) Props() Props {
	var p Props
	for i := Prop(0); i < numProps; i++ {
		p = p.With(i, t.Get(i))
	}
	return p
}

// Apply writes every property present in props. Writes to a disposed target
// are discarded and return false.
func (t *Target) Apply(props Props) bool {
	if t.disposed {
		return false
	}
	for i := Prop(0); i < numProps; i++ {
		if props.Has(i) {
			t.set(i, props.vals[i])
		}
	}
	t.writes++
	return true
}

// Writes returns how many times Apply has modified this target.
func (t *Target) Writes() uint64 {
	return t.writes
}

// Pinned reports whether the target is currently held fixed in the viewport.
func (t *Target) Pinned() bool {
	return t.pinned
}

// PinnedScreenY returns the viewport-relative Y the target is held at while
// pinned.
func (t *Target) PinnedScreenY() float64 {
	return t.pinScreenY
}

func (t *Target) pin(screenY float64) {
	t.pinned = true
	t.pinScreenY = screenY
}

func (t *Target) unpin() {
	if !t.pinned {
		return
	}
	t.pinned = false
	t.pinScreenY = 0
}

// ScreenY returns the top edge of the target in viewport coordinates for the
// given scroll position, before animated offsets are applied.
func (t *Target) ScreenY(scrollY float64) float64 {
	if t.pinned {
		return t.pinScreenY
	}
	return t.Bounds.Y - scrollY
}

// --- Tree manipulation ---

// AddChild appends child to this target's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this target (cycle).
func (t *Target) AddChild(child *Target) {
	if child == nil {
		panic("scrollfx: cannot add nil child")
	}
	if isAncestor(child, t) {
		panic("scrollfx: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = t
	t.children = append(t.children, child)
}

// RemoveChild detaches child from this target.
// Panics if child.Parent != t.
func (t *Target) RemoveChild(child *Target) {
	if child.Parent != t {
		panic("scrollfx: child's parent is not this target")
	}
	t.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this target from its parent.
// No-op if this target has no parent.
func (t *Target) RemoveFromParent() {
	if t.Parent == nil {
		return
	}
	t.Parent.RemoveChild(t)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (t *Target) Children() []*Target {
	return t.children
}

// NumChildren returns the number of children.
func (t *Target) NumChildren() int {
	return len(t.children)
}

// Find returns the first target named name in this subtree, depth first,
// or nil.
func (t *Target) Find(name string) *Target {
	if t.Name == name {
		return t
	}
	for _, c := range t.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this target from its parent, marks it as disposed, and
// recursively disposes all descendants. A disposed target models an element
// that no longer exists: controllers never write to it again.
func (t *Target) Dispose() {
	if t.disposed {
		return
	}
	t.RemoveFromParent()
	t.dispose()
}

func (t *Target) dispose() {
	t.disposed = true
	t.pinned = false
	for _, child := range t.children {
		child.Parent = nil
		child.dispose()
	}
	t.children = nil
	t.Parent = nil
	t.UserData = nil
}

// IsDisposed returns true if this target has been disposed.
func (t *Target) IsDisposed() bool {
	return t.disposed
}

// isAncestor reports whether candidate is an ancestor of target (or target itself).
func isAncestor(candidate, target *Target) bool {
	for p := target; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from t.children without clearing child.Parent.
func (t *Target) removeChildByPtr(child *Target) {
	for i, c := range t.children {
		if c == child {
			copy(t.children[i:], t.children[i+1:])
			t.children[len(t.children)-1] = nil
			t.children = t.children[:len(t.children)-1]
			return
		}
	}
}

// alive reports whether a controller may still write to t.
func alive(t *Target) bool {
	return t != nil && !t.disposed
}

func targetName(t *Target) string {
	if t == nil {
		return ""
	}
	return t.Name
}
