// File: rc/cast.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Converting constructors between related handle types. The block is
// never reinterpreted: only the handle's typed view changes, carried by
// a caller-supplied conversion the compiler checks. The original
// variant's deleter and allocator stay in charge of teardown.

package rc

// As returns a handle sharing ownership of h's object viewed as a U,
// e.g. an embedded field upcast: rc.As(d, func(d *Derived) *Base
// { return &d.Base }). The strong count grows by one. An empty source
// or a nil conversion result yields an empty handle with no count
// change.
func As[U any, T any](h *Shared[T], conv func(*T) *U) *Shared[U] {
	if h == nil || h.ctl == nil {
		return &Shared[U]{}
	}
	u := conv(h.ptr)
	if u == nil {
		return &Shared[U]{}
	}
	h.ctl.retainStrong()
	return &Shared[U]{ctl: h.ctl, ptr: u}
}

// MoveAs transfers h's ownership into a handle viewed as a U and
// empties h. No counter changes. If the conversion yields nil, h is
// left untouched and an empty handle is returned.
func MoveAs[U any, T any](h *Shared[T], conv func(*T) *U) *Shared[U] {
	if h == nil || h.ctl == nil {
		return &Shared[U]{}
	}
	u := conv(h.ptr)
	if u == nil {
		return &Shared[U]{}
	}
	ctl := h.ctl
	h.ctl, h.ptr = nil, nil
	return &Shared[U]{ctl: ctl, ptr: u}
}
