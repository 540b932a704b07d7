package game

import "github.com/iburimskiy/starfield/internal/starfield"

type pendingFrame struct {
	id starfield.FrameID
	fn func()
}

type listener struct {
	id int
	fn func()
}

// host is the page environment the field runs in. Frames requested during
// a refresh run on the next one, so the field's self-rescheduling loop
// advances exactly once per Update.
type host struct {
	viewportW, viewportH int
	contentH             int

	nextFrame starfield.FrameID
	pending   []pendingFrame

	nextListener  int
	resize        []listener
	contentResize []listener
}

// newHost starts with a document exactly one viewport tall.
func newHost(w, h int) *host {
	return &host{viewportW: w, viewportH: h, contentH: h}
}

func (h *host) RequestFrame(fn func()) starfield.FrameID {
	h.nextFrame++
	h.pending = append(h.pending, pendingFrame{id: h.nextFrame, fn: fn})
	return h.nextFrame
}

func (h *host) CancelFrame(id starfield.FrameID) {
	for i, p := range h.pending {
		if p.id == id {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return
		}
	}
}

func (h *host) ViewportSize() (int, int) { return h.viewportW, h.viewportH }

func (h *host) ContentHeight() int { return h.contentH }

func (h *host) OnResize(fn func()) func() {
	return h.listen(&h.resize, fn)
}

func (h *host) OnContentResize(fn func()) func() {
	return h.listen(&h.contentResize, fn)
}

func (h *host) listen(set *[]listener, fn func()) func() {
	h.nextListener++
	id := h.nextListener
	*set = append(*set, listener{id: id, fn: fn})
	return func() {
		for i, l := range *set {
			if l.id == id {
				*set = append((*set)[:i], (*set)[i+1:]...)
				return
			}
		}
	}
}

// runFrames runs the frames that were pending when the refresh began.
func (h *host) runFrames() int {
	due := h.pending
	h.pending = nil
	for _, p := range due {
		p.fn()
	}
	return len(due)
}

// setGeometry records the viewport and content sizes and fires one
// notification: resize when the viewport moved, content resize when only
// the content height did.
func (h *host) setGeometry(w, hh, content int) {
	viewportChanged := w != h.viewportW || hh != h.viewportH
	contentChanged := content != h.contentH
	h.viewportW, h.viewportH, h.contentH = w, hh, content

	switch {
	case viewportChanged:
		notify(h.resize)
	case contentChanged:
		notify(h.contentResize)
	}
}

func notify(set []listener) {
	// a listener may detach itself
	fns := make([]func(), len(set))
	for i, l := range set {
		fns[i] = l.fn
	}
	for _, fn := range fns {
		fn()
	}
}

func (h *host) pendingFrames() int { return len(h.pending) }

func (h *host) listeners() int { return len(h.resize) + len(h.contentResize) }
