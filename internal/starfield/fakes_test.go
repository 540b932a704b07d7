package starfield

import (
	"image/color"
	"sort"
)

type drawCall struct {
	kind       string
	x, y, w, h float64
	c          color.NRGBA
}

type fakeContext struct {
	clears    int
	antiAlias bool
	calls     []drawCall
}

func (c *fakeContext) Clear() {
	c.clears++
	c.calls = c.calls[:0]
}

func (c *fakeContext) SetAntiAlias(on bool) { c.antiAlias = on }

func (c *fakeContext) FillCircle(cx, cy, r float64, col color.Color) {
	c.calls = append(c.calls, drawCall{kind: "circle", x: cx, y: cy, w: r, h: r, c: toNRGBA(col)})
}

func (c *fakeContext) FillRect(x, y, w, h float64, col color.Color) {
	c.calls = append(c.calls, drawCall{kind: "rect", x: x, y: y, w: w, h: h, c: toNRGBA(col)})
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

type fakeSurface struct {
	ctx     *fakeContext
	err     error
	w, h    int
	resizes int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{ctx: &fakeContext{}}
}

func (s *fakeSurface) Context() (Context, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ctx, nil
}

func (s *fakeSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

// fakeHost runs frames only when the test calls advance.
type fakeHost struct {
	w, h, content int

	nextFrame FrameID
	frames    map[FrameID]func()

	nextListener  int
	resize        map[int]func()
	contentResize map[int]func()
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{
		w:             w,
		h:             h,
		frames:        map[FrameID]func(){},
		resize:        map[int]func(){},
		contentResize: map[int]func(){},
	}
}

func (h *fakeHost) RequestFrame(fn func()) FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	return h.nextFrame
}

func (h *fakeHost) CancelFrame(id FrameID) { delete(h.frames, id) }

func (h *fakeHost) ViewportSize() (int, int) { return h.w, h.h }

func (h *fakeHost) ContentHeight() int { return h.content }

func (h *fakeHost) OnResize(fn func()) func() {
	return h.listen(h.resize, fn)
}

func (h *fakeHost) OnContentResize(fn func()) func() {
	return h.listen(h.contentResize, fn)
}

func (h *fakeHost) listen(set map[int]func(), fn func()) func() {
	h.nextListener++
	id := h.nextListener
	set[id] = fn
	return func() { delete(set, id) }
}

// advance runs the frames pending at call time, n times over.
func (h *fakeHost) advance(n int) {
	for i := 0; i < n; i++ {
		ids := make([]FrameID, 0, len(h.frames))
		for id := range h.frames {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
		for _, id := range ids {
			fn := h.frames[id]
			delete(h.frames, id)
			fn()
		}
	}
}

func (h *fakeHost) setViewport(w, hh int) {
	h.w, h.h = w, hh
	for _, fn := range h.resize {
		fn()
	}
}

func (h *fakeHost) setContent(height int) {
	h.content = height
	for _, fn := range h.contentResize {
		fn()
	}
}

func (h *fakeHost) listeners() int { return len(h.resize) + len(h.contentResize) }

// sequence returns vals in order, then keeps returning the last one.
func sequence(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}
