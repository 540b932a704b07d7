package starfield

import (
	"errors"
	"image/color"
)

// ErrSurfaceUnavailable is returned by Attach when the surface cannot
// produce a 2D drawing context.
var ErrSurfaceUnavailable = errors.New("starfield: surface has no 2d context")

// Context is the 2D drawing context a Surface hands out.
type Context interface {
	Clear()
	SetAntiAlias(on bool)
	FillCircle(cx, cy, r float64, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
}

// Surface is a drawable owned by the host.
type Surface interface {
	Context() (Context, error)
	Resize(w, h int)
	Size() (w, h int)
}

// FrameID identifies a pending frame request.
type FrameID uint64

// Host provides the display-refresh scheduler and the geometry signals
// of the environment the field lives in.
type Host interface {
	// RequestFrame schedules fn to run once on the next display refresh.
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)

	ViewportSize() (w, h int)
	// ContentHeight is the total scrollable height of the page.
	ContentHeight() int

	OnResize(fn func()) (detach func())
	OnContentResize(fn func()) (detach func())
}
