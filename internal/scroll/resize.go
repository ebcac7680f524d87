package scroll

import (
	"image"

	"github.com/zjrosen/scrollview/internal/log"
)

// Resizing runs before the host commits a new outer size. Bars that the new size will
// not need are hidden now; hiding them after the resize would change the client area
// again and feed back into another resize. Syncs the host triggers from inside
// Resizing are dropped, since they would measure against the old outer size.
func (v *View) Resizing(outer image.Point) error {
	v.resizing = true
	defer func() { v.resizing = false }()

	client := outer.Sub(v.host.Decoration())
	log.Debug(log.CatResize, "resizing", "view", v.id, "outer", outer, "client", client)

	if client.X >= v.state.Total.X {
		if err := v.host.ShowBar(AxisH, false); err != nil {
			return hostErr("hide horizontal scrollbar", err)
		}
	}
	if client.Y >= v.state.Total.Y {
		if err := v.host.ShowBar(AxisV, false); err != nil {
			return hostErr("hide vertical scrollbar", err)
		}
	}
	return nil
}

// Resized runs after the host committed a new size.
func (v *View) Resized() error {
	if err := v.Sync(); err != nil {
		return err
	}
	v.host.Invalidate()
	return nil
}
