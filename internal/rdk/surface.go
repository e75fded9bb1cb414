package rdk

import "image/color"

// Surface is the drawing capability a trial renders into.
type Surface interface {
	// Clear fills the whole surface with bg.
	Clear(bg color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA)
	StrokeRect(x, y, w, h, width float64, c color.RGBA)
	StrokeEllipse(cx, cy, rx, ry, width float64, c color.RGBA)
}

// Op is one recorded drawing call.
type Op struct {
	Name  string
	Args  []float64
	Color color.RGBA
}

// Recorder is a Surface that keeps the calls made since the last Clear. It
// backs headless runs and tests.
type Recorder struct {
	Frames     int
	Background color.RGBA
	Ops        []Op
}

func (r *Recorder) Clear(bg color.RGBA) {
	r.Frames++
	r.Background = bg
	r.Ops = r.Ops[:0]
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Name: "FillCircle", Args: []float64{cx, cy, radius}, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Name: "FillRect", Args: []float64{x, y, w, h}, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Name: "StrokeLine", Args: []float64{x0, y0, x1, y1, width}, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Name: "StrokeRect", Args: []float64{x, y, w, h, width}, Color: c})
}

func (r *Recorder) StrokeEllipse(cx, cy, rx, ry, width float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Name: "StrokeEllipse", Args: []float64{cx, cy, rx, ry, width}, Color: c})
}

// Count returns how many recorded ops are named name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}
