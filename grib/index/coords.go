package index

// TimeCoord is a group's time axis. When IsInterval is false, Offsets
// holds one integer forecast-time offset per index; when true, Bounds
// holds one (bounds1, bounds2) pair per index and Offsets is unused.
// Ordering within the slices is the axis order.
type TimeCoord struct {
	Name       string
	Units      string
	IsInterval bool
	Offsets    []int64
	Bounds     [][2]int64
}

// Size returns the axis length, the same value whether the coord is an
// interval or an instant coord.
func (tc *TimeCoord) Size() int {
	if tc == nil {
		return 1
	}
	if tc.IsInterval {
		return len(tc.Bounds)
	}
	return len(tc.Offsets)
}

// Level is one vertical coordinate value. Value2 is only meaningful when
// the owning VertCoord.IsLayer is true.
type Level struct {
	Value1 float64
	Value2 float64
}

// VertCoord is a group's vertical axis.
type VertCoord struct {
	LevelCode  int
	IsLayer    bool
	Levels     []Level
	Name       string
	Units      string
	PositiveUp bool
	Datum      string // "" if absent
}

func (vc *VertCoord) Size() int {
	if vc == nil {
		return 1
	}
	return len(vc.Levels)
}

// EnsCoord is a group's ensemble axis: a sequence of member ids.
type EnsCoord struct {
	Members []int
}

func (ec *EnsCoord) Size() int {
	if ec == nil {
		return 1
	}
	return len(ec.Members)
}
