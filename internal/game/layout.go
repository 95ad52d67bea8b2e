package game

import (
	"errors"
	"fmt"
)

// VesselSpec is the serialisable form of a placed vessel.
type VesselSpec struct {
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Length      int         `json:"length"`
	Orientation Orientation `json:"orientation"`
}

// Layout is the serialisable form of a placed fleet.
type Layout struct {
	Size    int          `json:"size"`
	Vessels []VesselSpec `json:"vessels"`
}

// Layout returns the fleet of g in placement order.
func (g *Grid) Layout() Layout {
	l := Layout{Size: g.size, Vessels: make([]VesselSpec, 0, len(g.vessels))}
	for _, v := range g.vessels {
		l.Vessels = append(l.Vessels, VesselSpec{
			Row:         v.Bow.Row,
			Col:         v.Bow.Col,
			Length:      v.Length,
			Orientation: v.Orientation,
		})
	}
	return l
}

// GridFromLayout rebuilds a board ready for play. Vessels go through
// PlaceVessel, so spacing rules hold for loaded boards too.
func GridFromLayout(l Layout) (*Grid, error) {
	if l.Size <= 0 {
		return nil, errors.New("layout size must be positive")
	}
	if l.Size > MaxSize {
		return nil, fmt.Errorf("layout size %d exceeds %d", l.Size, MaxSize)
	}
	g := NewGrid(l.Size)
	for i, s := range l.Vessels {
		if s.Length <= 0 {
			return nil, fmt.Errorf("vessel %d: length must be positive", i)
		}
		if s.Orientation != Horizontal && s.Orientation != Vertical {
			return nil, fmt.Errorf("vessel %d: unknown %s", i, s.Orientation)
		}
		if err := g.PlaceVessel(NewVessel(At(s.Row, s.Col), s.Length, s.Orientation)); err != nil {
			return nil, fmt.Errorf("vessel %d: %w", i, err)
		}
	}
	g.ResetTargetingMemory()
	return g, nil
}
