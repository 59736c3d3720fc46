package loader

import (
	"fmt"

	"github.com/svg-loader/backend/internal/models"
)

// Generate returns one shape per rectangle, in index order.
func Generate(s models.Settings) []models.Shape {
	if s.NbRects <= 0 {
		return []models.Shape{}
	}

	shapes := make([]models.Shape, s.NbRects)
	for i := range shapes {
		fi := float64(i)
		shapes[i] = models.Shape{
			Index:       i,
			ID:          ShapeID(i),
			X:           s.Size*fi + fi*s.Margin,
			Y:           0,
			Width:       s.Size,
			Height:      s.Size,
			RX:          s.Radius,
			RY:          s.Radius,
			Fill:        s.Fill,
			FillOpacity: s.MaxOpacity,
			Animation: models.Animation{
				AttributeName: "opacity",
				Values:        []float64{s.MaxOpacity, s.MinOpacity, s.MaxOpacity},
				Begin:         StaggerOffset(i, s.NbRects, s.Duration),
				Dur:           s.Duration,
				RepeatCount:   models.RepeatIndefinite,
			},
		}
	}
	return shapes
}

// StaggerOffset is the animation start delay of shape i, in ms.
//
// The first shape starts at once; shape i starts at duration/((nbRects+1)-i),
// which bunches later shapes towards half a cycle instead of spacing them evenly.
func StaggerOffset(i, nbRects int, duration float64) float64 {
	if i == 0 {
		return 0
	}
	return duration / float64((nbRects+1)-i)
}

// ShapeID is the element id of rectangle i.
func ShapeID(i int) string {
	return fmt.Sprintf("rect-%d", i)
}
