package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/svg-loader/backend/internal/models"
)

func TestResolveDefaults(t *testing.T) {
	s := Resolve(models.Options{})

	assert.Equal(t, DefaultOptions(), s.Config)
	assert.Equal(t, "loader-container", s.ContainerID)
	assert.Equal(t, "loader", s.SVGID)
	assert.Equal(t, "#000000", s.Fill)
	assert.Equal(t, 3, s.NbRects)
	assert.Equal(t, 49.0, s.Width) // 15*3 + 2*2
}

func TestResolveOverridesOnlyGivenFields(t *testing.T) {
	s := Resolve(models.Options{
		Fill:    models.Ptr("#ff0000"),
		NbRects: models.Ptr(5),
		Margin:  models.Ptr(0.0),
	})

	assert.Equal(t, "#ff0000", s.Fill)
	assert.Equal(t, 5, s.NbRects)
	assert.Equal(t, 0.0, s.Margin)
	assert.Equal(t, 15.0, s.Size)
	assert.Equal(t, 1000.0, s.Duration)
	assert.Equal(t, 75.0, s.Width)
}

func TestResolvePassesOutOfRangeValuesThrough(t *testing.T) {
	s := Resolve(models.Options{
		Size:       models.Ptr(-4.0),
		NbRects:    models.Ptr(0),
		MaxOpacity: models.Ptr(0.1),
		MinOpacity: models.Ptr(0.9),
	})

	assert.Equal(t, -4.0, s.Size)
	assert.Equal(t, 0, s.NbRects)
	assert.Equal(t, 0.1, s.MaxOpacity)
	assert.Equal(t, 0.9, s.MinOpacity)
	assert.Equal(t, -2.0, s.Width) // 0 shapes, -1 margin
}

func TestWidth(t *testing.T) {
	tests := []struct {
		size, margin float64
		n            int
		want         float64
	}{
		{15, 2, 3, 49},
		{15, 2, 1, 15},
		{10, 0, 4, 40},
		{7.5, 1.25, 2, 16.25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Width(tt.size, tt.margin, tt.n))
		assert.Equal(t, tt.want, tt.size*float64(tt.n)+tt.margin*float64(tt.n-1))
	}
}

func TestDefaultOptionsIsACopy(t *testing.T) {
	d := DefaultOptions()
	d.Fill = "#123456"
	d.NbRects = 99

	s := Resolve(models.Options{})
	s.Size = 100

	assert.Equal(t, "#000000", DefaultOptions().Fill)
	assert.Equal(t, 3, DefaultOptions().NbRects)
	assert.Equal(t, 15.0, DefaultOptions().Size)
}
