package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/svg-loader/backend/internal/models"
)

func TestValidateDefaults(t *testing.T) {
	assert.NoError(t, Validate(Resolve(models.Options{})))
}

func TestValidateCollectsAllViolations(t *testing.T) {
	s := Resolve(models.Options{
		Size:       models.Ptr(0.0),
		NbRects:    models.Ptr(0),
		MaxOpacity: models.Ptr(0.2),
		MinOpacity: models.Ptr(0.5),
		Margin:     models.Ptr(-1.0),
	})

	err := Validate(s)
	assert.Error(t, err)

	fields := map[string]bool{}
	for _, fe := range FieldErrors(err) {
		fields[fe.Field] = true
	}
	assert.Equal(t, map[string]bool{
		"size":       true,
		"nbRects":    true,
		"maxOpacity": true,
		"margin":     true,
	}, fields)
}

func TestValidateOpacityRange(t *testing.T) {
	err := Validate(Resolve(models.Options{MaxOpacity: models.Ptr(1.5)}))
	fes := FieldErrors(err)
	if assert.Len(t, fes, 1) {
		assert.Equal(t, "maxOpacity", fes[0].Field)
		assert.Equal(t, "maxOpacity: must be within [0, 1]", fes[0].Error())
	}
}
