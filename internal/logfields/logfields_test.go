package logfields

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelpers(t *testing.T) {
	assert.Equal(t, "version", Version("1.0").Key)
	assert.Equal(t, "Titanium.UI.View", Type("Titanium.UI.View").Value.String())
	assert.Equal(t, "properties", Kind("properties").Value.String())
	assert.InDelta(t, 1.5, Duration(1500*time.Microsecond).Value.Float64(), 0.0001)
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Empty(t, Error(nil).Value.String())
}
