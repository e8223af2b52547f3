//go:build !oto

package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayer_Unavailable(t *testing.T) {
	p, err := NewPlayer(NewBeeper())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrUnavailable)
}
