package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	rerr "github.com/msto63/relativity/foundation/core/error"
)

func sample() Block {
	b := Block{Title: "Twin paradox"}
	b.Add("Earth time", "10", "years").
		Add("Traveler time", "6 (r)", "years").
		Add("Lorentz factor", "1.67 (r)", "").
		Note("turnaround is instantaneous")
	return b
}

func TestRender_Plain(t *testing.T) {
	out := NewRenderer(true).Render(sample())

	want := "Twin paradox\n" +
		"Earth time:     10 years\n" +
		"Traveler time:  6 (r) years\n" +
		"Lorentz factor: 1.67 (r)\n" +
		"turnaround is instantaneous\n"
	assert.Equal(t, want, out)
}

func TestRender_Styled(t *testing.T) {
	out := NewRenderer(false).Render(sample())

	for _, s := range []string{"Twin paradox", "Earth time:", "10", "years", "(r)", "turnaround is instantaneous"} {
		assert.Contains(t, out, s)
	}
	assert.Greater(t, strings.Count(out, "\n"), 5, "rows render on separate lines inside a panel")
}

func TestRender_EmptyBlock(t *testing.T) {
	assert.Equal(t, "", NewRenderer(true).Render(Block{}))
}

func TestRenderError(t *testing.T) {
	err := rerr.New("velocity must be less than the speed of light").WithCode(rerr.CodeVelocityExceedsC)

	assert.Equal(t,
		"error [VELOCITY_EXCEEDS_C]: velocity must be less than the speed of light\n",
		NewRenderer(true).RenderError(err))

	styled := NewRenderer(false).RenderError(err)
	assert.Contains(t, styled, "VELOCITY_EXCEEDS_C")

	assert.Contains(t, NewRenderer(true).RenderError(errors.New("plain")), "[UNKNOWN]")
}
