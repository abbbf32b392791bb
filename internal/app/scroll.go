package app

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const scrollFrame = 16 * time.Millisecond

type scrollTickMsg struct {
	id int
}

// swing eases p in [0,1] with a half cosine.
func swing(p float64) float64 {
	return 0.5 - math.Cos(p*math.Pi)/2
}

// Scroller animates a viewport's Y offset. Starting a new animation
// supersedes the running one; its pending ticks are ignored.
type Scroller struct {
	Margin   int
	Duration time.Duration

	now    func() time.Time
	id     int
	from   int
	to     int
	start  time.Time
	active bool
}

// NewScroller returns a scroller keeping margin lines above the target.
func NewScroller(margin int, duration time.Duration) *Scroller {
	return &Scroller{Margin: margin, Duration: duration, now: time.Now}
}

// Animating reports whether an animation is running.
func (s *Scroller) Animating() bool {
	return s.active
}

// Target returns the offset of the running or last animation.
func (s *Scroller) Target() int {
	return s.to
}

// TargetForLine returns the offset that puts line Margin lines below the top.
func (s *Scroller) TargetForLine(line int) int {
	return max(0, line-s.Margin)
}

// AnimateTo starts moving vp towards offset.
func (s *Scroller) AnimateTo(vp *viewport.Model, offset int) tea.Cmd {
	s.id++
	s.from = vp.YOffset
	s.to = max(0, offset)
	s.start = s.now()

	if s.Duration <= 0 || s.from == s.to {
		vp.SetYOffset(s.to)
		s.active = false
		return nil
	}
	s.active = true
	return s.tick()
}

func (s *Scroller) tick() tea.Cmd {
	id := s.id
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg {
		return scrollTickMsg{id: id}
	})
}

// Step advances the animation for msg. Ticks of superseded animations are
// dropped.
func (s *Scroller) Step(vp *viewport.Model, msg scrollTickMsg) tea.Cmd {
	if msg.id != s.id || !s.active {
		return nil
	}
	p := float64(s.now().Sub(s.start)) / float64(s.Duration)
	if p >= 1 {
		vp.SetYOffset(s.to)
		s.active = false
		return nil
	}
	if p < 0 {
		p = 0
	}
	offset := s.from + int(math.Round(float64(s.to-s.from)*swing(p)))
	vp.SetYOffset(offset)
	return s.tick()
}
