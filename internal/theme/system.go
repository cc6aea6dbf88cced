package theme

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/zjrosen/wayfarer/internal/log"
)

// SystemPreference reports the environment's preferred mode. ok is false
// when there is no preference.
type SystemPreference interface {
	Mode() (mode Mode, ok bool)
}

// StaticPreference is a fixed preference, typically from config
// theme.system. The zero value reports no preference.
type StaticPreference struct {
	mode Mode
}

// NewStaticPreference parses s. Anything other than light or dark (such as
// "auto" or "") yields no preference.
func NewStaticPreference(s string) StaticPreference {
	m, err := ParseMode(s)
	if err != nil {
		return StaticPreference{}
	}
	return StaticPreference{mode: m}
}

func (p StaticPreference) Mode() (Mode, bool) {
	return p.mode, p.mode.Valid()
}

// TerminalPreference derives the mode from the terminal background color.
// The terminal is queried once. A terminal that does not report its
// background gives no preference.
type TerminalPreference struct {
	out *termenv.Output
	env termenv.Environ

	once sync.Once
	mode Mode
	ok   bool
}

// NewTerminalPreference probes w, usually os.Stdout.
func NewTerminalPreference(w io.Writer) *TerminalPreference {
	return newTerminalPreference(w, osEnv{})
}

func newTerminalPreference(w io.Writer, env termenv.Environ, opts ...termenv.OutputOption) *TerminalPreference {
	opts = append([]termenv.OutputOption{termenv.WithEnvironment(env)}, opts...)
	return &TerminalPreference{out: termenv.NewOutput(w, opts...), env: env}
}

func (p *TerminalPreference) Mode() (Mode, bool) {
	p.once.Do(func() {
		if p.out.Profile == termenv.Ascii {
			log.Debug(log.CatTheme, "terminal has no color support, no system preference")
			return
		}
		bg, ok := p.background()
		if !ok {
			log.Debug(log.CatTheme, "terminal did not report its background, no system preference")
			return
		}
		p.ok = true
		p.mode = Light
		if _, _, l := termenv.ConvertToRGB(bg).Hsl(); l < 0.5 {
			p.mode = Dark
		}
		log.Debug(log.CatTheme, "probed terminal background", "mode", p.mode)
	})
	return p.mode, p.ok
}

// background returns the reported background color. termenv answers
// NoColor for a non-terminal and ANSI black when neither the terminal nor
// COLORFGBG gave a color; both count as unanswered.
func (p *TerminalPreference) background() (termenv.Color, bool) {
	bg := p.out.BackgroundColor()
	switch bg.(type) {
	case termenv.NoColor:
		return nil, false
	case termenv.ANSIColor:
		if !strings.Contains(p.env.Getenv("COLORFGBG"), ";") {
			return nil, false
		}
	}
	return bg, true
}

type osEnv struct{}

func (osEnv) Environ() []string        { return os.Environ() }
func (osEnv) Getenv(key string) string { return os.Getenv(key) }
