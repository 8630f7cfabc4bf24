// Command slime-sandbox drives one character through a terminal level
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/audio"
	"github.com/lixenwraith/slime-launch/behavior"
	"github.com/lixenwraith/slime-launch/collision"
	"github.com/lixenwraith/slime-launch/config"
	"github.com/lixenwraith/slime-launch/engine"
	"github.com/lixenwraith/slime-launch/telemetry"
)

var (
	configPath = flag.String("config", "", "TOML configuration file")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to "+logDir+"/")
	muteFlag   = flag.Bool("mute", false, "Start without opening the speaker")
)

// sandbox owns the terminal loop state
type sandbox struct {
	screen   tcell.Screen
	input    *terminalInput
	world    *collision.World
	char     *engine.Character
	cues     *audio.CuePlayer
	clock    *engine.PausableClock
	sched    *engine.Scheduler
	renderer *renderer
	hud      *hudState
	log      zerolog.Logger
}

func main() {
	var screen tcell.Screen

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSLIME-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	log, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, issues, err := config.Load(*configPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	metrics, err := telemetry.New()
	if err != nil {
		log.Warn().Err(err).Msg("metrics disabled")
		metrics = nil
	}
	metrics.ConfigIssues(len(issues))

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sb := newSandbox(screen, cfg, log, metrics)
	defer sb.cues.Cleanup()

	if !*muteFlag {
		if err := sb.cues.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing silent")
		}
	}

	sb.run(cfg.Engine.FrameInterval)
}

func newSandbox(screen tcell.Screen, cfg *config.Config, log zerolog.Logger, metrics *telemetry.Metrics) *sandbox {
	_, h := screen.Size()

	sb := &sandbox{
		screen:   screen,
		input:    newTerminalInput(h),
		world:    buildLevel(cfg, log),
		cues:     audio.NewCuePlayer(audio.DefaultConfig(), log),
		clock:    engine.NewPausableClock(engine.NewMonotonicTimeProvider()),
		renderer: newRenderer(screen, cfg),
		hud:      &hudState{},
		log:      log,
	}

	sb.char = engine.NewCharacter(cfg, spawnPoint, sb.input, sb.world, log, metrics)
	sb.char.Machine.Subscribe(sb.cues)
	sb.char.Machine.Subscribe(behavior.PresentationFuncs{
		Transition: func(prev, next behavior.State) {
			sb.hud.transition = fmt.Sprintf("%s>%s(%s)", prev, next, sb.char.Machine.LastRule())
		},
		Frame: func(f behavior.Frame) {
			sb.hud.frame = f
		},
	})

	sb.sched = engine.NewScheduler(cfg.Engine.FixedStep, cfg.Engine.MaxCatchUp, sb.clock,
		sb.char.PhysicsTick, sb.char.PresentationTick, metrics)
	return sb
}

// run multiplexes terminal events and the frame ticker until quit
func (sb *sandbox) run(frameInterval time.Duration) {
	events := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !sb.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			sb.sched.Frame()
			sb.hud.ticks = sb.sched.Ticks()
			sb.hud.dropped = sb.sched.Dropped()
			sb.hud.paused = sb.clock.IsPaused()
			sb.hud.muted = sb.cues.IsMuted() || !sb.cues.IsInitialized()
			sb.renderer.draw(sb.char, sb.world, sb.hud, sb.sched.Alpha())
		}
	}
}

// handleEvent applies one terminal event, returns false to quit
func (sb *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		_, h := ev.Size()
		sb.input.resize(h)
		sb.screen.Sync()
	case *tcell.EventMouse:
		sb.input.handleMouse(ev)
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return sb.handleRune(ev.Rune())
		}
	}
	return true
}

func (sb *sandbox) handleRune(r rune) bool {
	m := sb.char.Machine
	switch r {
	case 'q', 'Q':
		return false
	case 'g':
		sb.input.toggleGrab()
	case 'c':
		sb.char.Controller.CycleColor()
	case 's':
		m.TriggerSpit()
	case 'k':
		m.TriggerSpike()
	case 'd':
		m.TakeDamage()
	case 'x':
		m.Die()
	case 'r':
		sb.char.Respawn()
		sb.sched.Reset()
	case 'p':
		paused := sb.clock.Toggle()
		sb.log.Info().Bool("paused", paused).Msg("pause toggled")
	case 'm':
		sb.cues.ToggleMute()
	}
	return true
}
