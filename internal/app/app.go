// Package app implements the application layer for uifirst.
package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/uifirst/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/raster"    //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/scene"     //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/worker"    //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/uifirst/internal/engine/uifirst"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	watcher      ports.ConfigWatcher
	scripts      ports.ScriptLoader
	store        ports.ReportStore
	inspector    ports.Inspector
	recorder     ports.TaskRecorder
	logger       ports.Logger
	out          io.Writer
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	watcher ports.ConfigWatcher,
	scripts ports.ScriptLoader,
	reports ports.ReportStore,
	inspector ports.Inspector,
	recorder ports.TaskRecorder,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		watcher:      watcher,
		scripts:      scripts,
		store:        reports,
		inspector:    inspector,
		recorder:     recorder,
		logger:       log,
		out:          os.Stdout,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithOutput redirects frame reports to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// ReplayOptions configuration for the Replay method.
type ReplayOptions struct {
	// ConfigPath defaults to config.DefaultFilename.
	ConfigPath string
	OutputMode string
	// Inspect keeps the TUI open after the last frame.
	Inspect bool
	// Save stores the frame reports under the script's digest.
	Save bool
}

// session is the per-run scheduler and everything it owns.
type session struct {
	manager *uifirst.Manager
	pool    *worker.Pool
	bridge  *telemetry.Bridge
	tracer  *telemetry.OTelTracer
}

func (a *App) newSession(cfg domain.Config, script *domain.Script) *session {
	bridge := telemetry.NewBridge()
	tracer := telemetry.NewOTelTracer("uifirst", bridge)
	pool := worker.NewPool(raster.NewRenderer(script.RenderDelay), cfg.Workers)
	return &session{
		manager: uifirst.NewManager(cfg, pool, tracer, a.recorder, a.logger),
		pool:    pool,
		bridge:  bridge,
		tracer:  tracer,
	}
}

func (s *session) close(ctx context.Context) {
	_ = s.pool.Close()
	_ = s.tracer.Shutdown(context.WithoutCancel(ctx))
}

func (a *App) load(configPath, scriptPath string) (domain.Config, *domain.Script, []byte, error) {
	cfg, err := a.configLoader.Load(cmp.Or(configPath, config.DefaultFilename))
	if err != nil {
		return domain.Config{}, nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	script, raw, err := a.scripts.Load(scriptPath)
	if err != nil {
		return domain.Config{}, nil, nil, zerr.Wrap(err, "failed to load scene script")
	}
	return cfg, script, raw, nil
}

func (a *App) newPresenter(ctx context.Context, outputMode string) ports.Presenter {
	autoMode := detector.ModeLinear
	if f, ok := a.out.(*os.File); ok {
		autoMode = detector.DetectEnvironment(f)
	}

	switch detector.ResolveMode(autoMode, outputMode) {
	case detector.ModeTUI:
		model := tui.NewModel(os.Stderr)
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		return tui.NewPresenter(&model, optsTea...)
	case detector.ModeJSON:
		return linear.NewPresenter(a.out, linear.WithJSON())
	default:
		return linear.NewPresenter(a.out)
	}
}

// Replay runs every frame of the script at scriptPath through a fresh
// scheduler and presents the report of each frame.
//
//nolint:cyclop // orchestration function
func (a *App) Replay(ctx context.Context, scriptPath string, opts ReplayOptions) error {
	cfg, script, raw, err := a.load(opts.ConfigPath, scriptPath)
	if err != nil {
		return err
	}

	s := a.newSession(cfg, script)
	defer s.close(ctx)

	presenter := a.newPresenter(ctx, opts.OutputMode)

	var reports []domain.FrameReport
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := presenter.Start(ctx); err != nil {
			return err
		}
		return presenter.Wait()
	})

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Join(domain.ErrReplayFailed, fmt.Errorf("scheduler panic: %v", r))
			}
			if !opts.Inspect {
				_ = presenter.Stop()
			}
		}()

		reports, err = a.play(ctx, s, script, presenter)
		if err != nil {
			return errors.Join(domain.ErrReplayFailed, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if !opts.Save {
		return nil
	}
	digest := store.Digest(raw)
	if err := a.store.Put(domain.Run{Script: script.Name, Digest: digest, Frames: reports}); err != nil {
		return zerr.Wrap(err, "failed to save run")
	}
	a.logger.Info("saved run " + digest)
	return nil
}

// play feeds the script's frames to the scheduler, one per frame interval.
func (a *App) play(
	ctx context.Context,
	s *session,
	script *domain.Script,
	presenter ports.Presenter,
) ([]domain.FrameReport, error) {
	ticker := time.NewTicker(cmp.Or(script.FrameInterval, scene.DefaultFrameInterval))
	defer ticker.Stop()

	reports := make([]domain.FrameReport, 0, len(script.Frames))
	for i := range script.Frames {
		if i > 0 {
			select {
			case <-ctx.Done():
				return reports, ctx.Err()
			case <-ticker.C:
			}
		}

		rep := s.manager.RunFrame(ctx, &script.Frames[i])
		rep.Phases = s.bridge.TakePhases()
		presenter.OnFrame(rep)
		reports = append(reports, rep)
	}
	return reports, nil
}
