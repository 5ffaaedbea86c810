package app

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"go.trai.ch/uifirst/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/inspect" //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/linear"  //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/adapters/scene"   //nolint:depguard // Wired in app layer
	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	// ConfigPath defaults to config.DefaultFilename.
	ConfigPath string
	// SocketPath defaults to inspect.DefaultSocketPath.
	SocketPath string
}

// Serve replays the script in a loop until ctx is done. The scheduler state
// is exposed on SocketPath and the configuration file is watched for changes.
func (a *App) Serve(ctx context.Context, scriptPath string, opts ServeOptions) error {
	configPath := cmp.Or(opts.ConfigPath, config.DefaultFilename)
	socketPath := cmp.Or(opts.SocketPath, inspect.DefaultSocketPath())

	cfg, script, _, err := a.load(configPath, scriptPath)
	if err != nil {
		return err
	}

	s := a.newSession(cfg, script)
	defer s.close(ctx)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.inspector.Serve(ctx, socketPath, s.manager)
	})

	g.Go(func() error {
		return a.watcher.Watch(ctx, configPath, s.manager.UpdateConfig)
	})

	g.Go(func() error {
		a.logger.Info(fmt.Sprintf("serving %s on %s", script.Name, socketPath))
		a.loop(ctx, s, script)
		return nil
	})

	return g.Wait()
}

// loop cycles through the script's frames until ctx is done. Frame numbers
// and timestamps keep increasing across cycles.
func (a *App) loop(ctx context.Context, s *session, script *domain.Script) {
	interval := cmp.Or(script.FrameInterval, scene.DefaultFrameInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if len(script.Frames) == 0 {
		<-ctx.Done()
		return
	}
	epoch := script.Frames[0].Time

	for n := uint64(1); ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame := script.Frames[(n-1)%uint64(len(script.Frames))]
		frame.Number = n
		frame.Time = epoch.Add(time.Duration(n-1) * interval)
		s.manager.RunFrame(ctx, &frame)
		s.bridge.TakePhases()
	}
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	// SocketPath defaults to inspect.DefaultSocketPath.
	SocketPath string
	// Node selects a single node. Zero prints the whole frame.
	Node uint64
	JSON bool
}

// Status queries a running Serve and prints what it last scheduled.
func (a *App) Status(ctx context.Context, opts StatusOptions) error {
	client, err := a.inspector.Dial(cmp.Or(opts.SocketPath, inspect.DefaultSocketPath()))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if opts.Node != 0 {
		status, err := client.NodeStatus(ctx, domain.NodeID(opts.Node))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(a.out, "%d %s\n", opts.Node, status)
		return err
	}

	rep, err := client.Status(ctx)
	if err != nil {
		return err
	}
	a.reportPresenter(opts.JSON).OnFrame(rep)
	return nil
}

// Show prints a run stored by Replay.
func (a *App) Show(_ context.Context, digest string, asJSON bool) error {
	run, err := a.store.Get(digest)
	if err != nil {
		return err
	}
	if run == nil {
		return zerr.With(domain.ErrRunNotFound, "digest", digest)
	}

	p := a.reportPresenter(asJSON)
	for _, rep := range run.Frames {
		p.OnFrame(rep)
	}
	return p.Stop()
}

func (a *App) reportPresenter(asJSON bool) *linear.Presenter {
	if asJSON {
		return linear.NewPresenter(a.out, linear.WithJSON())
	}
	return linear.NewPresenter(a.out)
}
