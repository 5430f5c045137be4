package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seekterm/internal/controller"
	"seekterm/internal/eventbus"
	"seekterm/internal/notify"
	"seekterm/internal/search"
	"seekterm/internal/ui"
)

// e2eEnv makes the console print a readiness marker for the pty tests
const e2eEnv = "SEEKTERM_E2E_TEST"

// uiEvents are forwarded from the bus to the bubbletea program
var uiEvents = []eventbus.EventType{
	eventbus.EventSearchStarted,
	eventbus.EventLifecycleChanged,
	eventbus.EventStatusChanged,
	eventbus.EventResultsCleared,
	eventbus.EventResultsPresented,
	eventbus.EventNotificationChanged,
	eventbus.EventHealthChecked,
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	log := a.newLogger(cfg)
	defer log.Sync()

	client, err := a.newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	bus := eventbus.New(log)
	defer bus.Close()
	defer eventbus.Audit(bus, log)()

	opts := append([]controller.Option{
		controller.WithBus(bus),
		controller.WithLogger(log),
	}, a.ctrlOpts...)
	ctrl := controller.New(client,
		eventbus.StatusPublisher{Bus: bus},
		eventbus.ResultsPublisher{Bus: bus},
		opts...)

	notifier := notify.NewNotifier(
		notify.WithListener(notify.BusListener(bus)),
		notify.WithTiming(notificationTiming(cfg)),
		notify.WithLogger(log),
	)
	defer notifier.Close()
	copier := notify.NewCopier(a.newClipboard(log), notifier, log)

	model := ui.NewModel(ctx, ui.Deps{
		Searcher: ctrl,
		Copier:   copier,
		Endpoint: client.Endpoint(),
		Log:      log,
		Query:    joinQuery(args),
	})

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen && !a.noAlt {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	for _, t := range uiEvents {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	go probeHealth(ctx, client, bus, log)

	if os.Getenv(e2eEnv) != "" {
		fmt.Fprintln(a.stdout, "__READY__")
	}

	log.Info("starting console", zap.String("endpoint", client.Endpoint()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// probeHealth checks the endpoint once; the result only feeds the header
func probeHealth(ctx context.Context, client *search.Client, bus eventbus.EventBus, log *zap.Logger) {
	health, err := client.Health(ctx)
	if err != nil {
		log.Debug("health probe failed", zap.Error(err))
	}
	bus.Publish(eventbus.HealthCheckedEvent{Health: health, Err: err})
}
