package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seekterm/internal/controller"
	"seekterm/internal/domain"
	"seekterm/internal/eventbus"
	"seekterm/internal/notify"
	"seekterm/internal/render"
)

// maxTitleWidth bounds the title column of the results table
const maxTitleWidth = 50

// lineStatus prints each status update as one "[ 40%] label" line
type lineStatus struct {
	w io.Writer
}

func (s lineStatus) ShowStatus(text string, progress int) {
	fmt.Fprintf(s.w, "[%3d%%] %s\n", progress, text)
}

func (s lineStatus) ClearStatus() {}

// lastTree keeps the most recently presented tree
type lastTree struct {
	tree domain.PresentationTree
}

func (t *lastTree) ClearResults()                        { t.tree = domain.PresentationTree{} }
func (t *lastTree) Present(tree domain.PresentationTree) { t.tree = tree }

type searchFlags struct {
	json  bool
	pick  int
	copy  bool
	quiet bool
}

func (a *app) searchCommand() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Run one search and print the results",
		Long: `Search runs a single query with the same staged progress as the
console, printing progress lines to stderr and a results table to stdout.

Use --pick to print the link of one result and --copy to place it on the
clipboard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, joinQuery(args), f)
		},
	}
	cmd.Flags().BoolVar(&f.json, "json", false, "print results as JSON")
	cmd.Flags().IntVar(&f.pick, "pick", 0, "print the link of result N (1-based)")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "copy the link of the picked result (default: the first)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "do not print progress")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, query string, f searchFlags) error {
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

	bus := eventbus.New(log)
	defer bus.Close()
	defer eventbus.Audit(bus, log)()

	var status controller.StatusSink = lineStatus{w: a.stderr}
	if f.quiet {
		status = lineStatus{w: io.Discard}
	}
	target := &lastTree{}
	opts := append([]controller.Option{
		controller.WithBus(bus),
		controller.WithLogger(log),
	}, a.ctrlOpts...)
	ctrl := controller.New(client, status, target, opts...)

	runErr := ctrl.RunSearch(cmd.Context(), query)

	units := target.tree.Units
	if len(units) > 0 && units[0].Kind != domain.UnitRecord {
		if units[0].Kind == domain.UnitError {
			fmt.Fprintln(a.stderr, units[0].Message)
		} else {
			a.printf("%s\n", units[0].Message)
		}
	}
	if runErr != nil {
		log.Debug("search returned error", zap.Error(runErr))
		return ErrSearchFailed
	}

	records := target.tree.Records()
	if len(records) == 0 {
		return nil
	}

	if f.pick == 0 && f.copy {
		f.pick = 1
	}
	if f.pick != 0 {
		if f.pick < 1 || f.pick > len(records) {
			return fmt.Errorf("--pick %d out of range: %d results", f.pick, len(records))
		}
		return a.pickRecord(cmd, records[f.pick-1], f.copy, log)
	}

	if f.json {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	a.printf("%s\n", resultsTable(records))
	return nil
}

func (a *app) pickRecord(cmd *cobra.Command, u domain.PresentationUnit, copyIt bool, log *zap.Logger) error {
	if !copyIt {
		if u.Identifier == "" {
			return notify.ErrNoIdentifier
		}
		a.printf("%s\n", render.Sanitize(u.Identifier))
		return nil
	}

	notifier := notify.NewNotifier(
		notify.WithLogger(log),
		notify.WithListener(func(n *domain.Notification) {
			if n != nil && n.Stage == domain.StageEntering {
				fmt.Fprintln(a.stderr, n.Message)
			}
		}),
	)
	defer notifier.Close()

	err := notify.NewCopier(a.newClipboard(log), notifier, log).CopyIdentifier(cmd.Context(), u.Identifier)
	if errors.Is(err, notify.ErrClipboardUnavailable) {
		// still hand the link over
		a.printf("%s\n", render.Sanitize(u.Identifier))
	}
	return err
}

func resultsTable(records []domain.PresentationUnit) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		Headers("#", "TITLE", "SIZE", "RES", "SEED", "LEECH", "SCORE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, u := range records {
		t.Row(
			strconv.Itoa(u.Index+1),
			ansi.Truncate(u.Title, maxTitleWidth, "…"),
			u.Size,
			u.Resolution,
			u.Seeders,
			u.Leechers,
			u.Score,
		)
	}
	return t.String()
}
