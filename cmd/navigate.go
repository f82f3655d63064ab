package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
	"github.com/zjrosen/waypoint/internal/log"
	"github.com/zjrosen/waypoint/internal/navigator"
	"github.com/zjrosen/waypoint/internal/presentation"
	"github.com/zjrosen/waypoint/internal/pubsub"
)

// backStep is the navigate argument that goes back one journal entry.
const backStep = ".."

var navigateCmd = &cobra.Command{
	Use:   "navigate <uri|..>...",
	Short: "Run navigations against a simulated host",
	Long: `Run each argument as a navigation against an in-memory host and print the
resulting screen stack and journal. ".." goes back one entry.

Navigations run in order; a failing step is reported and the remaining steps
still run. The exit status is non-zero if any step failed.

Examples:
  waypoint navigate /Shell/Inbox 'Details?id=1' ..
  waypoint navigate --fail-on Settings Inbox Settings
  waypoint navigate --json Inbox Details | jq '.[] | select(.current)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNavigate,
}

func init() {
	navigateCmd.Flags().Bool("json", false, "Print the journal as JSON")
	navigateCmd.Flags().StringSlice("fail-on", nil, "Destinations the simulated host refuses to present")
	rootCmd.AddCommand(navigateCmd)
}

func runNavigate(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	failOn, _ := cmd.Flags().GetStringSlice("fail-on")
	for _, name := range failOn {
		rt.host.FailOn(name, fmt.Errorf("%s is unavailable", name))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopped := pubsub.Listen[navigator.Event](ctx, rt.events, func(ev pubsub.Event[navigator.Event]) {
		log.Debug(log.CatCLI, "navigation event", "type", ev.Type, "uri", ev.Payload.URI, "id", ev.Payload.NavigationID)
	})

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	failed := 0
	for _, arg := range args {
		if err := step(ctx, rt.service, arg); err != nil {
			failed++
			fmt.Fprintln(errOut, presentation.RenderError(arg, err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	stop()
	<-stopped

	journal := rt.service.Journal()
	dtos := presentation.FromJournal(journal.Entries(), journal.Cursor())
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := presentation.NewFormatter(out).FormatJournal(dtos); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, presentation.RenderScreens(rt.host.Screens()))
		fmt.Fprintln(out, presentation.RenderJournal(dtos))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d navigations failed", failed, len(args))
	}
	return nil
}

// step runs one navigate argument and waits for it to finish.
func step(ctx context.Context, svc *navigator.Service, arg string) error {
	var nav *navigation.Navigation
	if arg == backStep {
		nav = svc.GoBack(ctx)
	} else {
		var err error
		nav, err = svc.NavigateURI(ctx, arg)
		if err != nil {
			return err
		}
	}
	return nav.Wait(ctx)
}
