package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
	"github.com/zjrosen/waypoint/internal/presentation"
)

var registryListCmd = &cobra.Command{
	Use:   "registry:list",
	Short: "List all registered destinations",
	Long: `List the destinations registered by the manifest as JSON, in registration order.

Use --kind to list only destinations whose view is, or derives from, a kind.
Use --view-model to print the destination name a view model navigates to.

Examples:
  # List all destinations
  waypoint registry:list

  # Only navigation pages (the last one is used by AddNavigationPage)
  waypoint registry:list --kind NavigationPage

  # Which destination does a view model resolve to?
  waypoint registry:list --view-model InboxViewModel

  # Parse specific fields with jq
  waypoint registry:list | jq '.[].name'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, reg, err := loadRegistry()
		if err != nil {
			return err
		}

		kindName, _ := cmd.Flags().GetString("kind")
		vmName, _ := cmd.Flags().GetString("view-model")

		if vmName != "" {
			vm, ok := m.Kind(vmName)
			if !ok {
				return &navigation.UnregisteredDestinationError{Name: vmName, ViewModel: true}
			}
			name, err := reg.LookupKeyByViewModel(vm)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		}

		registrations := reg.List()
		if kindName != "" {
			kind, ok := m.Kind(kindName)
			if !ok {
				return fmt.Errorf("unknown kind %q", kindName)
			}
			registrations = reg.ViewsOfKind(kind)
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatRegistrations(presentation.FromDomainRegistrations(registrations))
	},
}

func init() {
	registryListCmd.Flags().StringP("kind", "k", "", "Only list destinations of this kind (e.g., NavigationPage)")
	registryListCmd.Flags().String("view-model", "", "Print the destination a view model resolves to")
	rootCmd.AddCommand(registryListCmd)
}
