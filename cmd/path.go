package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/waypoint/internal/domain/navigation"
	"github.com/zjrosen/waypoint/internal/presentation"
)

var pathParseCmd = &cobra.Command{
	Use:   "path:parse <uri>",
	Short: "Parse a navigation URI and print its structure",
	Long: `Parse a navigation URI into segments and tab groups and print it as JSON.

With --resolve every name is also checked against the manifest's registry.

Examples:
  waypoint path:parse '/Shell/Tabs[Inbox,Settings]@Inbox'
  waypoint path:parse --resolve 'Details?id=42&useModalNavigation=true'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := navigation.Parse(args[0])
		if err != nil {
			return err
		}
		if resolve, _ := cmd.Flags().GetBool("resolve"); resolve {
			_, reg, err := loadRegistry()
			if err != nil {
				return err
			}
			resolved, err := navigation.Resolve(path, reg)
			if err != nil {
				return err
			}
			path = resolved.Path()
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatPath(presentation.FromPath(path))
	},
}

var pathComposeCmd = &cobra.Command{
	Use:   "path:compose <node>...",
	Short: "Compose nodes into a canonical, resolved navigation URI",
	Long: `Compose one node per argument into a path, resolve it against the registry
and print the canonical URI. Each node is a segment or tab group in wire form.

Examples:
  waypoint path:compose --absolute Shell 'Inbox?folder=all'
  waypoint path:compose 'Tabs[Inbox,Settings]@Settings' Details`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes := make([]navigation.Node, 0, len(args))
		for i, arg := range args {
			if strings.Contains(arg, "/") {
				return fmt.Errorf("node %d: %q contains '/'; pass one node per argument", i, arg)
			}
			parsed, err := navigation.Parse(arg)
			if err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}
			nodes = append(nodes, parsed.Nodes()...)
		}
		absolute, _ := cmd.Flags().GetBool("absolute")

		_, reg, err := loadRegistry()
		if err != nil {
			return err
		}
		resolved, err := navigation.Resolve(navigation.NewPath(absolute, nodes...), reg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), resolved.URI())
		return err
	},
}

func init() {
	pathParseCmd.Flags().Bool("resolve", false, "Check every name against the registry")
	pathComposeCmd.Flags().Bool("absolute", false, "Compose an absolute path (replaces the whole stack)")
	rootCmd.AddCommand(pathParseCmd, pathComposeCmd)
}
