package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"pdf-tools-server/internal/config"
	"pdf-tools-server/internal/domain"

	"github.com/spf13/cobra"
)

var showGroups bool

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Print the resolved endpoint registry and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := config.NewContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer syncLogger(container)
		return printEndpoints(cmd.OutOrStdout(), container.GetEndpointService(), showGroups)
	},
}

func init() {
	endpointsCmd.Flags().BoolVar(&showGroups, "groups", false, "Print the group table instead of endpoint statuses")
}

func printEndpoints(out io.Writer, endpoints domain.EndpointService, groups bool) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if groups {
		table := endpoints.Groups()
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w, "GROUP\tENDPOINTS")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(table[name], ","))
		}
		return w.Flush()
	}

	fmt.Fprintln(w, "ENDPOINT\tENABLED\tGROUPS")
	for _, status := range endpoints.Statuses() {
		fmt.Fprintf(w, "%s\t%t\t%s\n", status.Name, status.Enabled, strings.Join(status.Groups, ","))
	}
	return w.Flush()
}
