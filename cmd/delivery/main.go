package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "delivery",
		Short:        "House of Shirt delivery cost and time estimation",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(locationsCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(routeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var configPath, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the delivery HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "optional YAML/JSON config file")
	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port, overrides PORT")
	return cmd
}

func quoteCmd() *cobra.Command {
	var (
		speed     string
		total     float64
		serverURL string
		pricing   string
	)

	cmd := &cobra.Command{
		Use:   "quote <state> [city]",
		Short: "Price a delivery locally or against a running service",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := ""
			if len(args) == 2 {
				city = args[1]
			}
			return runQuote(cmd.Context(), cmd.OutOrStdout(), quoteOptions{
				State:       args[0],
				City:        city,
				Speed:       speed,
				Total:       total,
				ServerURL:   serverURL,
				PricingFile: pricing,
			})
		},
	}

	cmd.Flags().StringVarP(&speed, "speed", "s", "standard", "speed option: economy, standard or express")
	cmd.Flags().Float64VarP(&total, "total", "t", 0, "order subtotal in naira")
	cmd.Flags().StringVar(&serverURL, "server", "", "base URL of a running service; quotes locally when empty")
	cmd.Flags().StringVar(&pricing, "pricing", "", "pricing YAML for local quotes")
	return cmd
}

func locationsCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List serviceable states and cities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocations(cmd.Context(), cmd.OutOrStdout(), serverURL)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "base URL of a running service; uses the built-in table when empty")
	return cmd
}

func checkCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "check <state> [city]",
		Short: "Report whether a destination is serviceable",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := ""
			if len(args) == 2 {
				city = args[1]
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), serverURL, args[0], city)
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "base URL of a running service; uses the built-in table when empty")
	return cmd
}

func routeCmd() *cobra.Command {
	var graphPath string

	cmd := &cobra.Command{
		Use:   "route <from> <to>",
		Short: "Find the shortest path between two hubs in a graph file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cmd.OutOrStdout(), graphPath, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "YAML adjacency map of hubs")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}
