package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/metorial/homewatch/internal/cli"
	"github.com/metorial/homewatch/internal/discovery"
	"github.com/metorial/homewatch/internal/healthcheck"
)

var (
	serverURL  string
	consulAddr string
	outputJSON bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "homectl",
	Short: "CLI for the Homewatch controller",
	Long: `homectl is a command-line interface for the Homewatch controller API.

It shows system health, devices, automations, performance, alerts and activity,
and drives the same mutations the dashboard offers.`,
	SilenceUsage: true,
}

// newClient prefers a controller found through Consul when --consul is set.
func newClient() (*cli.Client, error) {
	if consulAddr == "" {
		return cli.NewClient(serverURL), nil
	}

	sd, err := discovery.NewServiceDiscovery(consulAddr)
	if err != nil {
		return nil, err
	}
	url, err := sd.DiscoverAPI()
	if err != nil {
		return nil, err
	}
	return cli.NewClient(url), nil
}

// query runs fetch and prints the result either as JSON or through format.
func query(fetch func(*cli.Client) (map[string]interface{}, error), format func(map[string]interface{})) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	data, err := fetch(client)
	if err != nil {
		return err
	}
	if outputJSON {
		return cli.FormatJSON(os.Stdout, data)
	}
	format(data)
	return nil
}

func mutate(noun, verb string, fetch func(*cli.Client) (map[string]interface{}, error)) error {
	return query(fetch, func(data map[string]interface{}) {
		cli.FormatMutation(os.Stdout, noun, verb, data)
	})
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check controller and telemetry health",
	RunE: func(cmd *cobra.Command, args []string) error {
		return query((*cli.Client).Health, func(data map[string]interface{}) {
			cli.FormatHealth(os.Stdout, data)
		})
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the dashboard overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		return query((*cli.Client).Overview, func(data map[string]interface{}) {
			cli.FormatOverview(os.Stdout, data)
		})
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List and filter devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := cli.DeviceFilter{}
		filter.Search, _ = cmd.Flags().GetString("search")
		filter.Status, _ = cmd.Flags().GetString("status")
		filter.Room, _ = cmd.Flags().GetString("room")

		return query(func(c *cli.Client) (map[string]interface{}, error) {
			return c.ListDevices(filter)
		}, func(data map[string]interface{}) {
			cli.FormatDevicesTable(os.Stdout, data)
		})
	},
}

var setDeviceCmd = &cobra.Command{
	Use:   "set [id]",
	Short: "Change fields of a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := map[string]interface{}{}
		flags := cmd.Flags()
		if flags.Changed("status") {
			v, _ := flags.GetString("status")
			patch["status"] = v
		}
		if flags.Changed("brightness") {
			v, _ := flags.GetInt("brightness")
			patch["brightness"] = v
		}
		if flags.Changed("temperature") {
			v, _ := flags.GetFloat64("temperature")
			patch["temperature"] = v
		}
		if flags.Changed("locked") {
			v, _ := flags.GetBool("locked")
			patch["is_locked"] = v
		}
		if len(patch) == 0 {
			return fmt.Errorf("nothing to change: pass at least one of --status, --brightness, --temperature, --locked")
		}

		return mutate("device", "updated", func(c *cli.Client) (map[string]interface{}, error) {
			return c.PatchDevice(args[0], patch)
		})
	},
}

var automationsCmd = &cobra.Command{
	Use:   "automations",
	Short: "List automation rules and scenes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return query((*cli.Client).Automations, func(data map[string]interface{}) {
			cli.FormatAutomations(os.Stdout, data)
		})
	},
}

var toggleAutomationCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Enable or disable an automation rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate("automation", "toggled", func(c *cli.Client) (map[string]interface{}, error) {
			return c.ToggleAutomation(args[0])
		})
	},
}

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "Manage scenes",
}

var activateSceneCmd = &cobra.Command{
	Use:   "activate [id]",
	Short: "Activate a scene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate("scene", "activated", func(c *cli.Client) (map[string]interface{}, error) {
			return c.ActivateScene(args[0])
		})
	},
}

var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show resource usage, network, database and services",
	RunE: func(cmd *cobra.Command, args []string) error {
		return query((*cli.Client).Performance, func(data map[string]interface{}) {
			cli.FormatPerformance(os.Stdout, data)
		})
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List and filter alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := cli.AlertFilter{}
		filter.Search, _ = cmd.Flags().GetString("search")
		filter.Type, _ = cmd.Flags().GetString("type")
		filter.Status, _ = cmd.Flags().GetString("status")

		return query(func(c *cli.Client) (map[string]interface{}, error) {
			return c.ListAlerts(filter)
		}, func(data map[string]interface{}) {
			cli.FormatAlertsTable(os.Stdout, data)
		})
	},
}

func alertAction(use, short, verb string, call func(*cli.Client, string) (map[string]interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate("alert", verb, func(c *cli.Client) (map[string]interface{}, error) {
				return call(c, args[0])
			})
		},
	}
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := cli.ActivityFilter{}
		filter.Search, _ = cmd.Flags().GetString("search")
		filter.Category, _ = cmd.Flags().GetString("category")
		filter.Outcome, _ = cmd.Flags().GetString("outcome")

		return query(func(c *cli.Client) (map[string]interface{}, error) {
			return c.Activity(filter)
		}, func(data map[string]interface{}) {
			cli.FormatActivityTable(os.Stdout, data)
		})
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Query the controller's gRPC health service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("grpc")
		if consulAddr != "" {
			sd, err := discovery.NewServiceDiscovery(consulAddr)
			if err != nil {
				return err
			}
			if addr, err = sd.DiscoverGRPC(); err != nil {
				return err
			}
		}

		conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("connect %s: %w", addr, err)
		}
		defer conn.Close()

		client := healthpb.NewHealthClient(conn)
		results := map[string]interface{}{}
		for _, service := range []string{"", healthcheck.TelemetryService} {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
			cancel()
			if err != nil {
				return fmt.Errorf("check %q: %w", service, err)
			}

			name := service
			if name == "" {
				name = "controller"
			}
			results[name] = resp.GetStatus().String()
		}

		if outputJSON {
			return cli.FormatJSON(os.Stdout, results)
		}
		fmt.Printf("Controller:  %s\n", results["controller"])
		fmt.Printf("Telemetry:   %s\n", results[healthcheck.TelemetryService])
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the controller's change feed",
	Long: `watch prints one line per change feed event until interrupted.

With --consul the controller address is re-resolved periodically and the feed
reconnects whenever the controller moves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bases, err := feedAddresses(ctx, cmd)
		if err != nil {
			return err
		}

		return cli.Follow(ctx, bases, func(event map[string]interface{}) {
			if outputJSON {
				cli.FormatJSON(os.Stdout, event)
				return
			}
			cli.FormatFeedEvent(os.Stdout, event)
		})
	},
}

// feedAddresses yields the controller base URL, following Consul when --consul
// is set.
func feedAddresses(ctx context.Context, cmd *cobra.Command) (<-chan string, error) {
	if consulAddr == "" {
		return cli.Static(serverURL), nil
	}

	sd, err := discovery.NewServiceDiscovery(consulAddr)
	if err != nil {
		return nil, err
	}
	every, _ := cmd.Flags().GetDuration("every")

	bases := make(chan string)
	go func() {
		defer close(bases)
		for addr := range sd.Watch(ctx, discovery.HTTPServiceName, every, nil) {
			select {
			case bases <- "http://" + addr:
			case <-ctx.Done():
				return
			}
		}
	}()
	return bases, nil
}

func init() {
	defaultServerURL := os.Getenv("HOMEWATCH_URL")
	if defaultServerURL == "" {
		defaultServerURL = os.Getenv("CONTROLLER_URL")
	}
	if defaultServerURL == "" {
		defaultServerURL = "http://localhost:8080"
	}

	defaultGRPC := "localhost:9090"
	if port := os.Getenv("GRPC_PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			defaultGRPC = "localhost:" + port
		}
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServerURL, "Controller server URL")
	rootCmd.PersistentFlags().StringVar(&consulAddr, "consul", "", "Consul address used to discover the controller")
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "Output in JSON format")

	devicesCmd.Flags().String("search", "", "Match name or room, case-insensitive")
	devicesCmd.Flags().String("status", "all", "online, offline, error or all")
	devicesCmd.Flags().String("room", "all", "Exact room name or all")

	setDeviceCmd.Flags().String("status", "", "online, offline or error")
	setDeviceCmd.Flags().Int("brightness", 0, "Brightness percent")
	setDeviceCmd.Flags().Float64("temperature", 0, "Temperature reading")
	setDeviceCmd.Flags().Bool("locked", false, "Lock state")
	devicesCmd.AddCommand(setDeviceCmd)

	automationsCmd.AddCommand(toggleAutomationCmd)
	scenesCmd.AddCommand(activateSceneCmd)

	alertsCmd.Flags().String("search", "", "Match title, message or source, case-insensitive")
	alertsCmd.Flags().String("type", "all", "critical, warning, info, success or all")
	alertsCmd.Flags().String("status", "all", "unread, unresolved, resolved or all")
	alertsCmd.AddCommand(
		alertAction("read", "Mark an alert as read", "marked read", (*cli.Client).MarkAlertRead),
		alertAction("resolve", "Resolve an alert", "resolved", (*cli.Client).ResolveAlert),
		alertAction("delete", "Delete an alert", "deleted", (*cli.Client).DeleteAlert),
	)

	activityCmd.Flags().String("search", "", "Match title or description, case-insensitive")
	activityCmd.Flags().String("category", "all", "Activity category or all")
	activityCmd.Flags().String("outcome", "all", "Activity outcome or all")

	pingCmd.Flags().String("grpc", defaultGRPC, "Controller gRPC address")
	watchCmd.Flags().Duration("every", 10*time.Second, "How often to re-resolve the controller through Consul")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(automationsCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(performanceCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(watchCmd)
}
