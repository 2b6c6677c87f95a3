package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unis-raj-shah/warehouse-scheduler/internal/config"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/clients/gmailclient"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/clients/wiseclient"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/services"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/httpserver"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/postgres"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/utils"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg        *config.Config
	wiseClient *wiseclient.Client
	notifier   services.Notifier
	database   *postgres.DB
	logger     *zap.Logger
	ctx        context.Context
}

var (
	env     string
	noEmail bool
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Warehouse staffing scheduler",
		Long:  `Forecasts next-day warehouse workload, derives required headcount per role, matches the requirement against the employee roster, and emails the schedule.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment suffix for config files (test, prod, ...)")
	rootCmd.PersistentFlags().BoolVar(&noEmail, "no-email", false, "Skip the Gmail OAuth flow and all notifications")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(findEmployeeCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.wiseClient = wiseclient.NewClient(app.cfg)

	if noEmail {
		app.logger.Info("Email disabled, notifications will be skipped")
	} else {
		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}

		oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
		if err != nil {
			return fmt.Errorf("failed to build oauth config: %w", err)
		}

		token, err := utils.GetTokenWithFlow(app.ctx, oauthConfig)
		if err != nil {
			return fmt.Errorf("failed to obtain oauth token: %w", err)
		}

		gmailClient, err := gmailclient.NewClient(app.ctx, oauthCfg, token)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		app.notifier = services.NewEmailNotifier(gmailClient, app.cfg)
		app.logger.Debug("Gmail client initialized successfully")
	}

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler for the next two working days",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.RunScheduler(
				app.ctx,
				app.wiseClient,
				app.database,
				app.database,
				app.notifierOrNop(),
				app.cfg,
				app.logger,
				time.Now(),
				dryRun,
			)
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule computed (run %s)\n", result.RunID)
			printDayResult(result.Tomorrow)
			printDayResult(result.DayAfter)

			if len(result.Shortages) > 0 {
				fmt.Printf("Shortages for %s:\n", result.Tomorrow.Date)
				for _, rc := range result.Tomorrow.RequiredRoles.Flatten() {
					if missing, ok := result.Shortages[rc.Key]; ok {
						fmt.Printf("  %-28s short by %d\n", rc.Key, missing)
					}
				}
				fmt.Println()
			}

			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Compute the schedule without saving history or sending emails")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [days]",
		Short: "Show recent staffing history and per-role moving averages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := app.cfg.HistoryDays
			if len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed < 1 {
					return fmt.Errorf("days must be a positive number")
				}
				days = parsed
			}

			records, averages, err := services.StaffingTrend(app.ctx, app.database, days, time.Now())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Printf("No staffing history in the last %d days.\n", days)
				return nil
			}

			fmt.Printf("\nStaffing history (last %d days):\n", days)
			for _, record := range records {
				parts := make([]string, 0, len(record.Roles))
				for role, count := range record.Roles {
					parts = append(parts, fmt.Sprintf("%s=%d", role, count))
				}
				fmt.Printf("  %s  %s\n", record.Date, strings.Join(parts, " "))
			}

			fmt.Printf("\nMoving averages:\n")
			for role, avg := range averages {
				fmt.Printf("  %-28s %.1f\n", role, avg)
			}
			fmt.Println()

			return nil
		},
	}
}

func findEmployeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-employee <name>",
		Short: "Resolve a free-text name against the employee directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employee, err := services.FindEmployee(app.ctx, app.database, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nMatched employee %s\n", employee.ID)
			fmt.Printf("  Name:      %s\n", employee.Name)
			fmt.Printf("  Job title: %s\n", employee.JobTitle)
			fmt.Printf("  Email:     %s\n", employee.Email)
			fmt.Println()

			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduler over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			run := func(ctx context.Context) (*services.RunSchedulerResult, error) {
				return services.RunScheduler(
					ctx,
					app.wiseClient,
					app.database,
					app.database,
					app.notifierOrNop(),
					app.cfg,
					app.logger,
					time.Now(),
					false,
				)
			}
			find := func(ctx context.Context, name string) (any, error) {
				return services.FindEmployee(ctx, app.database, name)
			}

			router := httpserver.New(run, find, app.logger)
			app.logger.Info("Listening", zap.String("addr", app.cfg.ListenAddr))
			return router.Run(app.cfg.ListenAddr)
		},
	}
}

// notifierOrNop substitutes a no-op notifier when email is disabled.
func (a *App) notifierOrNop() services.Notifier {
	if a.notifier != nil {
		return a.notifier
	}
	return nopNotifier{}
}

type nopNotifier struct{}

func (nopNotifier) SendSchedule(model.DayResult) error { return nil }
func (nopNotifier) SendStaffingForecast(model.DayResult, model.DayResult, map[string]int) error {
	return nil
}

func printDayResult(day model.DayResult) {
	fmt.Printf("\n%s (%s)\n", day.Date, day.DayName)
	fmt.Printf("  Forecast: incoming=%.0f shipping=%.0f orders=%.0f pick=%.0f staged=%.0f\n",
		day.Forecast.IncomingPallets, day.Forecast.ShippingPallets, day.Forecast.TotalOrderQty,
		day.Forecast.CasesToPick, day.Forecast.StagedPallets)
	for _, rc := range day.RequiredRoles.Flatten() {
		assigned := strings.Join(day.AssignedEmployees[rc.Key], ", ")
		if assigned == "" {
			assigned = "-"
		}
		fmt.Printf("  %-28s required %d  assigned: %s\n", rc.Key, rc.Count, assigned)
	}
	fmt.Println()
}
