package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/config"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/kv"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timeclock-go/internal/repository/snapshot"
	attendanceService "github.com/cmlabs-hris/timeclock-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/timeclock-go/internal/service/dashboard"
	"github.com/cmlabs-hris/timeclock-go/internal/service/store"
	"github.com/spf13/cobra"
)

var (
	errNotLoggedIn   = errors.New("not logged in")
	errAdminRequired = errors.New("admin access required")
	errLoginFailed   = errors.New("invalid email or password")
)

type app struct {
	dataDir string
	store   *store.Store
	policy  dashboard.Policy
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "timeclock",
		Short:         "Employee time tracking console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding the persisted state (default STORAGE_BASE_PATH)")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.statusCmd(),
		a.clockCmd("clock-in", "Clock in for today"),
		a.clockCmd("clock-out", "Clock out for today"),
		a.historyCmd(),
		a.dashboardCmd(),
	)
	return root
}

// open shares the API's timezone and attendance policy, so both agree on
// "today" over the same data directory.
func (a *app) open(ctx context.Context) error {
	cfg, err := config.LoadLocal()
	if err != nil {
		return err
	}
	policy, err := cfg.AttendancePolicy()
	if err != nil {
		return err
	}
	if a.dataDir == "" {
		a.dataDir = cfg.Storage.BasePath
	}

	files, err := storage.NewLocalStorage(a.dataDir)
	if err != nil {
		return err
	}
	s, err := store.New(ctx, snapshot.NewSnapshotRepository(kv.NewFile(files)),
		store.WithLocation(cfg.Location()),
	)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = s
	a.policy = policy
	return nil
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.store.Login(cmd.Context(), strings.TrimSpace(email), password)
			if err != nil {
				return err
			}
			if !ok {
				return errLoginFailed
			}
			session, _ := a.store.Session()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.Identity.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ok := a.store.Session()
			if !ok {
				return errNotLoggedIn
			}
			role := "employee"
			if session.IsAdmin {
				role = "admin"
			}
			id := session.Identity
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nRole: %s\nDepartment: %s\nPosition: %s\n",
				id.Name, id.Email, role, id.Department, id.Position)
			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's time entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := a.store.Session(); !ok {
				return errNotLoggedIn
			}
			entry, ok := a.store.CurrentEntry()
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not clocked in\n", a.store.Today())
				return nil
			}
			writeEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
}

func (a *app) clockCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := a.store.Session(); !ok {
				return errNotLoggedIn
			}

			clock, done, skipped := a.store.ClockIn, "Clocked in", "Already clocked in today"
			if use == "clock-out" {
				clock, done, skipped = a.store.ClockOut, "Clocked out", "No open entry to clock out"
			}

			entry, applied, err := clock(cmd.Context())
			if err != nil {
				return err
			}
			if !applied {
				fmt.Fprintln(cmd.OutOrStdout(), skipped)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), done)
			writeEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your time entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ok := a.store.Session()
			if !ok {
				return errNotLoggedIn
			}

			out := cmd.OutOrStdout()
			history := attendanceService.Summarize(a.store.EmployeeTimeEntries(session.Identity.ID))
			for _, e := range history.Entries {
				fmt.Fprintf(out, "%s  %-5s  %-5s  %6.2f  %s\n", e.Date, deref(e.ClockIn), deref(e.ClockOut), e.TotalHours, e.State)
			}
			fmt.Fprintf(out, "Days: %d  Total: %.2f h  Average: %.2f h\n", history.TotalDays, history.TotalHours, history.AverageHours)
			return nil
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	var filter dashboard.DashboardFilter

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's attendance overview (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ok := a.store.Session()
			if !ok {
				return errNotLoggedIn
			}
			if !session.IsAdmin {
				return errAdminRequired
			}

			resp, err := dashboardService.NewDashboardService(a.store, a.policy).GetDashboard(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			c := resp.Counts
			fmt.Fprintf(out, "Date: %s\n", resp.Date)
			fmt.Fprintf(out, "Employees: %d (active %d)\n", c.TotalEmployees, c.ActiveEmployees)
			fmt.Fprintf(out, "Clocked in: %d  Completed: %d  Not started: %d\n", c.ClockedIn, c.Completed, c.NotStarted)
			fmt.Fprintf(out, "Late arrivals: %d  Early leaves: %d\n", c.LateArrivals, c.EarlyLeaves)
			for _, d := range resp.Departments {
				fmt.Fprintf(out, "  %-20s %3d employees  %8.2f h\n", d.Department, d.Employees, d.TotalHours)
			}
			for _, s := range resp.DailyStatus {
				fmt.Fprintf(out, "  %-24s %-12s %s\n", s.Name, s.Department, s.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Department, "department", "", "department filter")
	cmd.Flags().StringVar(&filter.Position, "position", "", "position filter")
	cmd.Flags().StringVar(&filter.ClockStatus, "clock-status", "", "all, clocked-in or completed")
	cmd.Flags().StringVar(&filter.Search, "search", "", "name, email or department search")
	return cmd
}

func writeEntry(w io.Writer, e timeentry.TimeEntry) {
	fmt.Fprintf(w, "%s: in %s, out %s, %.2f h\n", e.Date, deref(e.ClockIn), deref(e.ClockOut), e.TotalHours)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
