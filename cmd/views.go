package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/sprintlens/core"
	"github.com/huangsam/sprintlens/internal/contract"
)

// viewRun adapts a core executor to a cobra Run function.
func viewRun(name string, exec core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := exec(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run "+name, err)
		}
	}
}

// cfdCmd prints the cumulative flow of a day window.
var cfdCmd = &cobra.Command{
	Use:   "cfd",
	Short: "Show the cumulative flow of issues over a window of days.",
	Long: `Reconstruct the status of every issue for each day of the window and count
how many were To Do, In Progress and Done.

Statuses are replayed from each issue's changelog; issues that did not exist yet
on a day are left out of that day.

Examples:
  # Last 30 days of the demo dataset
  sprintlens cfd

  # Two weeks ending on a date, one project only
  sprintlens cfd --end 2025-06-30 --days 14 --project PHX

  # Export for a notebook
  sprintlens cfd --output parquet --output-file cfd.parquet`,
	PreRunE: viewSetupWrapper,
	Run:     viewRun("cumulative flow", core.ExecuteCfd),
}

// sprintCmd analyzes one sprint.
var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Show committed vs completed work and the burndown of a sprint.",
	Long: `Analyze one sprint: committed and completed work in the chosen unit,
the status split of its issues and a daily burndown against the ideal line.

Examples:
  sprintlens sprint --sprint 3
  sprintlens sprint --sprint 3 --unit count
  sprintlens sprint --sprint 3 --assignee u1 --output csv`,
	PreRunE: viewSetupWrapper,
	Run:     viewRun("sprint analysis", core.ExecuteSprint),
}

// velocityCmd shows completed work per closed sprint.
var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Show completed work per closed sprint and the average.",
	Long: `List every closed sprint with the work completed in it, in sprint order,
followed by the average across those sprints.

Examples:
  sprintlens velocity
  sprintlens velocity --unit count --output json`,
	PreRunE: viewSetupWrapper,
	Run:     viewRun("velocity", core.ExecuteVelocity),
}

// workloadCmd shows estimated vs logged hours per user.
var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Show estimated vs logged hours per user.",
	Long: `Sum the original estimates and logged time of each user's assigned issues
and label the variance as Over, Under or On Track.

Examples:
  sprintlens workload
  sprintlens workload --project PHX --output csv --output-file workload.csv`,
	PreRunE: viewSetupWrapper,
	Run:     viewRun("workload", core.ExecuteWorkload),
}

// overviewCmd shows project-wide KPIs.
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show issue KPIs, breakdowns and the most recent issues.",
	Long: `Summarize the issue set: totals per bucket, completion rate, average
resolution time, issues by status and type, and the most recently created issues.

Examples:
  sprintlens overview
  sprintlens overview --issue-type Bug --created-after "30 days ago"`,
	PreRunE: viewSetupWrapper,
	Run:     viewRun("overview", core.ExecuteOverview),
}

// helicopterCmd shows the portfolio of projects.
var helicopterCmd = &cobra.Command{
	Use:   "helicopter",
	Short: "Show projects by type and by lead.",
	Long: `Give a portfolio view across all projects: counts by project type and by
lead, the project list and the average number of projects per lead.

Examples:
  sprintlens helicopter
  sprintlens helicopter --output json`,
	PreRunE: viewSetupWrapper,
	Run:     viewRun("helicopter view", core.ExecuteHelicopter),
}

// dashboardCmd shows the personal dashboard of one user.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the personal dashboard of one user.",
	Long: `Show completed work, hours logged, leave and weekly hours for one account.
The account can be set once in .sprintlens.yaml with the "user" key.

Examples:
  sprintlens dashboard --user u1
  SPRINTLENS_USER=u2 sprintlens dashboard`,
	PreRunE: viewSetupWrapper,
	Run:     viewRun("dashboard", core.ExecuteDashboard),
}
