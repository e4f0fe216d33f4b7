package cli

import (
	"cptask-tools/internal/models"
	"cptask-tools/internal/validation"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) buildStatusCountsCommand() *cobra.Command {
	var opts paramOptions

	cmd := &cobra.Command{
		Use:   "status-counts",
		Short: "Show how many cp_task documents of a task type are in each status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "Task Status Breakdown", func(rc *runContext) error {
				return a.statusCounts(rc, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) statusCounts(rc *runContext, opts paramOptions) error {
	p := rc.printer

	var req models.StatusCountsRequest
	if opts.params == "" {
		taskType, err := a.prompter.TaskType()
		if err != nil {
			return err
		}
		req.TaskType = taskType
	} else if err := validation.LoadParams(opts.params, "status-counts", &req); err != nil {
		return err
	}
	req.TaskType = strings.TrimSpace(req.TaskType)
	if err := req.Validate(); err != nil {
		return err
	}

	p.Step(1, "Connecting to MongoDB...")
	return a.connect(rc.ctx, rc.cfg.MongoDB, rc.logger, func(store Store) error {
		p.Success("Connected to %s", store.DatabaseName())

		p.Step(2, "Counting %s tasks by status...", req.TaskType)
		counts, err := store.CountTasksByStatus(rc.ctx, req.TaskType)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			p.Warn("No tasks found for task type %s", req.TaskType)
			return nil
		}

		p.Section("Statuses")
		var total int64
		for _, c := range counts {
			p.Field(c.Status, c.Count)
			total += c.Count
		}
		p.Field("Total", total)
		return nil
	})
}
