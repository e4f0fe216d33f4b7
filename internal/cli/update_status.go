package cli

import (
	"cptask-tools/internal/models"
	"cptask-tools/internal/services"
	"cptask-tools/internal/validation"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) buildUpdateStatusCommand() *cobra.Command {
	var opts paramOptions

	cmd := &cobra.Command{
		Use:   "update-status",
		Short: "Move cp_task documents from one status to another",
		Long: `Sets a new status on cp_task documents currently in the old status
(OPEN -> CLEAR_QUEUE unless configured otherwise), filtered by task type and
optionally by company id. With a limit, at most that many documents are
selected first and only those are updated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "Task Status Updater", func(rc *runContext) error {
				return a.updateStatus(rc, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) transitionRequest(rc *runContext, opts paramOptions) (models.TransitionRequest, error) {
	oldStatus := models.TaskStatus(rc.cfg.Status.Old)
	newStatus := models.TaskStatus(rc.cfg.Status.New)

	if opts.params == "" {
		return a.prompter.Transition(oldStatus, newStatus)
	}

	var req models.TransitionRequest
	if err := validation.LoadParams(opts.params, "update-status", &req); err != nil {
		return models.TransitionRequest{}, err
	}
	if req.OldStatus == "" {
		req.OldStatus = oldStatus
	}
	if req.NewStatus == "" {
		req.NewStatus = newStatus
	}
	return req, nil
}

func (a *app) updateStatus(rc *runContext, opts paramOptions) error {
	p := rc.printer

	req, err := a.transitionRequest(rc, opts)
	if err != nil {
		return err
	}
	filter, err := services.Plan(&req)
	if err != nil {
		return err
	}

	p.Section("Parameters")
	p.Field("Filter", filter.String())
	p.Field("New status", req.NewStatus)
	p.Field("Limit", limitText(req.Limit))
	if filter.CompanyID != nil {
		p.Field("Company ID type", filter.CompanyID.Kind)
	}

	if !opts.yes {
		title := fmt.Sprintf("Update status from %s to %s?", req.OldStatus, req.NewStatus)
		if err := a.prompter.Confirm(title, filter.String()); err != nil {
			return err
		}
	}

	p.Step(1, "Connecting to MongoDB...")
	return a.connect(rc.ctx, rc.cfg.MongoDB, rc.logger, func(store Store) error {
		p.Success("Connected to %s", store.DatabaseName())

		p.Step(2, "Updating documents in '%s'...", rc.cfg.MongoDB.TaskCollection)
		res, err := services.NewTransitionService(store, rc.logger).Transition(rc.ctx, req)
		if err != nil {
			return err
		}
		if res.NoDocuments {
			p.Warn("No documents found to update")
			return nil
		}

		p.Section("Summary")
		if res.Limited {
			p.Field("Documents selected", res.Candidates)
		} else {
			p.Field("Documents found", res.Candidates)
		}
		p.Field("Matched", res.Matched)
		p.Field("Modified", res.Modified)
		if res.Remaining != nil {
			p.Field(fmt.Sprintf("Still in %s", req.OldStatus), *res.Remaining)
		}
		if res.Warning != nil {
			p.Warn("%s", res.Warning)
		}
		return nil
	})
}

func limitText(limit *int64) string {
	if limit == nil {
		return "none"
	}
	return fmt.Sprint(*limit)
}
