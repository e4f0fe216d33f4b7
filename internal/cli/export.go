package cli

import (
	"cptask-tools/internal/models"
	"cptask-tools/internal/services"
	"cptask-tools/internal/utils"
	"cptask-tools/internal/validation"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) buildExportTaskCompaniesCommand() *cobra.Command {
	var opts paramOptions

	cmd := &cobra.Command{
		Use:   "export-task-companies",
		Short: "Export the company ids of cp_task documents of one task type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "MongoDB Task Company Exporter", func(rc *runContext) error {
				return a.exportTaskCompanies(rc, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) exportTaskCompanies(rc *runContext, opts paramOptions) error {
	p := rc.printer

	var req models.ExportTaskCompaniesRequest
	if opts.params == "" {
		var err error
		if req, err = a.prompter.ExportTaskCompanies(rc.cfg.Defaults.ExportLimit); err != nil {
			return err
		}
	} else {
		if err := validation.LoadParams(opts.params, "export-task-companies", &req); err != nil {
			return err
		}
		if req.Limit == 0 {
			req.Limit = rc.cfg.Defaults.ExportLimit
		}
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	p.Step(1, "Connecting to MongoDB...")
	return a.connect(rc.ctx, rc.cfg.MongoDB, rc.logger, func(store Store) error {
		p.Success("Connected to %s", store.DatabaseName())

		p.Step(2, "Fetching %s tasks from '%s' (limit: %d)...", req.TaskType, rc.cfg.MongoDB.TaskCollection, req.Limit)
		svc := services.NewExportService(store, store, rc.cfg.Paths.OutputDir, rc.logger)
		res, err := svc.ExportTaskCompanies(rc.ctx, req)
		if err != nil {
			return err
		}
		p.Success("Query completed in %s seconds", utils.FormatSeconds(res.Elapsed))
		p.Success("Retrieved %d documents", res.Retrieved)

		if res.Path == "" {
			p.Warn("No results to export")
			return nil
		}

		p.Step(3, "Writing results to CSV...")
		p.Success("Data exported to %s", res.Path)
		p.Field("Total records", res.Written)
		p.Field("Columns", strings.Join(res.Columns, ", "))
		return nil
	})
}

func (a *app) buildExportShortNamesCommand() *cobra.Command {
	var opts paramOptions

	cmd := &cobra.Command{
		Use:   "export-shortnames",
		Short: "Export company_id,short_name pairs of the company collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "MongoDB Company ID and Short Name Fetcher", func(rc *runContext) error {
				return a.exportShortNames(rc, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) exportShortNames(rc *runContext, opts paramOptions) error {
	p := rc.printer
	defaults := rc.cfg.Defaults

	var req models.ExportShortNamesRequest
	if opts.params == "" {
		var err error
		if req, err = a.prompter.ExportShortNames(defaults.ShortNameLimit, defaults.BatchSize); err != nil {
			return err
		}
	} else {
		if err := validation.LoadParams(opts.params, "export-shortnames", &req); err != nil {
			return err
		}
		if req.Limit == 0 {
			req.Limit = defaults.ShortNameLimit
		}
		if req.BatchSize == 0 {
			req.BatchSize = defaults.BatchSize
		}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p.Step(1, "Connecting to MongoDB...")
	return a.connect(rc.ctx, rc.cfg.MongoDB, rc.logger, func(store Store) error {
		p.Success("Connected to %s", store.DatabaseName())

		p.Step(2, "Fetching company ids with short names from '%s' (limit: %d, batch size: %d)...",
			rc.cfg.MongoDB.CompanyCollection, req.Limit, req.BatchSize)
		svc := services.NewExportService(store, store, rc.cfg.Paths.OutputDir, rc.logger)
		res, err := svc.ExportShortNames(rc.ctx, req)
		if err != nil {
			return err
		}
		p.Success("Query completed in %s seconds", utils.FormatSeconds(res.Elapsed))
		p.Success("Retrieved %d documents with short names", res.Retrieved)

		if res.Path == "" {
			p.Warn("No results found")
			return nil
		}
		p.Success("Data exported to %s", res.Path)
		p.Field("Total records", res.Written)
		if skipped := res.Retrieved - res.Written; skipped > 0 {
			p.Field("Skipped (empty short name)", skipped)
		}
		return nil
	})
}
