package cli

import (
	"cptask-tools/internal/models"
	"cptask-tools/internal/services"
	"cptask-tools/internal/utils"
	"cptask-tools/internal/validation"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (a *app) buildMapShortNamesCommand() *cobra.Command {
	var opts paramOptions

	cmd := &cobra.Command{
		Use:   "map-shortnames",
		Short: "Resolve the company_id column of a CSV file against the short name export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "Company ID and Short Name Mapper", func(rc *runContext) error {
				return a.mapShortNames(rc, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) mapShortNamesRequest(rc *runContext, opts paramOptions) (models.MapShortNamesRequest, error) {
	paths := rc.cfg.Paths
	req := models.MapShortNamesRequest{OutputDir: paths.OutputDir}
	if paths.MappingFile != "" {
		req.MappingFile = filepath.Join(paths.InputDir, paths.MappingFile)
	}

	if opts.params != "" {
		var params models.MapShortNamesRequest
		if err := validation.LoadParams(opts.params, "map-shortnames", &params); err != nil {
			return req, err
		}
		req.InputFile = params.InputFile
		if params.MappingFile != "" {
			req.MappingFile = params.MappingFile
		}
		if params.OutputDir != "" {
			req.OutputDir = params.OutputDir
		}
		return req, nil
	}

	if req.MappingFile == "" {
		return req, models.ValidationError("no mapping file configured (set MAPPING_FILE)")
	}
	files, err := inputFiles(paths.InputDir, req.MappingFile)
	if err != nil {
		return req, err
	}
	rc.printer.Success("Found %d CSV file(s) in %s", len(files), paths.InputDir)
	req.InputFile, err = a.prompter.SelectFile("Select a file to process", files)
	return req, err
}

func (a *app) mapShortNames(rc *runContext, opts paramOptions) error {
	p := rc.printer

	req, err := a.mapShortNamesRequest(rc, opts)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := requireFile(req.MappingFile); err != nil {
		return err
	}
	p.Field("Selected", filepath.Base(req.InputFile))

	p.Step(1, "Mapping company IDs to short names...")
	res, err := services.NewMappingService(rc.logger).MapShortNames(req)
	if err != nil {
		return err
	}
	p.Success("Loaded %d company_id to short_name mappings from %s", res.MappingEntries, filepath.Base(req.MappingFile))
	p.Info("Loaded in %s seconds", utils.FormatSeconds(res.LoadTime))
	if res.Overwrites > 0 {
		p.Info("%d duplicate company id(s) in the mapping, last occurrence kept", res.Overwrites)
	}
	p.Success("Mapping completed in %s seconds", utils.FormatSeconds(res.MapTime))
	p.Success("Processed %d company IDs", res.Processed)

	p.Section("Summary")
	p.Field("Records with short_name", res.Resolved)
	p.Field("Records without short_name", res.Unresolved)
	p.Field("Output file", res.Path)
	return nil
}

func (a *app) buildProfileURLsCommand() *cobra.Command {
	var opts paramOptions

	cmd := &cobra.Command{
		Use:   "profile-urls",
		Short: "Add company profile URLs to a mapped short name file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "Owler Profile URL Generator", func(rc *runContext) error {
				return a.profileURLs(rc, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) profileURLRequest(rc *runContext, opts paramOptions) (models.ProfileURLRequest, error) {
	req := models.ProfileURLRequest{OutputDir: rc.cfg.Paths.OutputDir}

	if opts.params != "" {
		var params models.ProfileURLRequest
		if err := validation.LoadParams(opts.params, "profile-urls", &params); err != nil {
			return req, err
		}
		req.InputFile = params.InputFile
		if params.OutputDir != "" {
			req.OutputDir = params.OutputDir
		}
		return req, nil
	}

	files, err := mappedFiles(rc.cfg.Paths.OutputDir)
	if err != nil {
		return req, err
	}
	rc.printer.Success("Found %d mapped file(s) in %s", len(files), rc.cfg.Paths.OutputDir)
	req.InputFile, err = a.prompter.SelectFile("Select a file to process", files)
	return req, err
}

func (a *app) profileURLs(rc *runContext, opts paramOptions) error {
	p := rc.printer

	req, err := a.profileURLRequest(rc, opts)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	p.Field("Selected", filepath.Base(req.InputFile))

	p.Step(1, "Generating profile URLs...")
	res, err := services.NewProfileService(rc.cfg.Profile.BaseURL, rc.logger).GenerateURLs(req)
	if err != nil {
		return err
	}
	p.Success("Processed %d records", res.Processed)
	if res.Skipped > 0 {
		p.Warn("%d row(s) without _id skipped", res.Skipped)
	}

	p.Section("Summary")
	p.Field("Records with URL", res.WithURL)
	p.Field("Records without URL", res.WithoutURL)
	p.Field("Output file", res.Path)
	return nil
}
