package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"imagepuller/internal/cliargs"
	"imagepuller/internal/config"
	"imagepuller/internal/export"
	"imagepuller/internal/graph"
	"imagepuller/internal/logging"
	"imagepuller/internal/preflight"
	"imagepuller/internal/runlock"
)

var (
	errMissingToken  = fmt.Errorf("must provide an auth token via environment variable %q", config.TokenEnv)
	errMissingTarget = errors.New("a target directory to put images must be provided")
	errMissingPeople = errors.New("a list of users to pull images for must be provided")
)

func runExport(cmd *cobra.Command, ctx *commandContext, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	args, err := ctx.takeConfigFlag(args)
	if err != nil {
		printUsage(errOut)
		return err
	}

	if cliargs.IsHelp(args) {
		printUsage(out)
		return nil
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	req, err := cliargs.Parse(args, cfg.ExportDefaults())
	if err != nil {
		if errors.Is(err, cliargs.ErrUsage) {
			printUsage(errOut)
		}
		return err
	}

	if strings.TrimSpace(cfg.Graph.Token) == "" {
		fmt.Fprintf(errOut, "\tA token can easily be retrieved from: %s\n", tokenHelpURL)
		return errMissingToken
	}
	if req.TargetDir == "" {
		printUsage(errOut)
		return errMissingTarget
	}
	if len(req.People) == 0 {
		printUsage(errOut)
		return errMissingPeople
	}

	runCtx := cmd.Context()
	if failure, failed := preflight.FirstFailure(preflight.RunAll(runCtx, cfg, req.TargetDir)); failed {
		return fmt.Errorf("%s: %s", failure.Name, failure.Detail)
	}

	lock, err := runlock.Acquire(cfg.LockDir(), req.TargetDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	logger, err := logging.NewFromConfig(cfg, errOut)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logging.NewComponentLogger(logger, "export")

	client, err := graph.New(cfg.Graph.Token, cfg.Graph.BaseURL, graph.WithTimeout(cfg.GraphTimeout()))
	if err != nil {
		return err
	}

	logger.Info("export started",
		logging.Int("people", len(req.People)),
		logging.String("target", req.TargetDir),
		logging.String("size", req.Config.Size()),
		logging.Int("concurrency", req.Config.Concurrency()),
		logging.String("options", strings.Join(req.Config.Keys(), ",")),
	)

	exporter := &export.Exporter{Directory: client, Logger: logger}
	summary, batchErr := exporter.ExportAll(runCtx, req.People, req.TargetDir, req.Config)
	if batchErr != nil {
		logger.Error("export batch did not complete", logging.Error(batchErr))
	}

	fmt.Fprintf(out, "Save completed. Images available at %s\n", req.TargetDir)
	printSummary(out, summary)
	return batchErr
}

func printSummary(w io.Writer, summary export.Summary) {
	if summary.Total() == 0 {
		return
	}
	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		detail := r.Reason
		var size string
		if r.Outcome == export.OutcomeSaved {
			detail = r.Path
			size = strconv.FormatInt(r.Bytes, 10)
		}
		rows = append(rows, []string{r.Identifier, string(r.Outcome), size, detail})
	}
	headers := []string{"Person", "Outcome", "Bytes", "Detail"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
	fmt.Fprintln(w, renderTable(headers, rows, aligns))

	colorize := shouldColorize(w)
	fmt.Fprintln(w, renderStatusLine("Saved", statusOK, fmt.Sprintf("%d", summary.Saved), colorize))
	skippedKind := statusInfo
	if summary.Skipped > 0 {
		skippedKind = statusWarn
	}
	fmt.Fprintln(w, renderStatusLine("Skipped", skippedKind, fmt.Sprintf("%d", summary.Skipped), colorize))
	failedKind := statusInfo
	if summary.Failed > 0 {
		failedKind = statusError
	}
	fmt.Fprintln(w, renderStatusLine("Failed", failedKind, fmt.Sprintf("%d", summary.Failed), colorize))
}
