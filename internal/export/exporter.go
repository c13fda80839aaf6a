package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"imagepuller/internal/cliargs"
	"imagepuller/internal/config"
	"imagepuller/internal/fileutil"
	"imagepuller/internal/graph"
	"imagepuller/internal/logging"
	"imagepuller/internal/services"
	"imagepuller/internal/textutil"
)

const photoFileMode os.FileMode = 0o644

// WriteFunc streams r into dst and reports the bytes written.
type WriteFunc func(ctx context.Context, dst string, r io.Reader, mode os.FileMode) (int64, error)

// Exporter saves profile photos. Directory is required; Logger and Writer
// fall back to a no-op logger and fileutil.WriteStream.
type Exporter struct {
	Directory graph.Directory
	Logger    *slog.Logger
	Writer    WriteFunc
	// NewID generates correlation IDs; uuid.NewString when nil.
	NewID func() string
}

// ExportAll exports every identifier and returns once all attempts have
// settled. Identifiers run concurrently, capped by cfg.Concurrency() when it
// is positive. Per-identifier problems never produce an error; the returned
// error is only set when ctx ends before the batch completes.
func (e *Exporter) ExportAll(ctx context.Context, identifiers []string, targetDir string, cfg cliargs.ExportConfig) (Summary, error) {
	logger := e.logger()
	start := time.Now()

	e.warnOnUnsupportedSize(cfg.Size())

	results := make([]Result, len(identifiers))
	var group errgroup.Group
	if limit := cfg.Concurrency(); limit > 0 {
		group.SetLimit(limit)
	}
	for i, identifier := range identifiers {
		group.Go(func() error {
			results[i] = e.ExportOne(ctx, identifier, targetDir, cfg)
			return nil
		})
	}
	_ = group.Wait()

	summary := summarize(results, time.Since(start))
	logger.Info("export batch finished",
		logging.Int("people", summary.Total()),
		logging.Int("saved", summary.Saved),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Duration),
	)
	if err := ctx.Err(); err != nil {
		return summary, batchError(err)
	}
	return summary, nil
}

func batchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "export", "batch", "deadline reached before all people were processed", err)
	}
	return fmt.Errorf("export interrupted before all people were processed: %w", err)
}

// ExportOne runs the pipeline for a single identifier. It writes at most one
// file and never returns an error; the Result carries the outcome.
func (e *Exporter) ExportOne(ctx context.Context, identifier, targetDir string, cfg cliargs.ExportConfig) Result {
	start := time.Now()
	result := Result{Identifier: identifier, CorrelationID: e.newID()}

	ctx = services.WithIdentifier(ctx, identifier)
	ctx = services.WithRequestID(ctx, result.CorrelationID)
	finish := func(outcome Outcome, reason string, err error) Result {
		result.Outcome = outcome
		result.Reason = reason
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := ctx.Err(); err != nil {
		return finish(OutcomeFailed, ReasonCanceled, err)
	}

	stepCtx := services.WithStep(ctx, "resolve")
	person, match, err := e.Directory.ResolvePerson(stepCtx, identifier)
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			e.warn(stepCtx, "no users matched the provided identifier, skipping", ReasonNotFound, err)
			return finish(OutcomeSkipped, ReasonNotFound, err)
		}
		e.warn(stepCtx, "people search failed, skipping", ReasonLookupFailed, err)
		return finish(OutcomeFailed, ReasonLookupFailed, err)
	}
	result.Person = person
	result.Match = match
	if match.Ambiguous {
		logging.WarnWithReason(logging.WithContext(stepCtx, e.logger()),
			"multiple users matched the provided identifier, using first",
			"ambiguous_match",
			logging.Int("matches", match.Count),
			logging.String("person_id", person.ID),
			logging.String("display_name", person.DisplayName),
			logging.String(logging.FieldImpact, "photo saved for the first match"),
		)
	}

	stepCtx = services.WithStep(ctx, "photo_metadata")
	ext, err := e.Directory.PhotoExtension(stepCtx, person.ID)
	if err != nil {
		e.warn(stepCtx, "no photo was found for the resolved user, skipping", ReasonNoPhotoMetadata, err, logging.String("person_id", person.ID))
		return finish(classify(err), ReasonNoPhotoMetadata, err)
	}

	name, ok := FileName(person, ext)
	if !ok {
		err := services.Wrap(services.ErrValidation, "export", "name", "resolved user has no given name or surname", nil)
		e.warn(stepCtx, "resolved user has no usable name, skipping", ReasonNoName, err, logging.String("person_id", person.ID))
		return finish(OutcomeSkipped, ReasonNoName, err)
	}
	dest := filepath.Join(targetDir, name)

	stepCtx = services.WithStep(ctx, "photo_binary")
	body, err := e.Directory.PhotoBinary(stepCtx, person.ID, cfg.Size())
	if err != nil {
		e.warn(stepCtx, "no photo was found for the resolved user, skipping", ReasonNoPhoto, err,
			logging.String("person_id", person.ID),
			logging.String("size", cfg.Size()),
		)
		return finish(classify(err), ReasonNoPhoto, err)
	}
	defer body.Close()

	stepCtx = services.WithStep(ctx, "write")
	written, err := e.writer()(stepCtx, dest, body, photoFileMode)
	result.Bytes = written
	if err != nil {
		e.warn(stepCtx, "failed to save photo", ReasonWriteFailed, err, logging.String("path", dest))
		return finish(OutcomeFailed, ReasonWriteFailed, err)
	}
	result.Path = dest

	logging.WithContext(stepCtx, e.logger()).Info("photo saved",
		logging.String("path", dest),
		logging.Int64("bytes", written),
	)
	return finish(OutcomeSaved, "", nil)
}

// FileName derives the lower-cased "{given}.{surname}.{ext}" destination
// name. Path separators inside the parts are replaced so the file always lands
// directly in the target directory. ok is false when the person has neither a
// given name nor a surname.
func FileName(person graph.Person, ext string) (string, bool) {
	given := textutil.SanitizeNamePart(person.GivenName)
	surname := textutil.SanitizeNamePart(person.Surname)
	if given == "" && surname == "" {
		return "", false
	}
	name := fmt.Sprintf("%s.%s.%s", given, surname, textutil.SanitizeNamePart(ext))
	return cases.Lower(language.Und).String(name), true
}

// classify maps a lookup error onto an outcome: expected absences are skips,
// anything else (rejected token, cancellation) is a failure.
func classify(err error) Outcome {
	if errors.Is(err, graph.ErrUnauthorized) || errors.Is(err, context.Canceled) {
		return OutcomeFailed
	}
	if services.IsSkip(err) {
		return OutcomeSkipped
	}
	return OutcomeFailed
}

func (e *Exporter) warnOnUnsupportedSize(size string) {
	n, err := strconv.Atoi(size)
	if err == nil && config.IsSupportedPhotoSize(n) {
		return
	}
	logging.WarnWithReason(e.logger(), "photo size is not one the Graph API documents, passing through", "unsupported_size",
		logging.String("size", size),
		logging.Any("supported", config.SupportedPhotoSizes),
		logging.String(logging.FieldImpact, "photo requests may fail and be skipped"),
	)
}

func (e *Exporter) warn(ctx context.Context, msg, reason string, err error, attrs ...logging.Attr) {
	attrs = append(attrs, logging.Error(err))
	logging.WarnWithReason(logging.WithContext(ctx, e.logger()), msg, reason, attrs...)
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}

func (e *Exporter) writer() WriteFunc {
	if e.Writer == nil {
		return fileutil.WriteStream
	}
	return e.Writer
}

func (e *Exporter) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}
