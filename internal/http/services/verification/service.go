package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/Zee-2005/safara-sub000/internal/credential"
	"github.com/Zee-2005/safara-sub000/internal/document/aadhaar"
	"github.com/Zee-2005/safara-sub000/internal/document/blobstore"
	"github.com/Zee-2005/safara-sub000/internal/document/extract"
	"github.com/Zee-2005/safara-sub000/internal/metrics"
	"github.com/Zee-2005/safara-sub000/internal/notify"
	"github.com/Zee-2005/safara-sub000/internal/observability/logger"
	"github.com/Zee-2005/safara-sub000/internal/store/core"
	"github.com/Zee-2005/safara-sub000/internal/util"
	"github.com/Zee-2005/safara-sub000/internal/validation"
)

// Service implements Pipeline over the application repository, the
// encrypted blob store and the extraction adapter.
type Service struct {
	repo     core.ApplicationRepository
	blobs    *blobstore.Store
	extract  *extract.Adapter
	notifier notify.Notifier
	issuer   *credential.Issuer // optional; nil disables credentials

	// Concurrent verify calls on the same application converge on one
	// deterministic result, so they share a single run.
	verifyGroup singleflight.Group
}

func NewService(repo core.ApplicationRepository, blobs *blobstore.Store, ex *extract.Adapter, n notify.Notifier, issuer *credential.Issuer) *Service {
	if n == nil {
		n = notify.Noop{}
	}
	return &Service{repo: repo, blobs: blobs, extract: ex, notifier: n, issuer: issuer}
}

// Register opens an application, or returns the existing active one for
// the same mobile+email pair unchanged.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*core.Application, bool, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Register"))

	in.FullName = strings.TrimSpace(in.FullName)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.FullName == "" || in.Mobile == "" || in.Email == "" {
		return nil, false, ErrMissingFields
	}
	if !validation.ValidFullName(in.FullName) {
		return nil, false, ErrMissingFields
	}
	if !validation.ValidMobile(in.Mobile) || !validation.ValidEmail(in.Email) {
		return nil, false, ErrInvalidContact
	}

	if existing, err := s.repo.FindActiveByContact(ctx, in.Mobile, in.Email); err == nil {
		log.Info("register reused active application",
			logger.ApplicationID(existing.ID),
			logger.ApplicationStatus(string(existing.Status)),
		)
		return existing, false, nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, false, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	now := time.Now().UTC()
	app := &core.Application{
		ID:             uuid.NewString(),
		FullName:       in.FullName,
		Mobile:         in.Mobile,
		Email:          in.Email,
		MobileVerified: in.MobileVerified,
		EmailVerified:  in.EmailVerified,
		Status:         core.StatusPendingVerification,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, core.ErrConflict) {
			// Raced another register for the same contact; hand back
			// whichever record won.
			if existing, ferr := s.repo.FindActiveByContact(ctx, in.Mobile, in.Email); ferr == nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	log.Info("application registered",
		logger.ApplicationID(app.ID),
		logger.String("mobile", util.MaskMobile(app.Mobile)),
		logger.String("email", util.MaskEmail(app.Email)),
	)
	return app, true, nil
}

func (s *Service) Get(ctx context.Context, id string) (*core.Application, error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	return app, nil
}

// AttachDocument validates, encrypts and stores the document, then
// records its descriptor on the application. Status is untouched.
// Validation happens before any encryption or disk work.
func (s *Service) AttachDocument(ctx context.Context, id string, raw []byte, mediaType string) (*core.Application, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("AttachDocument"),
		logger.ApplicationID(id),
	)

	canonical, ok := validation.AllowedMediaType(mediaType)
	if !ok {
		metrics.DocumentUploads.WithLabelValues("rejected").Inc()
		return nil, ErrMediaType
	}
	if len(raw) == 0 {
		metrics.DocumentUploads.WithLabelValues("rejected").Inc()
		return nil, ErrEmptyDocument
	}
	if int64(len(raw)) > validation.MaxDocumentSize {
		metrics.DocumentUploads.WithLabelValues("rejected").Inc()
		return nil, ErrDocumentTooBig
	}

	app, err := s.Get(ctx, id)
	if err != nil {
		metrics.DocumentUploads.WithLabelValues("rejected").Inc()
		return nil, err
	}

	meta, err := s.blobs.Save(ctx, app.ID, raw, canonical)
	if err != nil {
		metrics.DocumentUploads.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	prev := app.Document
	app.Document = &meta
	app.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, app); err != nil {
		_ = s.blobs.Remove(meta)
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	if prev != nil {
		if err := s.blobs.Remove(*prev); err != nil {
			log.Warn("previous blob not removed", logger.BlobName(prev.Path), logger.Err(err))
		}
	}

	metrics.DocumentUploads.WithLabelValues("accepted").Inc()
	log.Info("document attached",
		logger.MediaType(canonical),
		logger.Int("size", len(raw)),
	)
	return app, nil
}

// Verify runs the document check. A cipher integrity failure or storage
// error aborts without touching the record; a checksum failure is the
// normal manual_review outcome, not an error.
func (s *Service) Verify(ctx context.Context, id string) (*VerifyOutcome, error) {
	v, err, _ := s.verifyGroup.Do(id, func() (any, error) {
		return s.verifyOnce(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*VerifyOutcome), nil
}

func (s *Service) verifyOnce(ctx context.Context, id string) (*VerifyOutcome, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("Verify"),
		logger.ApplicationID(id),
	)

	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Document == nil {
		return nil, ErrNoDocument
	}

	raw, err := s.blobs.Load(ctx, *app.Document)
	if err != nil {
		// NotFound and integrity failures propagate untyped-from-here;
		// the record keeps its prior state and the call is retryable.
		metrics.VerificationOutcomes.WithLabelValues("error").Inc()
		return nil, err
	}

	start := time.Now()
	text := s.extract.Text(ctx, raw, app.Document.MediaType)
	metrics.TextExtractionSeconds.Observe(time.Since(start).Seconds())

	res := aadhaar.ExtractAndValidate(text)
	dob, _ := aadhaar.ExtractDOB(text)
	if res.Repaired {
		metrics.OCRRepairs.Inc()
	}

	out := &VerifyOutcome{ChecksumOK: res.ChecksumOK, Repaired: res.Repaired, DOB: dob}
	if res.ChecksumOK {
		app.DocumentVerified = true
		app.IDNumberHash = aadhaar.Digest(res.Candidate)
		app.DateOfBirth = dob
		app.Status = core.StatusVerified
		out.Masked = aadhaar.Mask(res.Candidate)
	} else {
		app.DocumentVerified = false
		app.Status = core.StatusManualReview
	}
	app.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, app); err != nil {
		metrics.VerificationOutcomes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	out.App = app

	metrics.VerificationOutcomes.WithLabelValues(string(app.Status)).Inc()
	log.Info("verification completed",
		logger.ApplicationStatus(string(app.Status)),
		logger.Bool("checksum_ok", res.ChecksumOK),
		logger.Bool("repaired", res.Repaired),
		logger.DurationMs(time.Since(start).Milliseconds()),
	)

	if nerr := s.notifier.StatusChanged(ctx, app.Email, app.FullName, string(app.Status)); nerr != nil {
		log.Warn("status notification failed", logger.Err(nerr))
	}
	return out, nil
}

// Finalize issues the public tourist id. It is gated on a verified
// document and idempotent: a second call returns the same publicId.
func (s *Service) Finalize(ctx context.Context, id string, in FinalizeInput) (*core.Application, string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("Finalize"),
		logger.ApplicationID(id),
	)

	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !app.DocumentVerified {
		return nil, "", ErrNotDocVerified
	}

	if in.MobileVerified != nil {
		app.MobileVerified = *in.MobileVerified
	}
	if in.EmailVerified != nil {
		app.EmailVerified = *in.EmailVerified
	}

	firstFinalize := app.PublicID == ""
	if firstFinalize {
		app.PublicID = newPublicID()
	}
	// Finalization implies full verification regardless of how the
	// contact channels were confirmed upstream.
	app.MobileVerified = true
	app.EmailVerified = true
	app.Status = core.StatusVerified
	app.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	var token string
	if s.issuer != nil {
		token, err = s.issuer.Issue(app.PublicID, app.FullName, app.IDNumberHash, app.DateOfBirth)
		if err != nil {
			// The application is finalized either way; credential
			// issuance can be retried by calling finalize again.
			log.Warn("credential issuance failed", logger.Err(err))
			token = ""
		}
	}

	log.Info("application finalized", logger.PublicID(app.PublicID))
	if firstFinalize {
		if nerr := s.notifier.Finalized(ctx, app.Email, app.FullName, app.PublicID); nerr != nil {
			log.Warn("finalize notification failed", logger.Err(nerr))
		}
	}
	return app, token, nil
}

func newPublicID() string {
	return "SAF-" + strings.ToUpper(uuid.NewString())
}
