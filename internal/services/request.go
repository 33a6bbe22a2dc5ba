package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

type requestService struct {
	requestRepo    domain.ConferenceRequestRepository
	conferenceRepo domain.ConferenceRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewRequestService returns the conference approval workflow.
func NewRequestService(
	requestRepo domain.ConferenceRequestRepository,
	conferenceRepo domain.ConferenceRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RequestService {
	return &requestService{
		requestRepo:    requestRepo,
		conferenceRepo: conferenceRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// Submit files a request against a conference. Only its organizer may do so.
func (s *requestService) Submit(ctx context.Context, actor *domain.Profile, conferenceID, requestType, details string) (*domain.ConferenceRequest, error) {
	if err := requireProfile(actor); err != nil {
		return nil, err
	}
	requestType = strings.TrimSpace(requestType)
	if !domain.ValidRequestType(requestType) {
		return nil, fmt.Errorf("%w: unknown request type %q", domain.ErrInvalidInput, requestType)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	req := domain.NewConferenceRequest(conf.ID, actor.ID, requestType, strings.TrimSpace(details), s.now())
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (s *requestService) ListPending(ctx context.Context, actor *domain.Profile) ([]*domain.PendingRequest, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return list, nil
}

// Resolve applies an admin decision. The request and its conference move to
// the matching states atomically; a request that is no longer pending is
// rejected with ErrRequestNotPending.
func (s *requestService) Resolve(ctx context.Context, actor *domain.Profile, requestID string, action domain.ReviewAction) (*domain.ConferenceRequest, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	res, ok := domain.ResolutionFor(action)
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pr, err := s.requestRepo.Resolve(ctx, requestID, res, actor.UserID, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrRequestNotPending) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve request: %w", err)
	}

	if pr.RequesterEmail != "" {
		if err := s.emailService.SendRequestResolved(ctx, &domain.RequestResolvedEmailData{
			Email:           pr.RequesterEmail,
			Name:            pr.RequesterName,
			ConferenceTitle: pr.ConferenceTitle,
			RequestType:     pr.Request.RequestType,
			StatusLabel:     res.Request.Label(),
			Approved:        res.Request == domain.RequestApproved,
		}); err != nil {
			s.logger.WarnContext(ctx, "request resolution email failed", "request_id", requestID, "err", err)
		}
	}
	return pr.Request, nil
}
