package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"conferencehub/internal/domain"
)

type conferenceRequestRepository struct {
	DB *sql.DB
}

func NewConferenceRequestRepository(db *sql.DB) domain.ConferenceRequestRepository {
	return &conferenceRequestRepository{DB: db}
}

// pendingRequestSelect joins a request with its conference title and the requester's account.
const pendingRequestSelect = `
	SELECT r.id, r.conference_id, r.requested_by, r.request_type, r.status, r.details, r.created_at, r.reviewed_at, r.reviewed_by,
	       c.title, u.username, u.first_name, u.last_name, u.email
	FROM conference_requests r
	JOIN conferences c ON c.id = r.conference_id
	JOIN profiles p ON p.id = r.requested_by
	JOIN users u ON u.id = p.user_id
`

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertRequest(ctx context.Context, q rowQuerier, req *domain.ConferenceRequest) error {
	query := `
		INSERT INTO conference_requests (conference_id, requested_by, request_type, status, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return q.QueryRowContext(ctx, query,
		req.ConferenceID, req.RequestedBy, req.RequestType, req.Status, req.Details, req.CreatedAt,
	).Scan(&req.ID)
}

func (r *conferenceRequestRepository) Create(ctx context.Context, req *domain.ConferenceRequest) error {
	return insertRequest(ctx, r.DB, req)
}

func (r *conferenceRequestRepository) ListPending(ctx context.Context) ([]*domain.PendingRequest, error) {
	rows, err := r.DB.QueryContext(ctx, pendingRequestSelect+` WHERE r.status = 'pending' ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.PendingRequest
	for rows.Next() {
		pr, err := scanPendingRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// Resolve locks the request row, checks it is still pending, then writes the
// request and conference states before committing.
func (r *conferenceRequestRepository) Resolve(ctx context.Context, requestID string, res domain.Resolution, reviewerID string, reviewedAt time.Time) (*domain.PendingRequest, error) {
	var out *domain.PendingRequest
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		pr, err := scanPendingRequest(tx.QueryRowContext(ctx, pendingRequestSelect+` WHERE r.id = $1 FOR UPDATE OF r`, requestID))
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if pr.Request.Status != domain.RequestPending {
			return domain.ErrRequestNotPending
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE conference_requests SET status = $1, reviewed_by = $2, reviewed_at = $3 WHERE id = $4`,
			res.Request, reviewerID, reviewedAt, requestID,
		); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`UPDATE conferences SET status = $1, updated_at = $2 WHERE id = $3`,
			res.Conference, reviewedAt, pr.Request.ConferenceID,
		)
		if err != nil {
			return err
		}
		if err := expectAffected(result); err != nil {
			return err
		}

		pr.Request.Status = res.Request
		pr.Request.ReviewedBy = &reviewerID
		pr.Request.ReviewedAt = &reviewedAt
		out = pr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanPendingRequest(row scanner) (*domain.PendingRequest, error) {
	req := &domain.ConferenceRequest{}
	var reviewedAt sql.NullTime
	var reviewedBy sql.NullString
	var title, username, firstName, lastName, email string
	if err := row.Scan(
		&req.ID, &req.ConferenceID, &req.RequestedBy, &req.RequestType, &req.Status, &req.Details, &req.CreatedAt, &reviewedAt, &reviewedBy,
		&title, &username, &firstName, &lastName, &email,
	); err != nil {
		return nil, err
	}
	req.ReviewedAt = timePtr(reviewedAt)
	req.ReviewedBy = stringPtr(reviewedBy)

	name := domain.JoinName(firstName, lastName)
	if name == "" {
		name = username
	}
	return &domain.PendingRequest{
		Request:         req,
		ConferenceTitle: title,
		RequesterName:   name,
		RequesterEmail:  email,
	}, nil
}
