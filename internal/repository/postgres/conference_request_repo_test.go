package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"conferencehub/internal/domain"
)

var pendingRequestColumns = []string{"id", "conference_id", "requested_by", "request_type", "status", "details", "created_at",
	"reviewed_at", "reviewed_by", "title", "username", "first_name", "last_name", "email"}

func pendingRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows(pendingRequestColumns).
		AddRow("req-1", "conf-1", "prof-1", "approval", status, "", testTime, nil, nil,
			"Go Summit", "nour", "نور", "", "nour@example.com")
}

func TestConferenceRequestRepository_Resolve(t *testing.T) {
	ctx := context.Background()
	approve, _ := domain.ResolutionFor(domain.ReviewApprove)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "approve moves request and conference",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`WHERE r.id = \$1 FOR UPDATE OF r`).
					WithArgs("req-1").
					WillReturnRows(pendingRow("pending"))
				mock.ExpectExec(`UPDATE conference_requests SET status = \$1`).
					WithArgs("approved", "user-admin", testTime, "req-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE conferences SET status = \$1`).
					WithArgs("approved", testTime, "conf-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "unknown request",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE OF r`).
					WithArgs("req-1").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "already resolved",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE OF r`).
					WithArgs("req-1").
					WillReturnRows(pendingRow("rejected"))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrRequestNotPending,
		},
		{
			name: "conference update failure rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FOR UPDATE OF r`).
					WillReturnRows(pendingRow("pending"))
				mock.ExpectExec(`UPDATE conference_requests`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE conferences`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			pr, err := NewConferenceRequestRepository(db).Resolve(ctx, "req-1", approve, "user-admin", testTime)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, pr)
			} else {
				require.NoError(t, err)
				require.Equal(t, domain.RequestApproved, pr.Request.Status)
				require.Equal(t, "user-admin", *pr.Request.ReviewedBy)
				require.Equal(t, testTime, *pr.Request.ReviewedAt)
				require.Equal(t, "Go Summit", pr.ConferenceTitle)
				require.Equal(t, "nour@example.com", pr.RequesterEmail)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConferenceRequestRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE r.status = 'pending' ORDER BY r.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(pendingRequestColumns).
			AddRow("req-1", "conf-1", "prof-1", "approval", "pending", "", testTime, nil, nil, "A", "nour", "نور", "سعيد", "n@example.com").
			AddRow("req-2", "conf-2", "prof-2", "cancellation", "pending", "", testTime, nil, nil, "B", "omar", "", "", "o@example.com"))

	list, err := NewConferenceRequestRepository(db).ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "نور سعيد", list[0].RequesterName)
	require.Equal(t, "omar", list[1].RequesterName)
	require.Nil(t, list[0].Request.ReviewedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
