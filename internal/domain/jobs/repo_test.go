package jobs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJobRow feeds scanJob the column values a query would return, in the
// repo's RETURNING/SELECT order.
type fakeJobRow struct {
	id             uuid.UUID
	constructionID uuid.UUID
	fileName       string
	status         string
	errMsg         pgtype.Text
	createdAt      time.Time
	completedAt    *time.Time
}

func (r fakeJobRow) Scan(dest ...any) error {
	*dest[0].(*uuid.UUID) = r.id
	*dest[1].(*uuid.UUID) = r.constructionID
	*dest[2].(*string) = r.fileName
	*dest[3].(*string) = r.status
	*dest[4].(*pgtype.Text) = r.errMsg
	*dest[5].(*time.Time) = r.createdAt
	*dest[6].(**time.Time) = r.completedAt
	return nil
}

func TestScanJobNullErrorMessage(t *testing.T) {
	// A freshly created job has never been failed; the column can be NULL on
	// rows that predate the NOT NULL default, and the scan must tolerate it.
	row := fakeJobRow{
		id:             uuid.New(),
		constructionID: uuid.New(),
		fileName:       "invoice.jpg",
		status:         string(StatusPending),
		errMsg:         pgtype.Text{Valid: false},
		createdAt:      time.Now(),
	}
	j, err := scanJob(row)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, j.Status)
	assert.Equal(t, "", j.ErrorMessage)
	assert.Nil(t, j.CompletedAt)
}

func TestScanJobFailedRow(t *testing.T) {
	done := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row := fakeJobRow{
		id:             uuid.New(),
		constructionID: uuid.New(),
		fileName:       "invoice.jpg",
		status:         string(StatusFailed),
		errMsg:         pgtype.Text{String: "vision timed out", Valid: true},
		createdAt:      done.Add(-time.Minute),
		completedAt:    &done,
	}
	j, err := scanJob(row)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, j.Status)
	assert.Equal(t, "vision timed out", j.ErrorMessage)
	require.NotNil(t, j.CompletedAt)
	assert.Equal(t, done, *j.CompletedAt)
}
