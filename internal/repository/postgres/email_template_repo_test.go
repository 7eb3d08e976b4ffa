package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"recibo/internal/domain"
)

func TestEmailTemplateRepoGetDefaultByType_RequiresDefaultFlag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailTemplateRepo(db)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM email_templates WHERE type = $1 AND is_default = TRUE AND is_active = TRUE LIMIT 1")).
		WithArgs(string(domain.EmailTemplateReceiptSent)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "type", "subject", "html_content", "text_content", "is_default", "is_active", "created_at", "updated_at"}).
			AddRow(id.String(), "Receipt Sent", "receipt_sent", "Receipt {{receipt_id}}", "<p>hi</p>", "hi", true, true, now, now))

	tmpl, err := repo.GetDefaultByType(context.Background(), domain.EmailTemplateReceiptSent)

	assert.NoError(t, err)
	assert.Equal(t, id, tmpl.ID)
	assert.True(t, tmpl.IsDefault)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTemplateRepoGetDefaultByType_NoDefaultIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailTemplateRepo(db)

	// Active non-default templates must not be returned as a fallback.
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM email_templates WHERE type = $1 AND is_default = TRUE AND is_active = TRUE LIMIT 1")).
		WithArgs(string(domain.EmailTemplateInvoiceSent)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDefaultByType(context.Background(), domain.EmailTemplateInvoiceSent)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTemplateRepoSetDefault_DemotesSiblingsThenPromotes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmailTemplateRepo(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT type FROM email_templates WHERE id = $1 AND is_active = TRUE")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"type"}).AddRow("receipt_sent"))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE email_templates SET is_default = FALSE, updated_at = $1 WHERE type = $2 AND id <> $3 AND is_default = TRUE")).
		WithArgs(sqlmock.AnyArg(), string(domain.EmailTemplateReceiptSent), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE email_templates SET is_default = TRUE, updated_at = $1 WHERE id = $2")).
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.SetDefault(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
