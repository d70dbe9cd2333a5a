// Package handler exposes the HTTP handlers of the insurance portal.
// Handlers depend on small store interfaces rather than on the
// concrete repositories so they can be exercised in tests with mock
// stores; the repository types satisfy these interfaces.
package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pojisteni/insurance-agency/internal/model"
)

// dbTimeout bounds the duration of database calls made by a handler.
const dbTimeout = 5 * time.Second

// PolicyHolderStore is the persistence surface needed by the
// policyholder handlers.
type PolicyHolderStore interface {
	Create(ctx context.Context, p *model.PolicyHolder) error
	GetByID(ctx context.Context, id uint64) (*model.PolicyHolder, error)
	List(ctx context.Context, limit, offset int) ([]*model.PolicyHolder, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *model.PolicyHolder) error
	Delete(ctx context.Context, id uint64) error
}

// PolicyStore is the persistence surface needed by the insurance
// policy handlers.
type PolicyStore interface {
	Create(ctx context.Context, p *model.InsurancePolicy) error
	GetByID(ctx context.Context, id uint64) (*model.InsurancePolicy, error)
	List(ctx context.Context, limit, offset int) ([]*model.InsurancePolicy, error)
	ListByHolder(ctx context.Context, holderID uint64) ([]*model.InsurancePolicy, error)
	Count(ctx context.Context) (int, error)
	CountByHolder(ctx context.Context, holderID uint64) (int, error)
	Update(ctx context.Context, p *model.InsurancePolicy) error
	Delete(ctx context.Context, id uint64) error
}

// EventStore is the persistence surface needed by the claim event
// handlers.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	List(ctx context.Context, limit, offset int) ([]*model.Event, error)
	ListByHolder(ctx context.Context, holderID uint64) ([]*model.Event, error)
	Count(ctx context.Context) (int, error)
	CountByHolder(ctx context.Context, holderID uint64) (int, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id uint64) error
}

// UserStore persists application accounts.
type UserStore interface {
	Create(ctx context.Context, username, password string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AttachmentStore writes uploaded files and cleans them up again.
type AttachmentStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parseDate parses a form/JSON date in ISO format (2006-01-02).
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formFile returns the named uploaded file, or nil when the request
// carries none (including non-multipart requests).
func formFile(c echo.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

// badRequest responds with a 400 and the shared error shape.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
