// Package updates provides the REST handlers for the update dashboard view.
package updates

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/storeops/sum-backend/database"
	"github.com/storeops/sum-backend/internal/fetch"
	"github.com/storeops/sum-backend/internal/session"
	"github.com/storeops/sum-backend/model"
)

// Store persists refreshed record sets and their audit trail.
type Store interface {
	ReplaceUpdateSet(ctx context.Context, userID string, records []model.UpdateRecord) error
	SaveSnapshot(ctx context.Context, userID string, snap model.StatisticsSnapshot) error
	RecordRefresh(ctx context.Context, rec model.RefreshRecord) error
}

// ArangoStore implements Store against the ArangoDB collections.
type ArangoStore struct {
	DB database.DBConnection
}

func (s *ArangoStore) ReplaceUpdateSet(ctx context.Context, userID string, records []model.UpdateRecord) error {
	return database.ReplaceUpdateSet(ctx, s.DB, userID, records)
}

func (s *ArangoStore) SaveSnapshot(ctx context.Context, userID string, snap model.StatisticsSnapshot) error {
	return database.SaveSnapshot(ctx, s.DB, userID, snap)
}

func (s *ArangoStore) RecordRefresh(ctx context.Context, rec model.RefreshRecord) error {
	return database.RecordRefresh(ctx, s.DB, rec)
}

// Handler carries the dependencies for the update endpoints.
type Handler struct {
	Sessions *session.Manager
	Store    Store
	Upstream *fetch.Client
}

// GetView returns the assembled dashboard view for the user.
func (h *Handler) GetView(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	return c.JSON(h.Sessions.Get(userID).View())
}

// filterRequest is the body for PutFilter.
type filterRequest struct {
	UserID         string   `json:"user_id"`
	Search         string   `json:"search"`
	Levels         []string `json:"levels"`
	PublishedDates []string `json:"published_dates"`
	SortField      string   `json:"sort_field"`
	SortDirection  string   `json:"sort_direction"`
}

// PutFilter replaces the session's filter criteria and returns the new view.
func (h *Handler) PutFilter(c *fiber.Ctx) error {
	var req filterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	levels := make([]model.BatchLevel, 0, len(req.Levels))
	for _, raw := range req.Levels {
		level, ok := model.ParseBatchLevel(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown batch level: " + raw})
		}
		levels = append(levels, level)
	}

	sess := h.Sessions.Get(req.UserID)
	sess.SetFilter(session.FilterState{
		SearchTerm:      req.Search,
		Levels:          levels,
		PublishedDates:  req.PublishedDates,
		SortField:       req.SortField,
		SortDirection:   session.SortDirection(req.SortDirection),
		SearchMinLength: h.Sessions.SearchMinLength(),
	})

	return c.JSON(sess.View())
}

// pageRequest is the body for PostPage.
type pageRequest struct {
	UserID   string `json:"user_id"`
	Action   string `json:"action"`
	Index    int    `json:"index"`
	PageSize int    `json:"page_size"`
}

// PostPage navigates the session's pagination and returns the new view.
func (h *Handler) PostPage(c *fiber.Ctx) error {
	var req pageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	sess := h.Sessions.Get(req.UserID)
	switch req.Action {
	case "next":
		sess.Navigate(session.PaginationState.Next)
	case "previous":
		sess.Navigate(session.PaginationState.Previous)
	case "first":
		sess.Navigate(session.PaginationState.First)
	case "last":
		sess.Navigate(session.PaginationState.Last)
	case "goto":
		sess.Navigate(func(p session.PaginationState) session.PaginationState {
			return p.GoTo(req.Index)
		})
	case "size":
		sess.Navigate(func(p session.PaginationState) session.PaginationState {
			return p.WithPageSize(req.PageSize)
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown page action: " + req.Action})
	}

	return c.JSON(sess.View())
}

// refreshRequest is the body for PostRefresh.
type refreshRequest struct {
	UserID string `json:"user_id"`
}

// PostRefresh fetches a fresh payload from the upstream store and loads it
// into the session. A refresh that lost the race to a newer one returns the
// current view unchanged.
func (h *Handler) PostRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	sess := h.Sessions.Get(req.UserID)
	gen := sess.BeginRefresh()
	started := time.Now()

	body, err := h.Upstream.FetchUpdates(c.Context(), req.UserID)
	if err != nil {
		log.Printf("Refresh failed for user %s: %v", req.UserID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "upstream fetch failed"})
	}

	payload, err := model.ParseUpdatePayload(body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "upstream payload unreadable"})
	}

	if sess.LoadRecords(gen, payload) {
		h.persistRefresh(req.UserID, payload, sess, started)
	}

	return c.JSON(sess.View())
}

// persistRefresh stores the refreshed set and its audit trail. Persistence
// failures are logged, not surfaced: the session already holds the data and
// the dashboard can proceed.
func (h *Handler) persistRefresh(userID string, payload *model.UpdatePayload, sess *session.Session, started time.Time) {
	ctx := context.Background()
	if err := h.Store.ReplaceUpdateSet(ctx, userID, payload.Records); err != nil {
		log.Printf("Failed to persist update set for %s: %v", userID, err)
		return
	}
	snap := session.CalculateStatistics(payload.Records, len(payload.Records))
	if err := h.Store.SaveSnapshot(ctx, userID, snap); err != nil {
		log.Printf("Failed to persist snapshot for %s: %v", userID, err)
	}
	if err := h.Store.RecordRefresh(ctx, sess.RefreshSummary(started)); err != nil {
		log.Printf("Failed to record refresh for %s: %v", userID, err)
	}
}

// installRequest is the body for PostInstall.
type installRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

// PostInstall assembles the install request for the current selection and
// submits it upstream.
func (h *Handler) PostInstall(c *fiber.Ctx) error {
	var req installRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	sess := h.Sessions.Get(req.UserID)
	install, err := sess.AssembleInstall(req.Action)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	body, err := json.Marshal(install)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode install request"})
	}

	if err := h.Upstream.SubmitInstall(c.Context(), body); err != nil {
		log.Printf("Install submission failed for user %s: %v", req.UserID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "installer rejected request"})
	}

	return c.JSON(model.ServerResponse{Success: true, Message: "install request submitted"})
}
