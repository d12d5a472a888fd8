package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
	"github.com/google/uuid"
)

const (
	ActionRemove = "remove"
	ActionWarn   = "warn"
)

type PostService struct {
	store  *memory.Store
	logger logging.Logger
	now    func() time.Time
}

func NewPostService(store *memory.Store, logger logging.Logger) *PostService {
	return &PostService{store: store, logger: logger.With("module", "post_service"), now: time.Now}
}

func (s *PostService) Create(ctx context.Context, authorID string, in models.PostInput) (models.Post, error) {
	if strings.TrimSpace(in.Description) == "" {
		return models.Post{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if in.EventID != "" {
		if _, err := s.store.GetEvent(in.EventID); err != nil {
			return models.Post{}, fmt.Errorf("%w: unknown event", ErrInvalidInput)
		}
	}
	p := models.Post{
		ID:          uuid.NewString(),
		UserID:      authorID,
		EventID:     in.EventID,
		Description: in.Description,
		Preview:     in.Preview,
		CreatedAt:   s.now(),
	}
	s.store.AddPost(p)
	return p, nil
}

func (s *PostService) List(ctx context.Context, page, limit int) ([]models.Post, models.Pagination) {
	return s.store.ListPosts(page, limit)
}

func (s *PostService) UserPosts(ctx context.Context, userID string) []models.Post {
	return s.store.PostsWhere(func(p models.Post) bool { return p.UserID == userID })
}

func (s *PostService) CommentsCount(ctx context.Context, postID string) (int, error) {
	p, err := s.store.GetPost(postID)
	if err != nil {
		return 0, err
	}
	return p.Comments, nil
}

// Reports returns reports joined with their post and reporter. Reports of
// removed posts keep an empty post with the original id.
func (s *PostService) Reports(ctx context.Context, page, limit int) ([]models.ReportView, models.Pagination) {
	reports, pg := s.store.ListReports(page, limit)
	out := make([]models.ReportView, 0, len(reports))
	for _, r := range reports {
		v := models.ReportView{Report: r, Post: models.Post{ID: r.PostID}, Reporter: models.Reporter{ID: r.ReporterID}}
		if p, err := s.store.GetPost(r.PostID); err == nil {
			v.Post = p
		}
		if u, err := s.store.GetUser(r.ReporterID); err == nil {
			v.Reporter.UserName = u.UserName
			v.Reporter.Email = u.Email
		}
		out = append(out, v)
	}
	return out, pg
}

// ActOnReport resolves the pending reports of postID. remove deletes the
// post; warn keeps it.
func (s *PostService) ActOnReport(ctx context.Context, postID, action, reason string) error {
	var status string
	switch action {
	case ActionRemove:
		status = models.ReportRemoved
	case ActionWarn:
		status = models.ReportWarned
	default:
		return fmt.Errorf("%w: action must be %s or %s", ErrInvalidInput, ActionRemove, ActionWarn)
	}

	if s.store.SetReportStatus(postID, status) == 0 {
		return fmt.Errorf("no pending reports for post %s: %w", postID, common.ErrorNotFound)
	}
	if action == ActionRemove {
		s.store.DeletePost(postID)
	}
	s.logger.Info(ctx, "Report resolved", "post", postID, "action", action, "reason", reason)
	return nil
}
