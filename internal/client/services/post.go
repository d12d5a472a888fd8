package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

type PostService interface {
	CreatePost(ctx context.Context, in models.PostInput) error
	ListPosts(ctx context.Context, page, limit int) (*models.PostPage, error)
	UserPosts(ctx context.Context, userID string) ([]models.Post, error)
	CommentsCount(ctx context.Context, postID string) (int, error)
	ReportedPosts(ctx context.Context, page, limit int) (*models.ReportPage, error)
	ActOnReport(ctx context.Context, postID string, action models.ReportAction, reason string) error
}

type postService struct {
	api API
}

func NewPostService(api API) PostService {
	return &postService{api: api}
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (s *postService) CreatePost(ctx context.Context, in models.PostInput) error {
	_, err := call(ctx, s.api, "create post", client.Request{Method: http.MethodPost, Path: "/post/create-post", Body: in})
	return err
}

func (s *postService) ListPosts(ctx context.Context, page, limit int) (*models.PostPage, error) {
	resp, err := call(ctx, s.api, "list posts", client.Request{Method: http.MethodGet, Path: "/post/get-all-posts", Query: pageQuery(page, limit)})
	if err != nil {
		return nil, err
	}
	return decodeObject[models.PostPage](resp.Body)
}

func (s *postService) UserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	seg, err := pathID(userID)
	if err != nil {
		return nil, err
	}
	resp, err := call(ctx, s.api, "user posts", client.Request{Method: http.MethodGet, Path: "/post/user-posts/" + seg})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Post](resp.Body, "posts", "data")
}

func (s *postService) CommentsCount(ctx context.Context, postID string) (int, error) {
	seg, err := pathID(postID)
	if err != nil {
		return 0, err
	}
	resp, err := call(ctx, s.api, "comments count", client.Request{Method: http.MethodGet, Path: "/post/comments/" + seg})
	if err != nil {
		return 0, err
	}
	cc, err := decodeObject[models.CommentsCount](resp.Body)
	if err != nil {
		return 0, fmt.Errorf("comments count: %w", err)
	}
	return cc.Count, nil
}

func (s *postService) ReportedPosts(ctx context.Context, page, limit int) (*models.ReportPage, error) {
	resp, err := call(ctx, s.api, "reported posts", client.Request{Method: http.MethodGet, Path: "/post/reports", Query: pageQuery(page, limit)})
	if err != nil {
		return nil, err
	}
	return decodeObject[models.ReportPage](resp.Body)
}

func (s *postService) ActOnReport(ctx context.Context, postID string, action models.ReportAction, reason string) error {
	seg, err := pathID(postID)
	if err != nil {
		return err
	}
	body := models.ReportDecision{Action: action, Reason: reason}
	_, err = call(ctx, s.api, "act on report", client.Request{Method: http.MethodPost, Path: "/post/reports/" + seg, Body: body})
	return err
}
