package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

type EventService interface {
	CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	StartEvent(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error
	EditEvent(ctx context.Context, id string, in models.EventInput) (*models.Event, error)
	Leaderboard(ctx context.Context, id string) (*models.Leaderboard, error)
}

type eventService struct {
	api API
}

func NewEventService(api API) EventService {
	return &eventService{api: api}
}

// CreateEvent returns the stored event when the server echoes it, nil
// otherwise.
func (s *eventService) CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error) {
	resp, err := call(ctx, s.api, "create event", client.Request{Method: http.MethodPost, Path: "/event/create-event", Body: in})
	if err != nil {
		return nil, err
	}
	return echoedEvent(resp.Body), nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	resp, err := call(ctx, s.api, "list events", client.Request{Method: http.MethodGet, Path: "/event/get-events"})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Event](resp.Body, "events", "data")
}

// StartEvent moves an upcoming event to ongoing.
func (s *eventService) StartEvent(ctx context.Context, id string) error {
	seg, err := pathID(id)
	if err != nil {
		return err
	}
	_, err = call(ctx, s.api, "start event", client.Request{Method: http.MethodPost, Path: "/event/update-status/ongoing/" + seg})
	return err
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	seg, err := pathID(id)
	if err != nil {
		return err
	}
	_, err = call(ctx, s.api, "delete event", client.Request{Method: http.MethodDelete, Path: "/event/delete-event/" + seg})
	return err
}

func (s *eventService) EditEvent(ctx context.Context, id string, in models.EventInput) (*models.Event, error) {
	seg, err := pathID(id)
	if err != nil {
		return nil, err
	}
	resp, err := call(ctx, s.api, "edit event", client.Request{Method: http.MethodPut, Path: "/event/update-event/" + seg, Body: in})
	if err != nil {
		return nil, err
	}
	return echoedEvent(resp.Body), nil
}

// echoedEvent is best effort: older servers reply with a message only.
func echoedEvent(body []byte) *models.Event {
	ev, err := decodeObject[models.Event](body, "event", "data")
	if err != nil {
		return nil
	}
	return ev
}

func (s *eventService) Leaderboard(ctx context.Context, id string) (*models.Leaderboard, error) {
	seg, err := pathID(id)
	if err != nil {
		return nil, err
	}
	resp, err := call(ctx, s.api, "leaderboard", client.Request{Method: http.MethodGet, Path: "/event/get-event-leaderboard/" + seg})
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Leaderboard](resp.Body)
}
