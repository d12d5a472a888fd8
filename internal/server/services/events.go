package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type EventService struct {
	store  *memory.Store
	logger logging.Logger
	now    func() time.Time
}

func NewEventService(store *memory.Store, logger logging.Logger) *EventService {
	return &EventService{store: store, logger: logger.With("module", "event_service"), now: time.Now}
}

// endsAt is the end of EndDate, or EndDate at EndTime when one is set.
func endsAt(endDate, endTime string) (time.Time, error) {
	d, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: endDate must look like %s", ErrInvalidInput, dateLayout)
	}
	if endTime == "" {
		return d.Add(24*time.Hour - time.Second), nil
	}
	t, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: endTime must look like %s", ErrInvalidInput, timeLayout)
	}
	return d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

func validateEvent(in models.EventInput) error {
	if strings.TrimSpace(in.EventName) == "" {
		return fmt.Errorf("%w: eventName is required", ErrInvalidInput)
	}
	if in.EntryFee < 0 || in.PrizePool < 0 {
		return fmt.Errorf("%w: entryFee and prizePool cannot be negative", ErrInvalidInput)
	}
	_, err := endsAt(in.EndDate, in.EndTime)
	return err
}

// withStatus reports events past their end as completed.
func (s *EventService) withStatus(e models.Event) models.Event {
	if e.Status == models.EventCompleted {
		return e
	}
	if end, err := endsAt(e.EndDate, e.EndTime); err == nil && s.now().After(end) {
		e.Status = models.EventCompleted
	}
	return e
}

func (s *EventService) Create(ctx context.Context, in models.EventInput) (models.Event, error) {
	if err := validateEvent(in); err != nil {
		return models.Event{}, err
	}
	e := models.Event{
		ID:           uuid.NewString(),
		EventName:    strings.TrimSpace(in.EventName),
		Image:        in.Image,
		EntryFee:     in.EntryFee,
		PrizePool:    in.PrizePool,
		StartDate:    s.now().UTC().Format(dateLayout),
		EndDate:      in.EndDate,
		EndTime:      in.EndTime,
		Rules:        in.Rules,
		Status:       models.EventUpcoming,
		Participants: []string{},
	}
	s.store.AddEvent(e)
	s.logger.Info(ctx, "Event created", "id", e.ID, "name", e.EventName)
	return e, nil
}

func (s *EventService) List(ctx context.Context) []models.Event {
	events := s.store.ListEvents()
	for i := range events {
		events[i] = s.withStatus(events[i])
	}
	return events
}

func (s *EventService) Get(ctx context.Context, id string) (models.Event, error) {
	e, err := s.store.GetEvent(id)
	if err != nil {
		return models.Event{}, err
	}
	return s.withStatus(e), nil
}

// Start moves an upcoming event to ongoing.
func (s *EventService) Start(ctx context.Context, id string) error {
	err := s.store.UpdateEvent(id, func(e *models.Event) error {
		if s.withStatus(*e).Status != models.EventUpcoming {
			return fmt.Errorf("%w: event is %s", ErrInvalidState, s.withStatus(*e).Status)
		}
		e.Status = models.EventOngoing
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "Event started", "id", id)
	return nil
}

// Edit replaces the editable fields. Completed events are frozen.
func (s *EventService) Edit(ctx context.Context, id string, in models.EventInput) (models.Event, error) {
	if err := validateEvent(in); err != nil {
		return models.Event{}, err
	}
	var out models.Event
	err := s.store.UpdateEvent(id, func(e *models.Event) error {
		if s.withStatus(*e).Status == models.EventCompleted {
			return fmt.Errorf("%w: event is completed", ErrInvalidState)
		}
		e.EventName = strings.TrimSpace(in.EventName)
		e.Image = in.Image
		e.EntryFee = in.EntryFee
		e.PrizePool = in.PrizePool
		e.EndDate = in.EndDate
		e.EndTime = in.EndTime
		e.Rules = in.Rules
		out = *e
		return nil
	})
	if err != nil {
		return models.Event{}, err
	}
	return out, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(id); err != nil {
		return err
	}
	s.logger.Info(ctx, "Event deleted", "id", id)
	return nil
}

// Leaderboard ranks everyone who joined or posted in the event by total
// likes, then by number of posts.
func (s *EventService) Leaderboard(ctx context.Context, id string) (models.Leaderboard, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return models.Leaderboard{}, err
	}

	stats := make(map[string]*models.ParticipantStats)
	for _, uid := range e.Participants {
		stats[uid] = &models.ParticipantStats{}
	}
	for _, p := range s.store.PostsWhere(func(p models.Post) bool { return p.EventID == id }) {
		st, ok := stats[p.UserID]
		if !ok {
			st = &models.ParticipantStats{}
			stats[p.UserID] = st
		}
		st.TotalPosts++
		st.TotalLikes += p.Likes
	}

	entries := make([]models.LeaderboardEntry, 0, len(stats))
	for uid, st := range stats {
		part := models.Participant{ID: uid}
		if u, err := s.store.GetUser(uid); err == nil {
			part.Name = strings.TrimSpace(u.FirstName + " " + u.LastName)
			part.UserName = u.UserName
			part.Image = u.Image
		}
		entries = append(entries, models.LeaderboardEntry{Participant: part, Stats: *st})
	}
	slices.SortFunc(entries, func(a, b models.LeaderboardEntry) int {
		if a.Stats.TotalLikes != b.Stats.TotalLikes {
			return b.Stats.TotalLikes - a.Stats.TotalLikes
		}
		if a.Stats.TotalPosts != b.Stats.TotalPosts {
			return b.Stats.TotalPosts - a.Stats.TotalPosts
		}
		return strings.Compare(a.Participant.UserName, b.Participant.UserName)
	})

	return models.Leaderboard{Event: e, Leaderboard: entries}, nil
}
