package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// Events lists every event with its status and money figures.
func (a *App) Events(ctx context.Context) error {
	events, err := a.api.Events.ListEvents(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		a.println("No events")
		return nil
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tFEE\tPRIZE\tENDS\tPARTICIPANTS")
	for _, e := range events {
		ends := e.EndDate
		if t, ok := e.EndsAt(); ok {
			ends = t.Format(time.DateOnly)
			if e.EndTime != "" {
				ends += " " + e.EndTime
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%s\t%d\n",
			e.ID, e.EventName, e.Status, e.EntryFee, e.PrizePool, ends, len(e.Participants))
	}
	return tw.Flush()
}

// NewEvent prompts for the event fields and creates it.
func (a *App) NewEvent(ctx context.Context) error {
	in, err := a.readEventInput(models.EventInput{})
	if err != nil {
		return err
	}
	e, err := a.api.Events.CreateEvent(ctx, in)
	if err != nil {
		return err
	}
	if e != nil && e.ID != "" {
		a.println("Event created with id", e.ID)
	} else {
		a.println("Event created")
	}
	return nil
}

// EditEvent prompts for new values, offering the current ones as defaults.
func (a *App) EditEvent(ctx context.Context, args []string) error {
	id, err := idArg("editevent", args)
	if err != nil {
		return err
	}
	current, err := a.findEvent(ctx, id)
	if err != nil {
		return err
	}

	endDate := current.EndDate
	if t, ok := current.EndsAt(); ok {
		endDate = t.Format(time.DateOnly)
	}
	in, err := a.readEventInput(models.EventInput{
		EventName: current.EventName,
		Image:     current.Image,
		EntryFee:  current.EntryFee,
		PrizePool: current.PrizePool,
		EndDate:   endDate,
		EndTime:   current.EndTime,
		Rules:     current.Rules,
	})
	if err != nil {
		return err
	}
	if _, err := a.api.Events.EditEvent(ctx, id, in); err != nil {
		return err
	}
	a.println("Event updated")
	return nil
}

func (a *App) StartEvent(ctx context.Context, args []string) error {
	id, err := idArg("startevent", args)
	if err != nil {
		return err
	}
	if err := a.api.Events.StartEvent(ctx, id); err != nil {
		return err
	}
	a.println("Event is now ongoing")
	return nil
}

func (a *App) DeleteEvent(ctx context.Context, args []string) error {
	id, err := idArg("delevent", args)
	if err != nil {
		return err
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete event %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled")
		return nil
	}
	if err := a.api.Events.DeleteEvent(ctx, id); err != nil {
		return err
	}
	a.println("Event deleted")
	return nil
}

// Leaderboard prints the ranking of an event, ten points per like.
func (a *App) Leaderboard(ctx context.Context, args []string) error {
	id, err := idArg("leaderboard", args)
	if err != nil {
		return err
	}
	lb, err := a.api.Events.Leaderboard(ctx, id)
	if err != nil {
		return err
	}
	if lb.Event != nil {
		a.println(fmt.Sprintf("%s (%s)", lb.Event.EventName, lb.Event.Status))
	}
	if len(lb.Leaderboard) == 0 {
		a.println("No participants yet")
		return nil
	}

	tw := a.table()
	fmt.Fprintln(tw, "#\tUSER\tNAME\tPOSTS\tLIKES\tPOINTS")
	for i, e := range lb.Leaderboard {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
			i+1, e.Participant.UserName, e.Participant.Name, e.Stats.TotalPosts, e.Stats.TotalLikes, e.Points())
	}
	return tw.Flush()
}

func (a *App) findEvent(ctx context.Context, id string) (*models.Event, error) {
	events, err := a.api.Events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, fmt.Errorf("event %s not found", id)
}

func (a *App) readEventInput(def models.EventInput) (models.EventInput, error) {
	var in models.EventInput
	var err error

	if in.EventName, err = promptDefault(a.reader, "Event name", def.EventName, a.out); err != nil {
		return in, err
	}
	if strings.TrimSpace(in.EventName) == "" {
		return in, errors.New("event name cannot be empty")
	}
	if in.EntryFee, err = promptAmount(a.reader, "Entry fee", def.EntryFee, a.out); err != nil {
		return in, err
	}
	if in.PrizePool, err = promptAmount(a.reader, "Prize pool", def.PrizePool, a.out); err != nil {
		return in, err
	}
	if in.EndDate, err = promptDefault(a.reader, "End date (YYYY-MM-DD)", def.EndDate, a.out); err != nil {
		return in, err
	}
	if _, err := time.Parse(time.DateOnly, in.EndDate); err != nil {
		return in, fmt.Errorf("end date %q is not YYYY-MM-DD", in.EndDate)
	}
	if in.EndTime, err = promptDefault(a.reader, "End time (HH:MM, optional)", def.EndTime, a.out); err != nil {
		return in, err
	}
	if in.EndTime != "" {
		if _, err := time.Parse("15:04", in.EndTime); err != nil {
			return in, fmt.Errorf("end time %q is not HH:MM", in.EndTime)
		}
	}
	if in.Image, err = promptDefault(a.reader, "Image URL (optional)", def.Image, a.out); err != nil {
		return in, err
	}
	if in.Rules, err = GetMultiline(a.reader, "Rules (optional)", a.out); err != nil {
		return in, err
	}
	if in.Rules == "" {
		in.Rules = def.Rules
	}
	return in, nil
}
