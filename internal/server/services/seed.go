package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
	"github.com/google/uuid"
)

// SeedSampleData fills store with a small, internally consistent data set:
// users, three events in every state, posts with likes, pending reports and
// a transaction history.
func SeedSampleData(store *memory.Store, now time.Time) {
	day := 24 * time.Hour

	names := [][2]string{{"Asha", "Rao"}, {"Ben", "Okafor"}, {"Chen", "Li"}, {"Dara", "Novak"}, {"Eli", "Moreau"}}
	users := make([]models.User, 0, len(names))
	for i, n := range names {
		u := models.User{
			ID:        uuid.NewString(),
			FirstName: n[0],
			LastName:  n[1],
			UserName:  fmt.Sprintf("%s%d", n[0], i+1),
			Email:     fmt.Sprintf("%s@example.com", n[0]),
			IsActive:  true,
			CreatedAt: now.Add(-time.Duration(30-i) * day),
		}
		store.AddUser(u)
		users = append(users, u)
	}

	participants := make([]string, 0, 3)
	for _, u := range users[:3] {
		participants = append(participants, u.ID)
	}

	events := []models.Event{
		{EventName: "Spring Sketch Off", EntryFee: 10, PrizePool: 500, StartDate: now.Add(-20 * day).Format(dateLayout),
			EndDate: now.Add(-10 * day).Format(dateLayout), Status: models.EventCompleted, Participants: participants},
		{EventName: "Street Photo Week", EntryFee: 5, PrizePool: 250, StartDate: now.Add(-2 * day).Format(dateLayout),
			EndDate: now.Add(5 * day).Format(dateLayout), EndTime: "18:00", Status: models.EventOngoing, Participants: participants},
		{EventName: "Portrait Marathon", EntryFee: 0, PrizePool: 100, StartDate: now.Format(dateLayout),
			EndDate: now.Add(30 * day).Format(dateLayout), Status: models.EventUpcoming, Participants: []string{}},
	}
	for i := range events {
		events[i].ID = uuid.NewString()
		events[i].Rules = "One entry per day. Original work only."
		store.AddEvent(events[i])
	}

	var posts []models.Post
	for i, u := range users[:3] {
		for j := 0; j <= i; j++ {
			p := models.Post{
				ID:          uuid.NewString(),
				UserID:      u.ID,
				EventID:     events[1].ID,
				Description: fmt.Sprintf("Entry %d by %s", j+1, u.UserName),
				Likes:       (i + 1) * (j + 3),
				Comments:    j * 2,
				CreatedAt:   now.Add(-time.Duration(10*i+j) * time.Hour),
			}
			store.AddPost(p)
			posts = append(posts, p)
		}
	}

	for i, reason := range []string{"spam", "stolen artwork"} {
		store.AddReport(models.Report{
			ID:         uuid.NewString(),
			PostID:     posts[len(posts)-1-i].ID,
			ReporterID: users[3+i].ID,
			Reason:     reason,
			Status:     models.ReportPending,
			CreatedAt:  now.Add(-time.Duration(i+1) * time.Hour),
		})
	}

	for i, u := range users {
		store.AddTransaction(models.Transaction{
			ID: uuid.NewString(), TransactionID: fmt.Sprintf("TXN%04d", 2*i+1), Title: "Wallet top up",
			Type: "credit", Amount: float64(50 * (i + 1)), Time: now.Add(-time.Duration(i+3) * day), UserID: u.ID,
		})
		store.AddTransaction(models.Transaction{
			ID: uuid.NewString(), TransactionID: fmt.Sprintf("TXN%04d", 2*i+2), Title: "Entry fee: " + events[1].EventName,
			Type: "debit", Amount: events[1].EntryFee, Time: now.Add(-time.Duration(i+1) * day), UserID: u.ID,
		})
	}
}
