// Package memory keeps the development backend's data in process memory.
// All methods are safe for concurrent use and hand out copies, so callers
// can never mutate stored records behind the store's back.
package memory

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
)

var ErrDuplicate = errors.New("already exists")

type Store struct {
	mu sync.RWMutex

	admins        map[string]*models.Admin
	refreshTokens map[string]*models.RefreshToken
	otps          map[string]*models.OTP

	events       map[string]*models.Event
	users        map[string]*models.User
	posts        map[string]*models.Post
	reports      map[string]*models.Report
	transactions []models.Transaction
}

func NewStore() *Store {
	return &Store{
		admins:        make(map[string]*models.Admin),
		refreshTokens: make(map[string]*models.RefreshToken),
		otps:          make(map[string]*models.OTP),
		events:        make(map[string]*models.Event),
		users:         make(map[string]*models.User),
		posts:         make(map[string]*models.Post),
		reports:       make(map[string]*models.Report),
	}
}

// paginate returns the requested page of items. page is 1-based; a
// non-positive page or limit selects the first page or everything.
func paginate[T any](items []T, page, limit int) ([]T, models.Pagination) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = max(total, 1)
	}
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	pages := (total + limit - 1) / limit

	res := items[start:end]
	if res == nil {
		res = []T{}
	}
	return res, models.Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  pages,
		HasNextPage: page < pages,
	}
}

// sortedValues copies map values ordered by less.
func sortedValues[T any](m map[string]*T, less func(a, b T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	slices.SortFunc(out, less)
	return out
}

// Admins

func (s *Store) AddAdmin(a models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return ErrDuplicate
		}
	}
	s.admins[a.ID] = &a
	return nil
}

func (s *Store) AdminByEmail(email string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if strings.EqualFold(a.Email, email) {
			return *a, nil
		}
	}
	return models.Admin{}, common.ErrorNotFound
}

func (s *Store) AdminByID(id string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[id]
	if !ok {
		return models.Admin{}, common.ErrorNotFound
	}
	return *a, nil
}

func (s *Store) ListAdmins() []models.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.admins, func(a, b models.Admin) int { return a.CreatedAt.Compare(b.CreatedAt) })
}

func (s *Store) UpdateAdmin(id string, fn func(a *models.Admin)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(a)
	return nil
}

// Refresh tokens

func (s *Store) AddRefreshToken(rt models.RefreshToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens[rt.Token] = &rt
}

func (s *Store) FindRefreshToken(token string) (models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.refreshTokens[token]
	if !ok {
		return models.RefreshToken{}, common.ErrorNotFound
	}
	return *rt, nil
}

// TakeRefreshToken removes token and returns its record. Exactly one of
// several concurrent callers gets the record.
func (s *Store) TakeRefreshToken(token string) (models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.refreshTokens[token]
	if !ok {
		return models.RefreshToken{}, common.ErrorNotFound
	}
	delete(s.refreshTokens, token)
	return *rt, nil
}

func (s *Store) DeleteRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refreshTokens, token)
}

// DeleteRefreshTokens drops every refresh token of adminID.
func (s *Store) DeleteRefreshTokens(adminID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, rt := range s.refreshTokens {
		if rt.AdminID == adminID {
			delete(s.refreshTokens, k)
		}
	}
}

// OTPs

func (s *Store) PutOTP(o models.OTP) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[strings.ToLower(o.Email)] = &o
}

func (s *Store) GetOTP(email string) (models.OTP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.otps[strings.ToLower(email)]
	if !ok {
		return models.OTP{}, common.ErrorNotFound
	}
	return *o, nil
}

func (s *Store) DeleteOTP(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.otps, strings.ToLower(email))
}

// Events

func (s *Store) AddEvent(e models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Participants = slices.Clone(e.Participants)
	s.events[e.ID] = &e
}

func (s *Store) GetEvent(id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return models.Event{}, common.ErrorNotFound
	}
	out := *e
	out.Participants = slices.Clone(e.Participants)
	return out, nil
}

// ListEvents orders events by end date.
func (s *Store) ListEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := sortedValues(s.events, func(a, b models.Event) int {
		if c := strings.Compare(a.EndDate, b.EndDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	for i := range out {
		out[i].Participants = slices.Clone(out[i].Participants)
	}
	return out
}

func (s *Store) UpdateEvent(id string, fn func(e *models.Event) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return common.ErrorNotFound
	}
	updated := *e
	if err := fn(&updated); err != nil {
		return err
	}
	s.events[id] = &updated
	return nil
}

func (s *Store) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.events, id)
	return nil
}

// Users

func (s *Store) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = &u
}

func (s *Store) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	return *u, nil
}

// UserByUserName matches user names case-insensitively.
func (s *Store) UserByUserName(name string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.UserName, name) {
			return *u, nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

func (s *Store) ListUsers(page, limit int) ([]models.User, models.Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := sortedValues(s.users, func(a, b models.User) int { return strings.Compare(a.UserName, b.UserName) })
	return paginate(all, page, limit)
}

func (s *Store) UpdateUser(id string, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(u)
	return nil
}

// Posts and reports

func (s *Store) AddPost(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = &p
}

func (s *Store) GetPost(id string) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, common.ErrorNotFound
	}
	return *p, nil
}

func newestFirst(a, b models.Post) int { return b.CreatedAt.Compare(a.CreatedAt) }

func (s *Store) ListPosts(page, limit int) ([]models.Post, models.Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate(sortedValues(s.posts, newestFirst), page, limit)
}

// PostsWhere returns posts matching keep, newest first.
func (s *Store) PostsWhere(keep func(p models.Post) bool) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := sortedValues(s.posts, newestFirst)
	return slices.DeleteFunc(all, func(p models.Post) bool { return !keep(p) })
}

func (s *Store) DeletePost(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
}

func (s *Store) AddReport(r models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = &r
}

func (s *Store) ListReports(page, limit int) ([]models.Report, models.Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := sortedValues(s.reports, func(a, b models.Report) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return paginate(all, page, limit)
}

// SetReportStatus resolves every pending report of postID and returns how
// many were changed.
func (s *Store) SetReportStatus(postID, status string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reports {
		if r.PostID == postID && r.Status == models.ReportPending {
			r.Status = status
			n++
		}
	}
	return n
}

// Transactions

func (s *Store) AddTransaction(t models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
}

// TransactionFilter selects transactions; zero fields match everything.
type TransactionFilter struct {
	Type   string
	From   time.Time
	To     time.Time
	Search string
}

func (f TransactionFilter) match(t models.Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if !f.From.IsZero() && t.Time.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.Time.Before(f.To) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.TransactionID), q) {
			return false
		}
	}
	return true
}

// ListTransactions returns matching transactions, newest first.
func (s *Store) ListTransactions(f TransactionFilter, page, limit int) ([]models.Transaction, models.Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if f.match(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Transaction) int { return b.Time.Compare(a.Time) })
	return paginate(out, page, limit)
}
