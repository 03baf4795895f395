package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"eventhub/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	attending map[string][]string
	liked     map[string][]string
	nextID    int
	err       error // if set, Create returns this error
	updates   []domain.EventUpdate
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:      make(map[string]*domain.Event),
		attending: make(map[string][]string),
		liked:     make(map[string][]string),
		nextID:    1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.updates = append(f.updates, upd)
	applyEventUpdate(e, upd)
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) Search(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByAttendeeID(ctx context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range f.attending[userID] {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeEventRepo) ListLikedByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range f.liked[userID] {
		out = append(out, f.byID[id])
	}
	return out, nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	followers map[string]map[string]bool // userID -> followerIDs
	getErr    error
	listErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:      make(map[string]*domain.User),
		byEmail:   make(map[string]*domain.User),
		followers: make(map[string]map[string]bool),
	}
}

func (f *fakeUserRepo) add(u *domain.User) {
	f.byID[u.ID] = u
	if u.Email != "" {
		f.byEmail[u.Email] = u
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = "created-1"
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Bio != nil {
		u.Bio = upd.Bio
	}
	if upd.Address != nil {
		u.Address = upd.Address
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) AddFollower(ctx context.Context, userID, followerID string) (bool, error) {
	if f.followers[userID] == nil {
		f.followers[userID] = make(map[string]bool)
	}
	if f.followers[userID][followerID] {
		return false, nil
	}
	f.followers[userID][followerID] = true
	return true, nil
}

func (f *fakeUserRepo) RemoveFollower(ctx context.Context, userID, followerID string) (bool, error) {
	if !f.followers[userID][followerID] {
		return false, nil
	}
	delete(f.followers[userID], followerID)
	return true, nil
}

func (f *fakeUserRepo) IsFollower(ctx context.Context, userID, followerID string) (bool, error) {
	return f.followers[userID][followerID], nil
}

func (f *fakeUserRepo) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.User
	for id := range f.followers[userID] {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeUserRepo) ListFollowings(ctx context.Context, userID string) ([]*domain.User, error) {
	var out []*domain.User
	for target, set := range f.followers {
		if set[userID] {
			out = append(out, f.byID[target])
		}
	}
	return out, nil
}

// fakeSearcher records the params it was called with.
type fakeSearcher struct {
	got    []domain.SearchParams
	events []*domain.Event
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, params domain.SearchParams) ([]*domain.Event, error) {
	f.got = append(f.got, params)
	return f.events, f.err
}

// fakeDispatcher records dispatched notifications.
type fakeDispatcher struct {
	mu     sync.Mutex
	batch  [][]domain.EventNotification
	err    error
	ctxErr error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, notifications []domain.EventNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxErr = ctx.Err()
	f.batch = append(f.batch, notifications)
	return f.err
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
	hash string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	return "hash-" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+password && (f.hash == "" || hash != f.hash) {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.token != "" {
		return f.token, nil
	}
	return "token-" + userID, nil
}

// fakeEmailService records sent emails.
type fakeEmailService struct {
	welcome       []*domain.WelcomeMessageEmailData
	notifications []*domain.EventNotification
	err           error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendEventNotification(ctx context.Context, n *domain.EventNotification) error {
	f.notifications = append(f.notifications, n)
	return f.err
}
