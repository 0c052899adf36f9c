package services

import (
	"context"
	"sort"
	"time"

	"github.com/campuscrm/admitdesk/internal/app/auth"
	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/app/repositories"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
)

// In-memory repository doubles. They mirror the store contracts the services
// rely on: sentinel not-found errors, email uniqueness, (name, phone)
// skip-on-duplicate and newest-first ordering.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
	clock  time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[int64]*models.User),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// seed inserts a user directly, bypassing service-level policy
func (f *fakeUserRepo) seed(name, email string, role models.Role) *models.User {
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	u := &models.User{
		ID:        f.nextID,
		Name:      name,
		Email:     email,
		Password:  "x",
		Role:      role,
		CreatedAt: f.clock,
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	stored := *user
	stored.ID = f.nextID
	stored.CreatedAt = f.clock
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int64, role models.Role) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// listScopeForTest builds an owner-restricted scope for inspecting the fake
// store directly
func listScopeForTest(uploaderID int64) auth.StudentScope {
	return auth.StudentScope{UploadedByID: uploaderID}
}

type fakeStudentRepo struct {
	students []*models.Student
	nextID   int64
	clock    time.Time
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStudentRepo) InsertSkipDuplicates(_ context.Context, rows []repositories.NewStudent) (int64, error) {
	var inserted int64
	for _, row := range rows {
		duplicate := false
		for _, existing := range f.students {
			if existing.Name == row.Name && existing.Phone == row.Phone {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		f.nextID++
		f.clock = f.clock.Add(time.Second)
		f.students = append(f.students, &models.Student{
			ID:           f.nextID,
			Name:         row.Name,
			Phone:        row.Phone,
			Address:      row.Address,
			PrevCourse:   row.PrevCourse,
			CallStatus:   models.CallStatusNotCalled,
			UploadedByID: row.UploadedByID,
			CreatedAt:    f.clock,
		})
		inserted++
	}
	return inserted, nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) UpdateCallRecord(_ context.Context, id int64, patch repositories.CallRecordPatch) error {
	for _, s := range f.students {
		if s.ID == id {
			s.CallStatus = patch.Status
			s.FutureInterest = patch.Interest
			s.Notes = patch.Notes
			s.PrevCourse = patch.PrevCourse
			s.LastUpdatedBy = &patch.LastUpdatedBy
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) visible(scope auth.StudentScope) []*models.Student {
	var out []*models.Student
	for _, s := range f.students {
		if scope.Restricted() && s.UploadedByID != scope.UploadedByID {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (f *fakeStudentRepo) List(_ context.Context, scope auth.StudentScope) ([]*models.Student, error) {
	visible := f.visible(scope)
	out := make([]*models.Student, 0, len(visible))
	for _, s := range visible {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStudentRepo) Count(_ context.Context, scope auth.StudentScope) (int64, error) {
	return int64(len(f.visible(scope))), nil
}

func (f *fakeStudentRepo) CountByInterest(_ context.Context, scope auth.StudentScope) (map[models.Interest]int64, error) {
	groups := make(map[models.Interest]int64)
	for _, s := range f.visible(scope) {
		if s.FutureInterest == nil {
			continue
		}
		groups[*s.FutureInterest]++
	}
	return groups, nil
}

func (f *fakeStudentRepo) CountByStatus(_ context.Context, scope auth.StudentScope) (map[models.CallStatus]int64, error) {
	groups := make(map[models.CallStatus]int64)
	for _, s := range f.visible(scope) {
		groups[s.CallStatus]++
	}
	return groups, nil
}
