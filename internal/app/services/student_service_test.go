package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
	"github.com/campuscrm/admitdesk/internal/pkg/ingest"
)

func newStudentFixture() (*fakeUserRepo, *fakeStudentRepo, StudentService) {
	userRepo := newFakeUserRepo()
	studentRepo := newFakeStudentRepo()
	return userRepo, studentRepo, NewStudentService(studentRepo, userRepo, zerolog.Nop())
}

func TestBulkIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("counts rejects and tags survivors with the uploader", func(t *testing.T) {
		userRepo, studentRepo, svc := newStudentFixture()
		faculty := userRepo.seed("Teacher", "teacher@college.edu", models.RoleFaculty)

		result, err := svc.BulkIngest(ctx, faculty.ID, []ingest.Row{
			{"Name": "Aman Verma", "Phone": "9876543210", "Address": "Jaipur"},
			{"name": "Priya Singh", "phone": "9876500000"},
			{"Name": "No Phone Row"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Inserted)
		assert.Equal(t, 1, result.Rejected)

		students, err := studentRepo.List(ctx, listScopeForTest(faculty.ID))
		require.NoError(t, err)
		require.Len(t, students, 2)
		for _, s := range students {
			assert.Equal(t, faculty.ID, s.UploadedByID)
			assert.Equal(t, models.CallStatusNotCalled, s.CallStatus)
		}
	})

	t.Run("re-uploading the same batch inserts nothing and is not an error", func(t *testing.T) {
		userRepo, _, svc := newStudentFixture()
		faculty := userRepo.seed("Teacher", "teacher@college.edu", models.RoleFaculty)

		batch := []ingest.Row{
			{"Name": "Aman Verma", "Phone": "9876543210"},
			{"Name": "Priya Singh", "Phone": "9876500000"},
		}

		first, err := svc.BulkIngest(ctx, faculty.ID, batch)
		require.NoError(t, err)
		require.Equal(t, int64(2), first.Inserted)

		second, err := svc.BulkIngest(ctx, faculty.ID, batch)
		require.NoError(t, err)
		assert.Equal(t, int64(0), second.Inserted)
		assert.Equal(t, 0, second.Rejected)
	})

	t.Run("batch with no valid rows fails validation", func(t *testing.T) {
		userRepo, _, svc := newStudentFixture()
		faculty := userRepo.seed("Teacher", "teacher@college.edu", models.RoleFaculty)

		_, err := svc.BulkIngest(ctx, faculty.ID, []ingest.Row{
			{"Name": "", "Phone": "123"},
			{"Name": "Ghost", "Phone": "undefined"},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unauthenticated actor is denied", func(t *testing.T) {
		_, _, svc := newStudentFixture()

		_, err := svc.BulkIngest(ctx, 0, []ingest.Row{{"Name": "A", "Phone": "1"}})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestUpdateCallRecord(t *testing.T) {
	ctx := context.Background()

	seedStudent := func(userRepo *fakeUserRepo, studentRepo *fakeStudentRepo, svc StudentService, uploaderID int64) int64 {
		result, err := svc.BulkIngest(ctx, uploaderID, []ingest.Row{{"Name": "Aman Verma", "Phone": "9876543210"}})
		if err != nil || result.Inserted != 1 {
			panic("fixture student not inserted")
		}
		students, _ := studentRepo.List(ctx, listScopeForTest(uploaderID))
		return students[0].ID
	}

	t.Run("records the actor's name as last updater", func(t *testing.T) {
		userRepo, studentRepo, svc := newStudentFixture()
		uploader := userRepo.seed("Uploader", "uploader@college.edu", models.RoleFaculty)
		caller := userRepo.seed("Caller Staff", "caller@college.edu", models.RoleFaculty)
		studentID := seedStudent(userRepo, studentRepo, svc, uploader.ID)

		err := svc.UpdateCallRecord(ctx, caller.ID, studentID, CallRecordUpdate{
			Status:   string(models.CallStatusInterested),
			Interest: string(models.InterestMCA),
			Notes:    "will visit campus",
		})
		require.NoError(t, err)

		stored, err := studentRepo.GetByID(ctx, studentID)
		require.NoError(t, err)
		assert.Equal(t, models.CallStatusInterested, stored.CallStatus)
		require.NotNil(t, stored.FutureInterest)
		assert.Equal(t, models.InterestMCA, *stored.FutureInterest)
		require.NotNil(t, stored.LastUpdatedBy)
		assert.Equal(t, "Caller Staff", *stored.LastUpdatedBy)
	})

	t.Run("nameless actor falls back to Unknown Staff", func(t *testing.T) {
		userRepo, studentRepo, svc := newStudentFixture()
		uploader := userRepo.seed("Uploader", "uploader@college.edu", models.RoleFaculty)
		nameless := userRepo.seed("", "ghost@college.edu", models.RoleFaculty)
		studentID := seedStudent(userRepo, studentRepo, svc, uploader.ID)

		require.NoError(t, svc.UpdateCallRecord(ctx, nameless.ID, studentID, CallRecordUpdate{
			Status: string(models.CallStatusCallBack),
		}))

		stored, err := studentRepo.GetByID(ctx, studentID)
		require.NoError(t, err)
		require.NotNil(t, stored.LastUpdatedBy)
		assert.Equal(t, UnknownStaffName, *stored.LastUpdatedBy)
	})

	t.Run("empty interest clears the field", func(t *testing.T) {
		userRepo, studentRepo, svc := newStudentFixture()
		uploader := userRepo.seed("Uploader", "uploader@college.edu", models.RoleFaculty)
		studentID := seedStudent(userRepo, studentRepo, svc, uploader.ID)

		require.NoError(t, svc.UpdateCallRecord(ctx, uploader.ID, studentID, CallRecordUpdate{
			Status:   string(models.CallStatusCallBack),
			Interest: string(models.InterestMBA),
		}))
		require.NoError(t, svc.UpdateCallRecord(ctx, uploader.ID, studentID, CallRecordUpdate{
			Status: string(models.CallStatusCallBack),
		}))

		stored, err := studentRepo.GetByID(ctx, studentID)
		require.NoError(t, err)
		assert.Nil(t, stored.FutureInterest)
	})

	t.Run("OTHER is stored as OTHER", func(t *testing.T) {
		userRepo, studentRepo, svc := newStudentFixture()
		uploader := userRepo.seed("Uploader", "uploader@college.edu", models.RoleFaculty)
		studentID := seedStudent(userRepo, studentRepo, svc, uploader.ID)

		require.NoError(t, svc.UpdateCallRecord(ctx, uploader.ID, studentID, CallRecordUpdate{
			Status:   string(models.CallStatusInterested),
			Interest: string(models.InterestOther),
		}))

		stored, err := studentRepo.GetByID(ctx, studentID)
		require.NoError(t, err)
		require.NotNil(t, stored.FutureInterest)
		assert.Equal(t, models.InterestOther, *stored.FutureInterest)
	})

	t.Run("unknown status and unknown interest are rejected", func(t *testing.T) {
		userRepo, studentRepo, svc := newStudentFixture()
		uploader := userRepo.seed("Uploader", "uploader@college.edu", models.RoleFaculty)
		studentID := seedStudent(userRepo, studentRepo, svc, uploader.ID)

		err := svc.UpdateCallRecord(ctx, uploader.ID, studentID, CallRecordUpdate{Status: "CALLED"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		err = svc.UpdateCallRecord(ctx, uploader.ID, studentID, CallRecordUpdate{
			Status:   string(models.CallStatusCallBack),
			Interest: "ASTROLOGY",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("any staff member may update records they did not upload", func(t *testing.T) {
		userRepo, studentRepo, svc := newStudentFixture()
		uploader := userRepo.seed("Uploader", "uploader@college.edu", models.RoleFaculty)
		other := userRepo.seed("Other", "other@college.edu", models.RoleFaculty)
		studentID := seedStudent(userRepo, studentRepo, svc, uploader.ID)

		assert.NoError(t, svc.UpdateCallRecord(ctx, other.ID, studentID, CallRecordUpdate{
			Status: string(models.CallStatusCallBack),
		}))
	})

	t.Run("missing student is not found", func(t *testing.T) {
		userRepo, _, svc := newStudentFixture()
		uploader := userRepo.seed("Uploader", "uploader@college.edu", models.RoleFaculty)

		err := svc.UpdateCallRecord(ctx, uploader.ID, 404, CallRecordUpdate{
			Status: string(models.CallStatusCallBack),
		})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

func TestVisibility(t *testing.T) {
	ctx := context.Background()

	// Three uploads by an admin, two by a faculty member.
	seedUploads := func() (*fakeUserRepo, *fakeStudentRepo, StudentService, *models.User, *models.User, *models.User) {
		userRepo, studentRepo, svc := newStudentFixture()
		super := userRepo.seed("Root", "root@college.edu", models.RoleSuperAdmin)
		admin := userRepo.seed("Admin", "admin@college.edu", models.RoleAdmin)
		faculty := userRepo.seed("Teacher", "teacher@college.edu", models.RoleFaculty)

		_, err := svc.BulkIngest(ctx, admin.ID, []ingest.Row{
			{"Name": "A One", "Phone": "1111111111"},
			{"Name": "A Two", "Phone": "2222222222"},
			{"Name": "A Three", "Phone": "3333333333"},
		})
		if err != nil {
			panic(err)
		}
		_, err = svc.BulkIngest(ctx, faculty.ID, []ingest.Row{
			{"Name": "F One", "Phone": "4444444444"},
			{"Name": "F Two", "Phone": "5555555555"},
		})
		if err != nil {
			panic(err)
		}
		return userRepo, studentRepo, svc, super, admin, faculty
	}

	t.Run("SUPER_ADMIN lists everything", func(t *testing.T) {
		_, _, svc, super, _, _ := seedUploads()

		students, err := svc.ListVisible(ctx, super.ID)
		require.NoError(t, err)
		assert.Len(t, students, 5)
	})

	t.Run("ADMIN list is own uploads but stats are global", func(t *testing.T) {
		_, _, svc, _, admin, _ := seedUploads()

		students, err := svc.ListVisible(ctx, admin.ID)
		require.NoError(t, err)
		require.Len(t, students, 3)
		for _, s := range students {
			assert.Equal(t, admin.ID, s.UploadedByID)
		}

		stats, err := svc.GetDashboardStats(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.Total)
	})

	t.Run("FACULTY list and stats are both own uploads", func(t *testing.T) {
		_, _, svc, _, _, faculty := seedUploads()

		students, err := svc.ListVisible(ctx, faculty.ID)
		require.NoError(t, err)
		assert.Len(t, students, 2)

		stats, err := svc.GetDashboardStats(ctx, faculty.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Total)
		assert.Equal(t, int64(2), stats.StatusGroups[models.CallStatusNotCalled])
	})

	t.Run("students without an interest are absent from interest groups", func(t *testing.T) {
		_, _, svc, super, admin, _ := seedUploads()

		students, err := svc.ListVisible(ctx, admin.ID)
		require.NoError(t, err)
		require.NoError(t, svc.UpdateCallRecord(ctx, admin.ID, students[0].ID, CallRecordUpdate{
			Status:   string(models.CallStatusInterested),
			Interest: string(models.InterestBTech),
		}))

		stats, err := svc.GetDashboardStats(ctx, super.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.Total)
		assert.Equal(t, int64(1), stats.InterestGroups[models.InterestBTech])
		var grouped int64
		for _, n := range stats.InterestGroups {
			grouped += n
		}
		assert.Equal(t, int64(1), grouped)
	})

	t.Run("unauthenticated actor is denied", func(t *testing.T) {
		_, _, svc, _, _, _ := seedUploads()

		_, err := svc.ListVisible(ctx, -1)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

		_, err = svc.GetDashboardStats(ctx, 0)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
