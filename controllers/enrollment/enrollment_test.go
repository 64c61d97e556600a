package enrollmentController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tutorme/config"
	"tutorme/database"
	"tutorme/middleware"
	"tutorme/models"
	"tutorme/notifier"
	enrollmentRoutes "tutorme/routers/enrollmentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	app         *fiber.App
	db          *gorm.DB
	studentUser models.User
	student     models.Student
	tutorUser   models.User
	tutor       models.Tutor
	course      models.Course
}

func setup(t *testing.T) *fixture {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Tutor{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Earning{},
		&models.Notification{},
		&models.Session{},
	))

	database.Database = database.DbInstance{Db: db}
	notifier.Init(db)

	app := fiber.New()
	enrollmentRoutes.SetupEnrollmentRoutes(app)

	f := &fixture{app: app, db: db}

	f.studentUser = models.User{Name: "Sam", Email: "sam@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&f.studentUser).Error)
	f.student = models.Student{UserID: f.studentUser.ID, WalletBalance: 10000}
	require.NoError(t, db.Create(&f.student).Error)

	f.tutorUser = models.User{Name: "Tess", Email: "tess@example.com", Password: "x", Role: models.RoleTutor}
	require.NoError(t, db.Create(&f.tutorUser).Error)
	f.tutor = models.Tutor{UserID: f.tutorUser.ID}
	require.NoError(t, db.Create(&f.tutor).Error)

	f.course = models.Course{
		Title:     "Calculus I",
		TutorID:   f.tutor.ID,
		Duration:  12,
		Price:     4000,
		StartDate: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&f.course).Error)

	return f
}

func (f *fixture) enroll(t *testing.T, user models.User, courseID uint) *http.Response {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	body, _ := json.Marshal(fiber.Map{"courseId": courseID})
	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *fixture) balances(t *testing.T) (studentBalance, tutorBalance int64) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Student{}).Where("id = ?", f.student.ID).Pluck("wallet_balance", &studentBalance).Error)
	require.NoError(t, f.db.Model(&models.Tutor{}).Where("id = ?", f.tutor.ID).Pluck("wallet_balance", &tutorBalance).Error)
	return studentBalance, tutorBalance
}

func TestEnrollPaidCourse(t *testing.T) {
	f := setup(t)

	resp := f.enroll(t, f.studentUser, f.course.ID)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Price 4000, commission 20%: student pays 4000, tutor earns 3200
	studentBalance, tutorBalance := f.balances(t)
	assert.EqualValues(t, 6000, studentBalance)
	assert.EqualValues(t, 3200, tutorBalance)

	var enrollment models.Enrollment
	require.NoError(t, f.db.Where("student_id = ? AND course_id = ?", f.student.ID, f.course.ID).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentStatusEnrolled, enrollment.Status)
	assert.Equal(t, models.PaymentStatusPaid, enrollment.PaymentStatus)
	assert.EqualValues(t, 4000, enrollment.Amount)

	var earnings []models.Earning
	require.NoError(t, f.db.Where("tutor_id = ?", f.tutor.ID).Find(&earnings).Error)
	require.Len(t, earnings, 1)
	assert.EqualValues(t, 3200, earnings[0].Amount)
	assert.Equal(t, models.EarningTypeCourseEnrollment, earnings[0].Type)

	// One persisted notification for each party
	var studentNotes, tutorNotes int64
	f.db.Model(&models.Notification{}).Where("user_id = ?", f.studentUser.ID).Count(&studentNotes)
	f.db.Model(&models.Notification{}).Where("user_id = ?", f.tutorUser.ID).Count(&tutorNotes)
	assert.EqualValues(t, 1, studentNotes)
	assert.EqualValues(t, 1, tutorNotes)
}

func TestEnrollTwiceReturnsConflict(t *testing.T) {
	f := setup(t)

	resp := f.enroll(t, f.studentUser, f.course.ID)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.enroll(t, f.studentUser, f.course.ID)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Second attempt produced zero balance mutation
	studentBalance, tutorBalance := f.balances(t)
	assert.EqualValues(t, 6000, studentBalance)
	assert.EqualValues(t, 3200, tutorBalance)

	var count int64
	f.db.Model(&models.Enrollment{}).Where("student_id = ? AND course_id = ?", f.student.ID, f.course.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEnrollFreeCourse(t *testing.T) {
	f := setup(t)

	free := models.Course{Title: "Intro", TutorID: f.tutor.ID, Duration: 2, Price: 0, IsFree: true, StartDate: time.Now()}
	require.NoError(t, f.db.Create(&free).Error)

	resp := f.enroll(t, f.studentUser, free.ID)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// No balance mutation for free courses
	studentBalance, tutorBalance := f.balances(t)
	assert.EqualValues(t, 10000, studentBalance)
	assert.EqualValues(t, 0, tutorBalance)

	var enrollment models.Enrollment
	require.NoError(t, f.db.Where("student_id = ? AND course_id = ?", f.student.ID, free.ID).First(&enrollment).Error)
	assert.Equal(t, models.PaymentStatusFree, enrollment.PaymentStatus)
	assert.Zero(t, enrollment.Amount)

	var earningCount int64
	f.db.Model(&models.Earning{}).Count(&earningCount)
	assert.Zero(t, earningCount)
}

func TestEnrollInsufficientFunds(t *testing.T) {
	f := setup(t)

	expensive := models.Course{Title: "Masterclass", TutorID: f.tutor.ID, Duration: 40, Price: 99999, StartDate: time.Now()}
	require.NoError(t, f.db.Create(&expensive).Error)

	resp := f.enroll(t, f.studentUser, expensive.ID)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	// Balances unchanged, nothing created
	studentBalance, tutorBalance := f.balances(t)
	assert.EqualValues(t, 10000, studentBalance)
	assert.EqualValues(t, 0, tutorBalance)

	var enrollmentCount, earningCount int64
	f.db.Model(&models.Enrollment{}).Count(&enrollmentCount)
	f.db.Model(&models.Earning{}).Count(&earningCount)
	assert.Zero(t, enrollmentCount)
	assert.Zero(t, earningCount)
}

func TestEnrollCourseNotFound(t *testing.T) {
	f := setup(t)

	resp := f.enroll(t, f.studentUser, 9999)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnrollWithoutStudentProfile(t *testing.T) {
	f := setup(t)

	orphan := models.User{Name: "Olly", Email: "olly@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, f.db.Create(&orphan).Error)

	resp := f.enroll(t, orphan, f.course.ID)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEnrollRequiresStudentRole(t *testing.T) {
	f := setup(t)

	resp := f.enroll(t, f.tutorUser, f.course.ID)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

