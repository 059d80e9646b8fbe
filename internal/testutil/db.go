// Package testutil 提供测试共用的内存数据库与数据构造方法
package testutil

import (
	"edunity_backend/internal/model"
	"edunity_backend/pkg/database"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 为每个测试打开一个独立的 SQLite 内存库并完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 单连接保证所有查询落在同一个内存库上
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Fixture 以链式方式构造课程目录数据
type Fixture struct {
	t  *testing.T
	DB *gorm.DB
}

func NewFixture(t *testing.T, db *gorm.DB) *Fixture {
	return &Fixture{t: t, DB: db}
}

func (f *Fixture) create(v interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.DB.Create(v).Error)
}

func (f *Fixture) User(first, last string) *model.User {
	u := &model.User{FirstName: first, LastName: last, Email: strings.ToLower(first+"."+last) + "@example.com", Role: model.Student}
	f.create(u)
	return u
}

func (f *Fixture) Course(title string, creatorID uint) *model.Course {
	c := &model.Course{Title: title, Thumbnail: "thumb.png", Status: model.StatusActive, CreatedBy: creatorID}
	f.create(c)
	return c
}

func (f *Fixture) Section(courseID uint, title string, order int) *model.Section {
	s := &model.Section{CourseID: courseID, Title: title, Order: order, Status: model.StatusActive}
	f.create(s)
	return s
}

func (f *Fixture) Lecture(sectionID uint, title string, order int, duration float64) *model.Lecture {
	l := &model.Lecture{SectionID: sectionID, Title: title, Type: model.LectureVideo, ContentLink: "videos/" + title + ".mp4", Duration: duration, Order: order, Status: model.StatusActive}
	f.create(l)
	return l
}

func (f *Fixture) Quiz(sectionID uint, title string, order int, questions int) *model.Quiz {
	q := &model.Quiz{SectionID: &sectionID, Title: title, Order: order, Status: model.StatusActive}
	f.create(q)
	for i := 0; i < questions; i++ {
		f.Question(q.ID, fmt.Sprintf("%s question %d", title, i+1), i+1)
	}
	return q
}

func (f *Fixture) CourseQuiz(courseID uint, title string, order int, questions int) *model.Quiz {
	q := &model.Quiz{CourseID: &courseID, Title: title, Order: order, Status: model.StatusActive}
	f.create(q)
	for i := 0; i < questions; i++ {
		f.Question(q.ID, fmt.Sprintf("%s question %d", title, i+1), i+1)
	}
	return q
}

func (f *Fixture) Question(quizID uint, text string, order int) *model.Question {
	q := &model.Question{QuizID: quizID, Question: text, Options: datatypes.JSON(`["A","B","C","D"]`), Answer: "A", Order: order, Status: model.StatusActive}
	f.create(q)
	return q
}

// Purchase 为用户创建一笔已支付订单
func (f *Fixture) Purchase(userID, courseID uint) {
	o := &model.Order{UserID: userID, PaymentStatus: model.PaymentPaid, Status: model.StatusActive}
	f.create(o)
	f.create(&model.OrderItem{OrderID: o.ID, CourseID: courseID, Status: model.StatusActive})
}

func (f *Fixture) Deactivate(v interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.DB.Model(v).Update("status", model.StatusInactive).Error)
}
