package repository

import (
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	_ service.QuestionRepo   = (*QuestionRepository)(nil)
	_ service.ResponseStore  = (*ResponseRepository)(nil)
	_ service.ResponseWriter = (*ResponseRepository)(nil)
	_ service.FeedbackRepo   = (*FeedbackRepository)(nil)
	_ service.ReportRepo     = (*ReportRepository)(nil)
	_ service.ExportJobRepo  = (*ExportJobRepository)(nil)
)

// dryRunDB builds statements without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/eval?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestResponsesInPeriodQuery(t *testing.T) {
	db := dryRunDB(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	var responses []model.Response
	stmt := responsesInPeriod(db, []uint{1, 2}, start, end).Find(&responses).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "FROM `responses`")
	assert.Contains(t, sql, "question_id IN (?,?)")
	assert.Contains(t, sql, "created_at >= ? AND created_at < ?")
	assert.Equal(t, []interface{}{uint(1), uint(2), start, end}, stmt.Vars)
}

func TestReportsByProfessorQuery(t *testing.T) {
	db := dryRunDB(t)

	var reports []model.Report
	stmt := reportsByProfessor(db, 7).Find(&reports).Statement
	assert.Contains(t, stmt.SQL.String(), "FROM `reports` WHERE professor_id = ? ORDER BY created_at DESC")
	assert.Equal(t, []interface{}{uint(7)}, stmt.Vars)
}

func TestAttachJoins(t *testing.T) {
	matched := &model.Report{ProfessorID: 1, SubjectID: 10}
	shared := &model.Report{ProfessorID: 1, SubjectID: 11}
	dangling := &model.Report{ProfessorID: 3, SubjectID: 12}

	professors := []model.Professor{{Name: "Ada"}, {Name: "Grace"}}
	professors[0].ID = 1
	professors[1].ID = 2
	subjects := []model.Subject{{Name: "Algebra"}, {Name: "Logic"}}
	subjects[0].ID = 10
	subjects[1].ID = 11

	attachJoins([]*model.Report{matched, shared, dangling}, professors, subjects)

	require.Len(t, matched.Professors, 1)
	assert.Equal(t, "Ada", matched.Professors[0].Name)
	require.Len(t, matched.Subjects, 1)
	assert.Equal(t, "Algebra", matched.Subjects[0].Name)

	require.Len(t, shared.Professors, 1)
	assert.Equal(t, "Ada", shared.Professors[0].Name)
	require.Len(t, shared.Subjects, 1)
	assert.Equal(t, "Logic", shared.Subjects[0].Name)

	assert.Empty(t, dangling.Professors)
	assert.Empty(t, dangling.Subjects)
}
