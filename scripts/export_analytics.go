// Renders analytics workbooks for a list of professor/subject pairs without
// going through the HTTP API, e.g. at the end of a semester.
//
// Usage: go run scripts/export_analytics.go -targets scripts/export_targets.yaml

package main

import (
	"context"
	"edu_eval_backend/internal/config"
	"edu_eval_backend/internal/repository"
	"edu_eval_backend/internal/service"
	"edu_eval_backend/pkg/database"
	"edu_eval_backend/pkg/logger"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type exportTargets struct {
	Period  string `yaml:"period"`
	Targets []struct {
		ProfessorID uint `yaml:"professor_id"`
		SubjectID   uint `yaml:"subject_id"`
	} `yaml:"targets"`
}

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	targetsPath := flag.String("targets", "scripts/export_targets.yaml", "yaml file listing the exports to render")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	data, err := os.ReadFile(*targetsPath)
	if err != nil {
		log.Fatalf("Failed to read targets: %v", err)
	}
	var targets exportTargets
	if err := yaml.Unmarshal(data, &targets); err != nil {
		log.Fatalf("Failed to parse targets: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	bucketer, err := service.NewPeriodBucketer(cfg.Period)
	if err != nil {
		log.Fatalf("Invalid period configuration: %v", err)
	}
	catalog := service.NewCatalogService(repository.NewQuestionRepository(db), cfg.Catalog.OptionLookupConcurrency)
	analytics := service.NewAnalyticsService(
		repository.NewFeedbackRepository(db),
		repository.NewResponseRepository(db),
		catalog,
		bucketer,
	)
	jobs := repository.NewExportJobRepository(db)
	exports := service.NewExportService(jobs, analytics, service.NewStorageService(&cfg.Storage))

	ctx := context.Background()
	var ids []string
	for _, t := range targets.Targets {
		job, err := exports.CreateExport(ctx, service.ExportRequest{
			ProfessorID: t.ProfessorID,
			SubjectID:   t.SubjectID,
			Period:      targets.Period,
		})
		if err != nil {
			logger.Log.Error("Failed to queue export",
				zap.Uint("professorId", t.ProfessorID), zap.Uint("subjectId", t.SubjectID), zap.Error(err))
			continue
		}
		ids = append(ids, job.ID)
	}
	exports.Wait()

	for _, id := range ids {
		job, err := exports.GetExport(ctx, id)
		if err != nil {
			logger.Log.Error("Failed to read export job", zap.String("job", id), zap.Error(err))
			continue
		}
		url, msg := "", ""
		if job.FileURL != nil {
			url = *job.FileURL
		}
		if job.ErrorMsg != nil {
			msg = *job.ErrorMsg
		}
		log.Printf("%s professor=%d subject=%d status=%s url=%s %s", job.ID, job.ProfessorID, job.SubjectID, job.Status, url, msg)
	}
}
