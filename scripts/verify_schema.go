package main

import (
	"fmt"
	"log"
	"os"

	"p9e.in/tankinspect/config"
	"p9e.in/tankinspect/models"
	"p9e.in/tankinspect/pkg/logging"
)

type tableCheck struct {
	name  string
	model any
}

// Reports whether every inspection table exists and how many rows it holds.
// Usage: go run ./scripts
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logging.Init(logging.Config{Level: "warn", Format: "console"})

	db, err := config.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("========================================")
	fmt.Println("VERIFICATION: Inspection Schema")
	fmt.Println("========================================")
	fmt.Println()

	checks := []tableCheck{
		{"tanks", &models.Tank{}},
		{"shell_settlement_surveys", &models.ShellSettlementSurvey{}},
		{"ut_results", &models.UTResult{}},
		{"edge_settlement_checks", &models.EdgeSettlementCheck{}},
		{"column_plumbness_checks", &models.ColumnPlumbnessCheck{}},
		{"visual_findings", &models.VisualFinding{}},
		{"other_nde", &models.OtherNDE{}},
		{"goal_question_templates", &models.GoalQuestionTemplate{}},
		{"goal_results", &models.GoalResult{}},
	}

	missing := 0
	for _, c := range checks {
		if !db.Migrator().HasTable(c.model) {
			fmt.Printf("❌ %-26s missing\n", c.name)
			missing++
			continue
		}
		var count int64
		if err := db.Model(c.model).Count(&count).Error; err != nil {
			fmt.Printf("❌ %-26s count failed: %v\n", c.name, err)
			missing++
			continue
		}
		fmt.Printf("✅ %-26s %d rows\n", c.name, count)
	}

	var defaults int64
	db.Model(&models.GoalQuestionTemplate{}).Where("is_default = ?", true).Count(&defaults)
	expected := 0
	for _, prompts := range models.DefaultGoalPrompts() {
		expected += len(prompts)
	}
	fmt.Printf("\nDefault goal templates: %d of %d\n", defaults, expected)

	fmt.Println("========================================")
	if missing > 0 || defaults < int64(expected) {
		fmt.Println("❌ PROBLEM: run the server once to migrate and seed")
		os.Exit(1)
	}
	fmt.Println("🎉 SUCCESS: schema is complete")
}
