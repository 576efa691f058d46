package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutorly/internal/config"
	"github.com/abhisek/tutorly/internal/progress"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered students and their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		store, err := progress.NewFileStore(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("open progress store: %w", err)
		}

		records, err := store.All()
		if err != nil {
			return fmt.Errorf("read progress data: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No students registered yet.")
			return nil
		}

		names := make([]string, 0, len(records))
		for name := range records {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("%-20s  %-10s  %6s  %6s  %s\n",
			"Student", "Style", "Points", "Turns", "Struggled With")
		fmt.Println(strings.Repeat("─", 80))

		for _, name := range names {
			rec := records[name]
			style := string(rec.LearningStyle)
			if style == "" {
				style = "(unset)"
			}
			topics := strings.Join(rec.StruggledTopics, ", ")
			if topics == "" {
				topics = "-"
			}
			fmt.Printf("%-20s  %-10s  %6d  %6d  %s\n",
				name, style, rec.Points, len(rec.History), topics)
		}
		return nil
	},
}
