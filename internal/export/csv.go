package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"pomo/internal/store"
)

func ToCSV(sessions []store.Session, projects map[int64]*store.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Project", "Period", "Start", "End", "Duration (s)", "Duration", "Completed"}); err != nil {
		return err
	}

	for _, s := range sessions {
		projectName := "Unknown"
		if p, ok := projects[s.ProjectID]; ok {
			projectName = p.Name
		}
		completed := "no"
		if s.Completed {
			completed = "yes"
		}

		row := []string{
			fmt.Sprintf("%d", s.ID),
			projectName,
			s.Period,
			s.StartedAt.Local().Format(time.RFC3339),
			s.EndedAt.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", s.Duration),
			formatDuration(s.Duration),
			completed,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
