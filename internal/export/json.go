package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"pomo/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          int64  `json:"id"`
	Project     string `json:"project"`
	ProjectID   int64  `json:"project_id"`
	Period      string `json:"period"`
	StartedAt   string `json:"started_at"`
	EndedAt     string `json:"ended_at"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
	Completed   bool   `json:"completed"`
}

func ToJSON(sessions []store.Session, projects map[int64]*store.Project, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		projectName := "Unknown"
		if p, ok := projects[s.ProjectID]; ok {
			projectName = p.Name
		}

		out.Sessions = append(out.Sessions, jsonSession{
			ID:          s.ID,
			Project:     projectName,
			ProjectID:   s.ProjectID,
			Period:      s.Period,
			StartedAt:   s.StartedAt.Local().Format(time.RFC3339),
			EndedAt:     s.EndedAt.Local().Format(time.RFC3339),
			DurationSec: s.Duration,
			Duration:    formatDuration(s.Duration),
			Completed:   s.Completed,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
