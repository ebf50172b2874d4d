// Package importer loads deadlines in batch from a YAML document.
package importer

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
	"github.com/YaserZarifi/Deadline-Countdown/internal/store"
)

// YAMLDeadline represents a single deadline in the YAML input. Completed
// is a pointer so an omitted flag (keep the stored value) can be told
// apart from an explicit true or false.
type YAMLDeadline struct {
	Course    string `yaml:"course"`
	Date      string `yaml:"date"`
	Time      string `yaml:"time,omitempty"`
	Completed *bool  `yaml:"completed,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Deadlines []YAMLDeadline `yaml:"deadlines"`
}

// Import parses a YAML string and upserts the deadlines it contains.
// Every entry is validated before any write happens: a single bad entry
// rejects the whole batch, mirroring the editor's save rules.
// An entry's completed flag is applied only when present in the YAML;
// omitting it keeps whatever the store already holds for that course.
// Returns the number of deadlines written.
func Import(s *store.DeadlineStore, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Deadlines) == 0 {
		return 0, fmt.Errorf("no deadlines found in YAML")
	}

	type entry struct {
		rec       model.Deadline
		completed *bool
	}
	entries := make([]entry, 0, len(input.Deadlines))
	var invalid []string
	for i, yd := range input.Deadlines {
		rec, err := toRecord(yd)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("entry %d: %v", i+1, err))
			continue
		}
		entries = append(entries, entry{rec: rec, completed: yd.Completed})
	}
	if len(invalid) > 0 {
		return 0, fmt.Errorf("invalid entries:\n  %s", strings.Join(invalid, "\n  "))
	}

	for _, e := range entries {
		if err := s.Upsert(e.rec); err != nil {
			return 0, fmt.Errorf("import %q: %w", e.rec.Course, err)
		}
		if e.completed != nil {
			if err := s.SetCompleted(e.rec.Course, *e.completed); err != nil {
				return 0, fmt.Errorf("import %q: %w", e.rec.Course, err)
			}
		}
	}
	return len(entries), nil
}

func toRecord(yd YAMLDeadline) (model.Deadline, error) {
	if strings.TrimSpace(yd.Course) == "" {
		return model.Deadline{}, fmt.Errorf("course is required")
	}
	if !jalali.ValidateDate(yd.Date) {
		return model.Deadline{}, fmt.Errorf("invalid jalali date %q", yd.Date)
	}
	tod, err := normalizeTime(yd.Time)
	if err != nil {
		return model.Deadline{}, err
	}
	return model.Deadline{
		Course:  strings.TrimSpace(yd.Course),
		DueDate: yd.Date,
		DueTime: tod,
	}, nil
}

// normalizeTime accepts "HH:MM" or "HH:MM:SS" and returns the stored
// "HH:MM:SS" form. An empty time means midnight.
func normalizeTime(tod string) (string, error) {
	if strings.TrimSpace(tod) == "" {
		return "00:00:00", nil
	}
	parts := strings.Split(tod, ":")
	if len(parts) == 2 {
		parts = append(parts, "00")
	}
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid time %q", tod)
	}
	if !jalali.ValidateTime(parts[0], parts[1]) {
		return "", fmt.Errorf("invalid time %q", tod)
	}
	norm := fmt.Sprintf("%s:%s:%s", pad2(parts[0]), pad2(parts[1]), pad2(parts[2]))
	if !jalali.ValidateClock(norm) {
		return "", fmt.Errorf("invalid time %q", tod)
	}
	return norm, nil
}

func pad2(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
