package config

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/dashboard"
	"gopkg.in/yaml.v3"
)

// PolicyFile is the YAML form of the attendance thresholds. Empty fields
// keep the environment values.
type PolicyFile struct {
	LateAfter   string `yaml:"late_after"`
	EarlyBefore string `yaml:"early_before"`
	Granularity string `yaml:"granularity"`
}

// AttendancePolicy builds the attendance policy from the environment values,
// overridden by the policy file when one is configured.
func (c *Config) AttendancePolicy() (dashboard.Policy, error) {
	late, early, granularity := c.Attendance.LateAfter, c.Attendance.EarlyBefore, c.Attendance.Granularity

	if c.Attendance.PolicyFile != "" {
		file, err := LoadPolicyFile(c.Attendance.PolicyFile)
		if err != nil {
			return dashboard.Policy{}, err
		}
		if file.LateAfter != "" {
			late = file.LateAfter
		}
		if file.EarlyBefore != "" {
			early = file.EarlyBefore
		}
		if file.Granularity != "" {
			granularity = file.Granularity
		}
	}

	policy, err := dashboard.NewPolicy(late, early, granularity)
	if err != nil {
		return dashboard.Policy{}, fmt.Errorf("attendance policy: %w", err)
	}
	return policy, nil
}

func LoadPolicyFile(path string) (PolicyFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PolicyFile{}, fmt.Errorf("read policy file: %w", err)
	}

	var file PolicyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return PolicyFile{}, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return file, nil
}
