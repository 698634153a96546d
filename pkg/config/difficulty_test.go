package config

import "testing"

func TestDifficultyValidate(t *testing.T) {
	if err := DefaultDifficulty().Validate(); err != nil {
		t.Fatalf("Default difficulty should be valid: %v", err)
	}

	d := DefaultDifficulty()
	d.EnemyBulletSpeed = 0
	if err := d.Validate(); err == nil {
		t.Error("Zero multiplier should be rejected")
	}
}
