package model

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want ProficiencyLevel
	}{
		{-50, LevelA1},
		{0, LevelA1},
		{250, LevelA1},
		{999, LevelA1},
		{1000, LevelA2},
		{1999, LevelA2},
		{2000, LevelB1},
		{3000, LevelB2},
		{4000, LevelC1},
		{5000, LevelC2},
		{5999, LevelC2},
		{6000, LevelC2},   // capped at the top tier
		{250000, LevelC2}, // stays capped no matter how far XP runs
	}

	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.want {
			t.Errorf("LevelForXP(%d) = %s, want %s", tc.xp, got, tc.want)
		}
	}
}

func TestSyncLevelFollowsXP(t *testing.T) {
	u := User{XP: 2400, Level: LevelA1}
	u.SyncLevel()
	if u.Level != LevelB1 {
		t.Fatalf("SyncLevel left level %s, want B1", u.Level)
	}
}

func TestValidActivityType(t *testing.T) {
	for _, valid := range []ActivityType{ActivityQuiz, ActivityVoice, ActivityCulture, ActivityVocab} {
		if !ValidActivityType(valid) {
			t.Errorf("ValidActivityType(%s) = false, want true", valid)
		}
	}
	if ValidActivityType("gaming") {
		t.Error("ValidActivityType(gaming) = true, want false")
	}
}

func TestValidUpgradePlan(t *testing.T) {
	if !ValidUpgradePlan(PlanPro) || !ValidUpgradePlan(PlanImmersion) {
		t.Error("pro and immersion must be valid upgrade targets")
	}
	if ValidUpgradePlan(PlanStarter) {
		t.Error("starter is not an upgrade target")
	}
	if ValidUpgradePlan("platinum") {
		t.Error("unknown plans must be rejected")
	}
}
