package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStoredAccountSerializesCredentialAsPassword(t *testing.T) {
	stored := StoredAccount{
		Account: Account{
			ID:    "a1",
			Email: "ada@example.com",
			Name:  "Ada",
			Level: 1,
		},
		Credential: "secret",
	}

	data, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw["password"] != "secret" {
		t.Errorf("password = %v, want secret", raw["password"])
	}
	if raw["email"] != "ada@example.com" {
		t.Errorf("email = %v, want ada@example.com", raw["email"])
	}
}

func TestPublicDropsCredential(t *testing.T) {
	stored := StoredAccount{
		Account:    Account{ID: "a1", Email: "ada@example.com"},
		Credential: "secret",
	}

	data, err := json.Marshal(stored.Public())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["password"]; ok {
		t.Error("public account must not carry a password field")
	}
	if badges, ok := raw["badges"].([]interface{}); !ok || len(badges) != 0 {
		t.Errorf("badges = %v, want empty list", raw["badges"])
	}
}

func TestLearningStyleValid(t *testing.T) {
	tests := []struct {
		style LearningStyle
		want  bool
	}{
		{StyleVisual, true},
		{StyleAuditory, true},
		{StyleKinesthetic, true},
		{"", false},
		{"Visual", false},
		{"reading", false},
	}

	for _, tt := range tests {
		if got := tt.style.Valid(); got != tt.want {
			t.Errorf("LearningStyle(%q).Valid() = %v, want %v", tt.style, got, tt.want)
		}
	}
}

func TestAccountPatchIsEmpty(t *testing.T) {
	if !(AccountPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	xp := 10
	if (AccountPatch{XP: &xp}).IsEmpty() {
		t.Error("patch with xp should not be empty")
	}
	now := time.Now()
	if (AccountPatch{LastLoginDate: &now}).IsEmpty() {
		t.Error("patch with last login should not be empty")
	}
}

func TestStudyRoomHasParticipant(t *testing.T) {
	room := StudyRoom{Participants: []string{"a1", "a2"}}
	if !room.HasParticipant("a2") {
		t.Error("expected a2 to be a participant")
	}
	if room.HasParticipant("a3") {
		t.Error("did not expect a3 to be a participant")
	}
}
