package services

import (
	"testing"

	"github.com/K-naman-T/techex-ai/models"

	"google.golang.org/genai"
)

func TestHistoryContentsRoleMapping(t *testing.T) {
	contents := historyContents([]models.Turn{
		{Role: models.RoleUser, Text: "where is stall D-30?"},
		{Role: models.RoleAssistant, Text: "Zone D, near the entrance."},
	})

	if len(contents) != 2 {
		t.Fatalf("got %d contents, want 2", len(contents))
	}
	if contents[0].Role != genai.RoleUser {
		t.Errorf("first role = %q, want %q", contents[0].Role, genai.RoleUser)
	}
	if contents[1].Role != genai.RoleModel {
		t.Errorf("second role = %q, want %q", contents[1].Role, genai.RoleModel)
	}
	if len(contents[1].Parts) == 0 || contents[1].Parts[0].Text != "Zone D, near the entrance." {
		t.Errorf("second content parts = %+v", contents[1].Parts)
	}
}

func TestSystemContent(t *testing.T) {
	content := systemContent("You are an assistant.")
	if content == nil || len(content.Parts) == 0 || content.Parts[0].Text != "You are an assistant." {
		t.Fatalf("system content = %+v", content)
	}
}
