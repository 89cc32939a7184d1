package components

import (
	"strings"
	"testing"

	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/video"
)

func TestListNavigation(t *testing.T) {
	list := NewKeywordList("Keywords", []string{"a", "b", "c"}, 40, 10)

	list.MoveUp()
	if list.Selected != 0 {
		t.Errorf("Expected selection to stay at 0, got %d", list.Selected)
	}

	list.MoveDown()
	list.MoveDown()
	list.MoveDown()
	if list.Selected != 2 {
		t.Errorf("Expected selection to stop at 2, got %d", list.Selected)
	}
	if item := list.SelectedItem(); item == nil || item.ID != "c" {
		t.Errorf("Expected selected item 'c', got %+v", item)
	}
}

func TestListEmpty(t *testing.T) {
	list := NewList("Nothing", 30, 10)
	if list.SelectedItem() != nil {
		t.Error("Expected no selected item")
	}
	if !strings.Contains(list.Render(), "(empty)") {
		t.Error("Expected empty marker in render")
	}
}

func TestListScrolls(t *testing.T) {
	keywords := make([]string, 20)
	for i := range keywords {
		keywords[i] = "kw" + string(rune('a'+i))
	}
	list := NewKeywordList("Keywords", keywords, 40, 8)
	for i := 0; i < 10; i++ {
		list.MoveDown()
	}

	out := list.Render()
	if !strings.Contains(out, "of 20)") {
		t.Errorf("Expected scroll indicator, got:\n%s", out)
	}
	if strings.Contains(out, "kwa") {
		t.Error("Expected first keyword to be scrolled out of view")
	}
}

func TestNewVideoList(t *testing.T) {
	cards := present.PresentAll([]video.Record{
		{Title: "gem", ChannelName: "Tiny", SubscriberCount: 1000, ViewCount: 50000, ViralScore: 50, IsViralGem: true},
		{Title: "plain", ChannelName: "Big", SubscriberCount: 5_000_000, ViewCount: 1000, ViralScore: 0},
	})

	list := NewVideoList(cards, 80, 10)
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(list.Items))
	}
	if list.Items[0].Status != "accent" {
		t.Errorf("Expected gem to be highlighted, got %q", list.Items[0].Status)
	}
	if !strings.Contains(list.Items[0].Description, "Score: 50x") {
		t.Errorf("Expected score badge in description, got %q", list.Items[0].Description)
	}
	if strings.Contains(list.Items[1].Description, "Score") {
		t.Errorf("Expected no badge for zero score, got %q", list.Items[1].Description)
	}
}
