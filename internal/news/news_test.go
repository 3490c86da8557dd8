package news

import (
	"testing"
	"time"

	"github.com/daybrief/daybrief/types"
)

func TestRelevant(t *testing.T) {
	keywords := map[string][]string{
		"tennis":  {"wimbledon", "atp", "coaching"},
		"finance": {"interest rate", "bitcoin"},
	}

	tests := []struct {
		name    string
		article Article
		want    bool
	}{
		{
			name:    "own category keyword in title",
			article: Article{Title: "Wimbledon draw announced", Category: "tennis"},
			want:    true,
		},
		{
			name:    "keyword match is case insensitive",
			article: Article{Title: "ATP rankings shake-up", Category: "tennis"},
			want:    true,
		},
		{
			name:    "keyword in description only",
			article: Article{Title: "Markets today", Description: "Bitcoin rallies past resistance", Category: "finance"},
			want:    true,
		},
		{
			name:    "cross category match still relevant",
			article: Article{Title: "Interest rate decision looms", Category: "tennis"},
			want:    true,
		},
		{
			name:    "no keyword anywhere",
			article: Article{Title: "Local bake sale raises funds", Description: "Community event", Category: "finance"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relevant(tt.article, keywords); got != tt.want {
				t.Errorf("Relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelevantEmptyKeywordsKeepsAll(t *testing.T) {
	a := Article{Title: "Anything at all"}
	if !Relevant(a, nil) {
		t.Error("expected article to pass with no keyword config")
	}
	if !Relevant(a, map[string][]string{}) {
		t.Error("expected article to pass with empty keyword map")
	}
}

func TestNewAggregatorDefaults(t *testing.T) {
	agg := NewAggregator(types.NewsConfig{})
	if agg.cfg.MaxArticles != defaultMaxArticles {
		t.Errorf("MaxArticles = %d, want %d", agg.cfg.MaxArticles, defaultMaxArticles)
	}
	if agg.cfg.MaxPerFeed != defaultMaxPerFeed {
		t.Errorf("MaxPerFeed = %d, want %d", agg.cfg.MaxPerFeed, defaultMaxPerFeed)
	}
}

func TestNewAggregatorKeepsExplicitLimits(t *testing.T) {
	agg := NewAggregator(types.NewsConfig{MaxArticles: 3, MaxPerFeed: 1})
	if agg.cfg.MaxArticles != 3 || agg.cfg.MaxPerFeed != 1 {
		t.Errorf("limits overridden: got %d/%d", agg.cfg.MaxArticles, agg.cfg.MaxPerFeed)
	}
}

func TestArticleZeroPublishedSortsLast(t *testing.T) {
	// Fetch sorts newest first; an article with no parsed date must not
	// crowd out dated ones. Verified through the comparator behavior.
	old := Article{Title: "old", PublishedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	undated := Article{Title: "undated"}
	if undated.PublishedAt.After(old.PublishedAt) {
		t.Error("zero time must not sort before a dated article")
	}
}
