// Package news aggregates topic-filtered articles from RSS feeds for the
// strategic brief.
package news

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/daybrief/daybrief/internal/logging"
	"github.com/daybrief/daybrief/types"
)

const (
	defaultMaxArticles = 12
	defaultMaxPerFeed  = 5
	fetchTimeout       = 15 * time.Second
)

// Article is one relevant news item.
type Article struct {
	Title       string
	Description string
	Source      string
	Category    string
	URL         string
	PublishedAt time.Time
}

// Aggregator fetches configured feeds and keeps the articles matching the
// topic keywords.
type Aggregator struct {
	cfg    types.NewsConfig
	parser *gofeed.Parser
	log    zerolog.Logger
}

// NewAggregator builds an aggregator from config, applying defaults for
// unset limits.
func NewAggregator(cfg types.NewsConfig) *Aggregator {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = defaultMaxArticles
	}
	if cfg.MaxPerFeed <= 0 {
		cfg.MaxPerFeed = defaultMaxPerFeed
	}
	return &Aggregator{
		cfg:    cfg,
		parser: gofeed.NewParser(),
		log:    logging.Component("news"),
	}
}

// Fetch pulls every configured feed, filters by topic relevance, and
// returns the newest articles first, capped at MaxArticles. A feed that
// fails to fetch is logged and skipped; partial results beat none.
func (a *Aggregator) Fetch(ctx context.Context) []Article {
	var articles []Article

	for _, feedSrc := range a.cfg.Feeds {
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		feed, err := a.parser.ParseURLWithContext(feedSrc.URL, fetchCtx)
		cancel()
		if err != nil {
			a.log.Warn().Err(err).Str("feed", feedSrc.Name).Msg("feed fetch failed, skipping")
			continue
		}

		kept := 0
		for _, item := range feed.Items {
			if kept >= a.cfg.MaxPerFeed {
				break
			}
			article := Article{
				Title:       item.Title,
				Description: item.Description,
				Source:      feedSrc.Name,
				Category:    feedSrc.Category,
				URL:         item.Link,
			}
			if item.PublishedParsed != nil {
				article.PublishedAt = *item.PublishedParsed
			}
			if !Relevant(article, a.cfg.Keywords) {
				continue
			}
			articles = append(articles, article)
			kept++
		}
	}

	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	if len(articles) > a.cfg.MaxArticles {
		articles = articles[:a.cfg.MaxArticles]
	}

	a.log.Info().Int("count", len(articles)).Msg("news aggregation complete")
	return articles
}

// Relevant reports whether an article matches the topic keywords. An
// article qualifies when its source category's keywords hit, or when any
// topic's keywords hit (cross-category stories are still worth briefing).
// An empty keyword map keeps everything.
func Relevant(article Article, keywords map[string][]string) bool {
	if len(keywords) == 0 {
		return true
	}

	text := strings.ToLower(article.Title + " " + article.Description)

	if terms, ok := keywords[article.Category]; ok && containsAny(text, terms) {
		return true
	}
	for _, terms := range keywords {
		if containsAny(text, terms) {
			return true
		}
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
