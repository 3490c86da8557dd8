// Package brief turns open priorities and relevant news into a short
// strategic morning brief, optionally voiced through text-to-speech.
package brief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/daybrief/daybrief/internal/logging"
	"github.com/daybrief/daybrief/internal/news"
	"github.com/daybrief/daybrief/models"
	"github.com/daybrief/daybrief/types"
)

const systemPrompt = `You are a concise chief-of-staff. Write a spoken-word morning brief, under 300 words, for a busy person balancing several life roles. Lead with today's top priorities, then weave in only the news that actually matters to those roles. Plain sentences, no markdown, no lists.`

// Generator composes and renders briefs through an LLM chat model.
type Generator struct {
	cfg types.LLMConfig
	log zerolog.Logger

	// newChatModel is swappable in tests.
	newChatModel func(ctx context.Context) (model.BaseChatModel, error)
}

// NewGenerator creates a Generator for the configured OpenAI model.
func NewGenerator(cfg types.LLMConfig) *Generator {
	g := &Generator{cfg: cfg, log: logging.Component("brief")}
	g.newChatModel = func(ctx context.Context) (model.BaseChatModel, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:  cfg.ModelName,
			APIKey: cfg.APIKey,
		})
	}
	return g
}

// Generate renders a brief from open todos and fetched articles.
func (g *Generator) Generate(ctx context.Context, todos []models.Todo, articles []news.Article) (string, error) {
	chatModel, err := g.newChatModel(ctx)
	if err != nil {
		return "", fmt.Errorf("create model: %w", err)
	}

	prompt := BuildPrompt(time.Now(), todos, articles)
	g.log.Debug().Int("prompt_chars", len(prompt)).Msg("generating brief")

	resp, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	return resp.Content, nil
}

// BuildPrompt lays out the day's context for the model: the date, open
// tasks grouped by life role with priority markers, then the news digest.
// Completed tasks are excluded.
func BuildPrompt(now time.Time, todos []models.Todo, articles []news.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today is %s.\n\n", now.Format("Monday, January 2, 2006"))

	open := openByRole(todos)
	if len(open) == 0 {
		b.WriteString("Open tasks: none. The slate is clear.\n")
	} else {
		b.WriteString("Open tasks by life role:\n")
		for _, role := range models.LifeRoleCategories {
			roleTodos, ok := open[role.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "\n%s:\n", role.Label)
			for _, t := range roleTodos {
				line := "- " + t.Title
				if t.Priority == models.PriorityHigh {
					line += " (high priority)"
				}
				if t.DueDate != "" {
					line += " (due " + t.DueDate + ")"
				}
				b.WriteString(line + "\n")
			}
		}
	}

	if len(articles) > 0 {
		b.WriteString("\nRelevant news:\n")
		for _, a := range articles {
			fmt.Fprintf(&b, "- [%s] %s", a.Source, a.Title)
			if a.Description != "" {
				fmt.Fprintf(&b, ": %s", truncate(a.Description, 200))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// openByRole buckets pending todos by category, folding unknown categories
// into "other". High priority entries sort first within each bucket.
func openByRole(todos []models.Todo) map[string][]models.Todo {
	out := make(map[string][]models.Todo)
	for _, t := range todos {
		if t.Completed {
			continue
		}
		role := t.Category
		if _, ok := models.LifeRoleByID(role); !ok {
			role = "other"
		}
		if t.Priority == models.PriorityHigh {
			out[role] = append([]models.Todo{t}, out[role]...)
		} else {
			out[role] = append(out[role], t)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
