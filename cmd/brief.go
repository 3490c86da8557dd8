package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daybrief/daybrief/internal/brief"
	"github.com/daybrief/daybrief/internal/news"
	"github.com/daybrief/daybrief/models"
)

var briefAudioPath string

// briefCmd represents the brief command.
var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate a morning brief from open todos and news",
	Long: `Compose a short spoken-word morning brief: open todos grouped by life
role, plus articles from the configured news feeds that match your topic
keywords. Requires llm.apiKey.

With --audio, the brief is also synthesized to an MP3:
  daybrief brief --audio ~/brief.mp3`,
	RunE: runBrief,
}

func init() {
	rootCmd.AddCommand(briefCmd)

	briefCmd.Flags().StringVar(&briefAudioPath, "audio", "", "also synthesize the brief to this MP3 path")
}

func runBrief(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	todos, stale := a.repo.List(ctx, models.TodoFilters{})
	if stale {
		cmd.PrintErrln("(offline: brief built from cached todos)")
	}

	articles := news.NewAggregator(cfg.News).Fetch(ctx)

	text, err := brief.NewGenerator(cfg.LLM).Generate(ctx, todos, articles)
	if err != nil {
		return err
	}
	cmd.Println(text)

	if briefAudioPath != "" {
		if err := brief.NewSpeaker(cfg.LLM).Synthesize(ctx, text, briefAudioPath); err != nil {
			return err
		}
		cmd.Printf("\nAudio written to %s\n", briefAudioPath)
	}
	return nil
}
