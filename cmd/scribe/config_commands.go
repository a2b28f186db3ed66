package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !force {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --force to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set api_key (or export ASSEMBLYAI_API_KEY) before transcribing.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprint(out, " (not present; defaults in effect)")
			}
			fmt.Fprintln(out)

			t := cfg.Transcription
			rows := [][]string{
				{"api.api_key", redactKey(cfg.API.APIKey)},
				{"api.base_url", cfg.API.BaseURL},
				{"transcription.format", t.Format},
				{"transcription.speech_model", t.SpeechModel},
				{"transcription.language_detection", fmt.Sprint(t.LanguageDetection)},
				{"transcription.language", t.Language},
				{"transcription.punctuate", fmt.Sprint(t.Punctuate)},
				{"transcription.format_text", fmt.Sprint(t.FormatText)},
				{"transcription.disfluencies", fmt.Sprint(t.Disfluencies)},
				{"transcription.filter_profanity", fmt.Sprint(t.FilterProfanity)},
				{"transcription.speaker_labels", fmt.Sprint(t.SpeakerLabels)},
				{"transcription.multichannel", fmt.Sprint(t.Multichannel)},
				{"transcription.speech_threshold", formatThreshold(t.SpeechThreshold)},
				{"transcription.chars_per_caption", fmt.Sprint(t.CharsPerCaption)},
				{"transcription.poll_interval_seconds", fmt.Sprint(t.PollIntervalSeconds)},
				{"transcription.timeout_seconds", fmt.Sprint(t.TimeoutSeconds)},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}
}

// redactKey keeps just enough of a credential to recognize it.
func redactKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func formatThreshold(v *float64) string {
	if v == nil {
		return "(unset)"
	}
	return fmt.Sprint(*v)
}
