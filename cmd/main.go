package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pagereader/internal/cli/scheme/colours"
	"pagereader/internal/config"
	"pagereader/internal/reader"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {

	config.SetDefaults()

	app := reader.New()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Shutdown()
		fmt.Println("\n" + colours.Warning.Sprint("👋 Goodbye!"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "pagereader",
		Short: "🔊 Read web pages aloud",
		Long: `
┌─────────────────────────────────────┐
│  🔊 pagereader                      │
│  Fetch any web page and listen to   │
│  its text read aloud                │
└─────────────────────────────────────┘

pagereader fetches a page, strips the markup down to plain text,
and reads it with the best speech engine available on this machine.
		`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}

	// Read command
	readCmd := &cobra.Command{
		Use:   "read <url>",
		Short: "📖 Read a web page aloud",
		Long:  "Fetch the page at the given URL, extract its text, and read it aloud",
		Args:  cobra.ExactArgs(1),
		Run:   app.ReadURL,
	}

	// Say command
	sayCmd := &cobra.Command{
		Use:   "say [text...]",
		Short: "💬 Read text aloud",
		Long:  "Read the given text aloud, or standard input when no text is given",
		Run:   app.SayText,
	}

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "📚 Show reading history",
		Long:  "List everything read so far, or clear entries from the history",
		Run:   app.ShowHistory,
	}

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "🗣 List available voices",
		Long:  "List the installed voices for the active or requested language",
		Run:   app.ListVoices,
	}

	// Settings command
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Configure speech settings",
		Long:  "Show or change the reading rate, language, and voice",
		Run:   app.ConfigureSettings,
	}

	// Add flags
	historyCmd.Flags().Bool("clear", false, "Remove all history entries")
	historyCmd.Flags().Int64("delete", 0, "Remove the entry with the given id")
	voicesCmd.Flags().StringP("language", "l", "", "Language tag to list voices for (e.g. en-GB)")
	settingsCmd.Flags().StringP("rate", "r", "", "Reading rate between 0.1 and 1.0")
	settingsCmd.Flags().StringP("language", "l", "", "Language tag (e.g. es-ES)")
	settingsCmd.Flags().StringP("voice", "v", "", "Voice id from the voices list")

	rootCmd.AddCommand(readCmd, sayCmd, historyCmd, voicesCmd, settingsCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	app.Shutdown()
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("pagereader")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.pagereader")
	viper.AddConfigPath(".")

	viper.ReadInConfig()
}
