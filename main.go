package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YaserZarifi/Deadline-Countdown/internal/autostart"
	"github.com/YaserZarifi/Deadline-Countdown/internal/importer"
	"github.com/YaserZarifi/Deadline-Countdown/internal/logging"
	"github.com/YaserZarifi/Deadline-Countdown/internal/report"
	"github.com/YaserZarifi/Deadline-Countdown/internal/store"
	"github.com/YaserZarifi/Deadline-Countdown/internal/ui"
)

const appName = "deadline-countdown"

func main() {
	importFile := flag.String("import", "", "import deadlines from a YAML file and exit")
	printOnly := flag.Bool("print", false, "print the deadline summary and exit")
	flag.Parse()

	log := logging.Nop()
	if dir, err := store.DefaultDir(); err == nil {
		if fileLog, err := logging.New(filepath.Join(dir, appName+".log")); err == nil {
			log = fileLog
		}
	}
	defer log.Sync()

	deadlines, err := store.NewDeadlineStore("", log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening deadline store: %v\n", err)
		os.Exit(1)
	}
	notes, err := store.NewNoteStore("", log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening note store: %v\n", err)
		os.Exit(1)
	}

	if *importFile != "" {
		data, err := os.ReadFile(*importFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *importFile, err)
			os.Exit(1)
		}
		n, err := importer.Import(deadlines, string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d deadlines\n", n)
		return
	}

	if *printOnly {
		fmt.Print(report.Summary(deadlines.Load(), time.Now()))
		return
	}

	// Best effort: the widget is meant to be around at login, but failing
	// to register must never keep it from running.
	if err := autostart.Register(appName); err != nil {
		log.Warnw("autostart registration failed", "error", err)
	}

	p := tea.NewProgram(ui.NewModel(deadlines, notes, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
