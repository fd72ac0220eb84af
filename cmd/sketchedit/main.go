package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"sketchedit/internal/config"
	"sketchedit/internal/document"
	"sketchedit/internal/eventbus"
	"sketchedit/internal/session"
	"sketchedit/internal/ui"
)

func main() {
	var configPath, logPath string
	flag.StringVar(&configPath, "config", config.DefaultPath(), "Path to the configuration file")
	flag.StringVar(&logPath, "log", "", "Log file (overrides the configured one)")
	flag.Parse()

	// Load configuration
	configSvc := config.NewConfigServiceAt(configPath)
	cfg, loadErr := configSvc.Load()
	if loadErr != nil {
		// Use default config
		cfg = config.DefaultConfig()
	}

	// Set up logging
	if logPath == "" {
		logPath = cfg.Log.File
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	if loadErr != nil {
		log.Printf("Error loading config from %s: %v", configPath, loadErr)
	}

	// Create event bus
	bus := eventbus.New()

	// Save the configuration whenever a setting is edited
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok {
			return
		}
		if err := configSvc.Save(cfg); err != nil {
			log.Printf("Failed to save config after %s changed: %v", event.Key, err)
		} else {
			log.Printf("Config saved to %s", configSvc.Path())
		}
	})

	doc := document.NewMemory(bus)
	sess, err := session.New(doc, bus, cfg)
	if err != nil {
		fmt.Printf("Error starting session: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	// Create UI model
	uiModel := ui.NewModel(sess, bus)
	defer uiModel.Close()

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseAllMotion())
	uiModel.SetProgram(p)

	// Handle interrupt signals; the quit request is published on the UI
	// goroutine
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(ui.EventMsg{Event: eventbus.QuitRequestedEvent{}})
	}()

	log.Printf("Starting sketchedit with config %s", configSvc.Path())

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
