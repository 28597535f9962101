package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wearcast/stylechat/pkg/chat"
	"github.com/wearcast/stylechat/pkg/utils"
)

// Chat holds everything one terminal conversation needs
type Chat struct {
	catalog chat.Catalog
	prompt  string
	manager *chat.Manager
	orch    *chat.Orchestrator
	state   chat.State
}

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	ctx := context.Background()

	// Initialize the Gemini-backed provider
	provider, err := chat.NewGeminiProvider(ctx, cfg.Get("GEMINI_API_KEY"))
	if err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to initialize Gemini client: %v", err)
	}

	catalog := chat.LoadCatalogWithFallback(cfg.GetWithDefault("MODEL_CATALOG", "config/models.yaml"))
	prompt := utils.LoadPromptWithFallback(cfg.GetWithDefault("SYSTEM_PROMPT_FILE", "prompts/stylist.txt"), chat.FallbackSystemPrompt)

	manager := chat.NewManager(provider)
	session := &Chat{
		catalog: catalog,
		prompt:  prompt,
		manager: manager,
		orch:    chat.NewOrchestrator(manager),
	}

	if err := manager.CreateSession(ctx, &session.state, chat.SessionConfig{Model: catalog.Default, SystemPrompt: prompt}, nil); err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to create session: %v", err)
	}

	if err := session.run(ctx); err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}
}

// run drives the interactive loop until EOF or 'exit'
func (s *Chat) run(ctx context.Context) error {
	fmt.Printf("Stylist chat started on %s. Type '/help' for commands, 'exit' to quit.\n", s.state.Config.Model)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if err := s.command(ctx, input); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		if err := s.send(ctx, input); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// send submits one prompt and prints the reply as it streams in
func (s *Chat) send(ctx context.Context, input string) error {
	fmt.Print("Stylist: ")

	printed := 0
	result, err := s.orch.Submit(ctx, &s.state, input, func(accumulated string) {
		fmt.Print(accumulated[printed:])
		printed = len(accumulated)
	})
	if err != nil {
		fmt.Println()
		return err
	}

	if result.Restored {
		fmt.Println(chat.RestartNotice)
		return nil
	}

	// Replies that never streamed (apology substitutions) still need printing
	if printed == 0 && result.Reply != "" {
		fmt.Print(result.Reply)
	}
	fmt.Println()
	return nil
}

// command handles the slash commands of the loop
func (s *Chat) command(ctx context.Context, input string) error {
	fields := strings.Fields(input)

	switch fields[0] {
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /model <name>  switch models (discards the conversation)")
		fmt.Println("  /models        list selectable models")
		fmt.Println("  /reset         discard the conversation")
		fmt.Println("  /log on|off    toggle per-turn logging")
		fmt.Println("  /export        write the audit log to a CSV file")
		return nil

	case "/models":
		for _, m := range s.catalog.Models {
			marker := " "
			if m == s.state.Config.Model {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, m)
		}
		return nil

	case "/model":
		if len(fields) != 2 {
			return fmt.Errorf("usage: /model <name>")
		}
		if !s.catalog.Contains(fields[1]) {
			return fmt.Errorf("model %q is not in the catalog", fields[1])
		}
		if fields[1] == s.state.Config.Model {
			fmt.Printf("Already on %s.\n", fields[1])
			return nil
		}
		if err := s.manager.EnsureModel(ctx, &s.state, fields[1], s.prompt); err != nil {
			return err
		}
		fmt.Printf("Switched to %s. Conversation discarded.\n", fields[1])
		return nil

	case "/reset":
		if err := s.manager.Reset(ctx, &s.state, s.state.Config.Model, s.prompt); err != nil {
			return err
		}
		fmt.Println("Conversation discarded.")
		return nil

	case "/log":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return fmt.Errorf("usage: /log on|off")
		}
		s.state.AutoLog = fields[1] == "on"
		fmt.Printf("Per-turn logging %s.\n", fields[1])
		return nil

	case "/export":
		if len(s.state.AuditLog) == 0 {
			return fmt.Errorf("the audit log is empty")
		}
		data, err := s.state.AuditLog.ExportCSV()
		if err != nil {
			return err
		}
		filename := chat.ExportFilename(time.Now())
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d entries).\n", filename, len(s.state.AuditLog))
		return nil

	default:
		return fmt.Errorf("unknown command %q, try /help", fields[0])
	}
}
