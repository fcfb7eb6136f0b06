package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fitcoach/internal/orchestrator"
)

const chatBanner = `fitcoach interactive chat
Commands: /tools, /reset, /help, /quit
`

// runChat drives the interactive loop: read a line, process it through the
// engine, print the answer. Meta-commands are handled locally and never
// reach the engine.
func runChat() error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted.")
		cancel()
	}()

	fmt.Print(chatBanner)
	fmt.Println(strings.Repeat("-", 40))

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if done := runMetaCommand(s, line); done {
				return nil
			}
			continue
		}

		turnCtx, turnCancel := context.WithTimeout(ctx, 2*time.Minute)
		resp, err := s.engine.ProcessQuery(turnCtx, queryFor(line), s.context)
		turnCancel()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(resp.Content)

		if ctx.Err() != nil {
			return nil
		}
	}
}

// runMetaCommand executes a /command; returns true when the loop should
// exit.
func runMetaCommand(s *session, line string) bool {
	switch strings.ToLower(line) {
	case "/quit", "/exit", "/q":
		fmt.Println("Bye.")
		return true
	case "/reset":
		s.context.Clear()
		fmt.Println("Conversation cleared.")
	case "/tools":
		for _, t := range s.tools.All() {
			fmt.Printf("- %s: %s\n", t.Name, t.Description)
		}
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /tools  list available tools")
		fmt.Println("  /reset  clear the conversation context")
		fmt.Println("  /quit   exit")
	default:
		fmt.Printf("Unknown command %q. Type /help for the list.\n", line)
	}
	return false
}

// queryFor wraps a line as an engine query. Lines like "photo: ..." mark an
// attached image the upstream app would normally flag.
func queryFor(line string) (q orchestrator.Query) {
	if strings.HasPrefix(strings.ToLower(line), "photo:") {
		q.HasImage = true
		q.Text = strings.TrimSpace(line[len("photo:"):])
		return q
	}
	q.Text = line
	return q
}
