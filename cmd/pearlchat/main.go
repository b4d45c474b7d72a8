package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/gzpearl/pearlchat/internal/client"
	"github.com/gzpearl/pearlchat/internal/config"
	"github.com/gzpearl/pearlchat/internal/identity"
	chatservice "github.com/gzpearl/pearlchat/internal/service/chat"
)

// maxQuestionBytes caps a single input line. Pasted questions can exceed
// bufio.Scanner's default 64KB token limit.
const maxQuestionBytes = 1 << 20

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Resolve identifiers. A broken state dir degrades to in-memory ids.
	var store identity.Store
	fileStore, err := identity.NewFileStore(cfg.Identity.StateDir)
	if err != nil {
		log.Printf("[identity] storage unavailable, ids will not persist: %v", err)
	} else {
		store = fileStore
	}
	provider := identity.NewProvider(store)
	userID := provider.ResolveUserID()
	sessionID := provider.NewSessionID()

	backend := client.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	session := chatservice.NewSession(backend, userID, sessionID)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Println(boldGreen("悦华珍珠 AI 助手宝儿"))
	fmt.Printf("Backend: %s\n", boldCyan(cfg.Backend.BaseURL))
	fmt.Println("Type your question and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	if err := chatLoop(ctx, session, os.Stdin, os.Stdout); err != nil {
		log.Printf("input error: %v", err)
	}
}

// chatLoop reads questions from in and prints replies to out until the input
// is exhausted, the user types "exit", or ctx is cancelled. Reading happens
// on its own goroutine: a blocked stdin read would otherwise survive SIGINT
// (the restarted syscall never observes the cancelled context) and Ctrl+C
// could not quit the prompt.
func chatLoop(ctx context.Context, session *chatservice.Session, in io.Reader, out io.Writer) error {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxQuestionBytes)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(out, boldGreen("你: "))

		var input string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case input, ok = <-lines:
			if !ok {
				err := <-scanErr
				if errors.Is(err, bufio.ErrTooLong) {
					return fmt.Errorf("question longer than %d bytes, please shorten it", maxQuestionBytes)
				}
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
		}

		if strings.ToLower(strings.TrimSpace(input)) == "exit" {
			return nil
		}

		session.SetDraft(input)
		reply, sent := session.Send(ctx)
		if !sent {
			continue
		}

		fmt.Fprintf(out, "%s %s\n\n", boldCyan("宝儿:"), reply)
	}
}
