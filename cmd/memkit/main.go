// Command memkit summarizes a conversation transcript with one model call.
//
// The transcript file contains one turn per line: the role, a tab, then the
// content. Blank lines are skipped.
//
//	user	What is the capital of France?
//	assistant	The capital of France is Paris.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"github.com/weave-labs/memkit"
	"github.com/weave-labs/memkit/config"
	"github.com/weave-labs/memkit/types"
	"github.com/weave-labs/memkit/utils"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("memkit", flag.ExitOnError)
	var (
		transcript   = fs.String("transcript", "", "path to transcript file (role<TAB>content per line)")
		provider     = fs.String("provider", "openai", "model provider")
		model        = fs.String("model", "gpt-4o-mini", "model name")
		rpm          = fs.Int("rpm", 0, "client-side requests per minute limit, 0 to disable")
		logLevel     = fs.String("log-level", "WARN", "log level (OFF, ERROR, WARN, INFO, DEBUG)")
		systemPrompt = fs.String("system-prompt", "", "override the summarization prompt")
	)
	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("MEMKIT"),
	); err != nil {
		return err
	}

	if *transcript == "" {
		return fmt.Errorf("missing required flag: -transcript")
	}

	var level utils.LogLevel
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return err
	}

	conversation, err := loadTranscript(*transcript)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}

	summarizer, err := memkit.New(
		config.SetProvider(*provider),
		config.SetModel(*model),
		config.SetRequestsPerMinute(*rpm),
		config.SetLogLevel(level),
		config.SetSystemPrompt(*systemPrompt),
	)
	if err != nil {
		return err
	}

	result, err := summarizer.RunContext(ctx, conversation)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("no summary produced")
	}

	out, err := result.JSON()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// loadTranscript reads role<TAB>content lines into conversation turns.
// Lines without a tab are treated as user turns.
func loadTranscript(path string) ([]types.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var conversation []types.Message
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		role, content, found := strings.Cut(line, "\t")
		if !found {
			conversation = append(conversation, types.Message{Role: types.RoleUser, Content: line})
			continue
		}
		conversation = append(conversation, types.Message{
			Role:    types.Role(strings.ToLower(strings.TrimSpace(role))),
			Content: content,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return conversation, nil
}
