package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"autostream-assistant/internal/bootstrap"
	"autostream-assistant/internal/config"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/database"
	"autostream-assistant/pkg/store"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const banner = "AutoStream Assistant (type 'exit' to quit)"

// turnFunc runs one turn and returns the next state; executor.Graph.Turn in production.
type turnFunc func(ctx context.Context, session *store.Session, text string) (*store.Session, error)

type repl struct {
	in     *bufio.Scanner
	out    io.Writer
	turn   turnFunc
	intent func(a ...interface{}) string
	failed func(a ...interface{}) string
}

func newREPL(in io.Reader, out io.Writer, turn turnFunc) *repl {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &repl{
		in:     scanner,
		out:    out,
		turn:   turn,
		intent: color.New(color.FgCyan).SprintFunc(),
		failed: color.New(color.FgRed).SprintFunc(),
	}
}

// run loops until exit, quit or end of input and returns the final session.
// A failed turn is reported and the previous session is kept.
func (r *repl) run(ctx context.Context, session *store.Session) *store.Session {
	fmt.Fprintf(r.out, "%s\n\n", banner)

	for {
		fmt.Fprint(r.out, "You: ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			fmt.Fprintln(r.out, "Goodbye!")
			return session
		}

		text := strings.TrimSpace(r.in.Text())
		switch strings.ToLower(text) {
		case "exit", "quit":
			fmt.Fprintln(r.out, "Goodbye!")
			return session
		case "":
			continue
		}

		next, err := r.turn(ctx, session, text)
		if err != nil {
			fmt.Fprintf(r.out, "%s\n\n", r.failed("Error: "+err.Error()))
			continue
		}
		session = next

		if session.Intent != "" {
			fmt.Fprintln(r.out, r.intent(fmt.Sprintf("[intent: %s]", session.Intent)))
		} else {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintf(r.out, "Assistant: %s\n\n", session.LastReply())
	}
}

// openDB is optional, as in the REST binary: it enables lead persistence and
// VECTOR_STORE=pgvector. No connection string means no database.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.Connection == "" {
		return nil, nil
	}
	return database.NewGormDBFromDSN(cfg.Database.Connection, true)
}

func main() {
	cfg := config.Load()

	// File only, so log lines never interleave with the conversation.
	sysLogger := logger.NewIsolatedLogger(cfg.App.LogFilePath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := openDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	container, err := bootstrap.NewContainer(ctx, cfg, bootstrap.Options{
		DB:         gormDB,
		CaptureOut: os.Stdout,
		Logger:     sysLogger,
	})
	if err != nil {
		log.Fatalf("Failed to start assistant: %v", err)
	}
	defer container.Close()

	if err := container.Start(ctx); err != nil {
		sysLogger.Warn("CLI", "Lead consumer failed to start", map[string]interface{}{"error": err.Error()})
	}

	newREPL(os.Stdin, os.Stdout, container.Graph.Turn).run(ctx, store.NewSession(uuid.NewString()))
}
