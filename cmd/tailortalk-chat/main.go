// Command tailortalk-chat runs the assistant as a terminal REPL.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"tailortalk/internal/app"
	"tailortalk/internal/platform/config"
	"tailortalk/internal/platform/logger"
)

func main() {
	l := logger.Get()
	ctx := context.Background()

	svc, cleanup, err := app.Build(ctx, config.New())
	if err != nil {
		l.Panic().Err(err).Msg("assistant wiring failed")
	}
	defer cleanup()

	fmt.Println("Calendar Assistant ready!  (type 'quit' to exit)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lc := strings.ToLower(line); lc == "quit" || lc == "exit" {
			break
		}
		fmt.Println("Assistant:", svc.Handle(ctx, line))
	}
}
