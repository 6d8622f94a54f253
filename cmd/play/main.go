package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/northpole-labs/reindeergames/internal/game"
)

// play is a local REPL that drives the game engine directly with an
// in-memory session blob. Useful for trying the question flow without
// Redis or an HTTP client.
func main() {
	bank, err := game.LoadBank()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load question catalog: %v\n", err)
		os.Exit(1)
	}

	engine := game.NewEngine(bank, game.NewSelector(bank, nil), zerolog.Nop())

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	values := map[string]any{}
	resp, err := engine.Execute(game.RequestLaunchGame, nil, values)
	if err != nil {
		fmt.Fprintf(os.Stderr, "launch failed: %v\n", err)
		os.Exit(1)
	}
	values = resp.SessionValues
	fmt.Println(resp.SpokenResponse)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		var (
			request   game.RequestType
			arguments []game.Argument
		)
		switch strings.ToLower(line) {
		case "quit", "stop", "exit":
			request = game.RequestEndGame
		case "help":
			request = game.RequestAnswerHelp
		case "repeat":
			request = game.RequestAnswerRepeat
		case "":
			continue
		default:
			request = game.RequestAnswerGeneric
			arguments = []game.Argument{{Name: "Answer", Value: line}}
		}

		resp, err := engine.Execute(request, arguments, values)
		if err != nil {
			fmt.Fprintf(os.Stderr, "turn failed: %v\n", err)
			os.Exit(1)
		}
		values = resp.SessionValues
		fmt.Println(resp.SpokenResponse)

		if resp.EndSession {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}
}
