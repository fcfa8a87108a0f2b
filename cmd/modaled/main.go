// Command modaled is a minimal terminal host for the modal command
// interpreter. It exists to prove the host adapter contract is
// sufficient: the buffer, rendering, and undo-free mutation path live
// here, while all key interpretation happens in the interpreter.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/modal/internal/composer"
	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/macro"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/register"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "modaled:", err)
		os.Exit(1)
	}
}

func run() error {
	var path string
	var lines []string
	if len(os.Args) > 1 {
		path = os.Args[1]
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		if len(data) > 0 {
			lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		}
	}

	buf := NewBuffer(path, lines)
	registers := register.NewStore()
	recorder := macro.NewRecorder()
	opts := config.Defaults()

	comp := composer.New(buf, uuid.NewString(), registers, recorder, opts)

	loader := config.NewLoader(opts,
		func(m mode.Mode, lhs, rhs []key.Event) { comp.Keymap().Map(m, lhs, rhs) },
		func(m mode.Mode, lhs []key.Event) { comp.Keymap().Unmap(m, lhs) },
	)
	if home, err := os.UserHomeDir(); err == nil {
		if err := loader.LoadFile(filepath.Join(home, ".modalrc.lua")); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	message := ""
	for {
		draw(screen, buf, comp.PendingKeys(), message, comp.CommandLine(), comp.Recording())

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()

		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			kev, ok := convertKey(tev)
			if !ok {
				continue
			}
			out := comp.Feed(kev)
			message = out.Message
			if out.Err != nil && message == "" {
				message = out.Err.Error()
			}
			for _, action := range out.Actions {
				switch action {
				case "write":
					if err := buf.Save(); err != nil {
						message = err.Error()
					} else {
						message = "written"
					}
				case "quit", "quit!":
					return nil
				}
			}
		}
	}
}
