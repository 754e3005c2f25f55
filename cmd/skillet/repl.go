package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/skillet-run/skillet/eval"
	"github.com/skillet-run/skillet/parser"
	"github.com/skillet-run/skillet/runtime"
)

// runREPL mirrors the teacher's runInteractiveShell (cmd/hey/main.go):
// one persistent environment for the whole session, reused across
// lines so `:x := 10` on one line stays visible to `:x * 2` on the
// next. This is why it talks to eval.Environment directly rather than
// going through the stateless skillet.Engine.Evaluate facade, which
// rebuilds a fresh environment on every call.
func runREPL() error {
	rl, err := readline.New("skillet> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	evr := eval.New(runtime.NewRegistry())
	env := eval.NewEnvironment(nil)

	fmt.Println("Skillet interactive shell. Ctrl-D to exit.")
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		expr, err := parser.Parse(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}

		v, err := evr.Evaluate(expr, env)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(v.ToString())
	}
}
