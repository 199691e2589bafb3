package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"
)

var shellSuggestions = []prompt.Suggest{
	{Text: "new", Description: "new ROWS COLS - create an empty sheet"},
	{Text: "set", Description: "set COORD TYPE VALUE - set a cell"},
	{Text: "get", Description: "get COORD - show a cell"},
	{Text: "print", Description: "print FROM TO - print a region"},
	{Text: "save", Description: "save PATH - write S2V"},
	{Text: "load", Description: "load PATH - read S2V"},
	{Text: "info", Description: "show sheet size and counts"},
	{Text: "help", Description: "list commands"},
	{Text: "exit", Description: "leave the shell"},
}

var typeSuggestions = []prompt.Suggest{
	{Text: "text"},
	{Text: "numeric"},
	{Text: "formula"},
}

// runPrompt drives the session from an interactive terminal.
func runPrompt(sess *Session) {
	fmt.Fprintln(sess.Out, "s2v shell. Type 'help' for commands, 'exit' to quit.")

	executor := func(in string) {
		if err := sess.Execute(in); err != nil {
			fmt.Fprintln(sess.Out, errorLine(err))
		}
	}

	p := prompt.New(
		executor,
		completer,
		prompt.OptionTitle("s2v"),
		prompt.OptionPrefix("s2v> "),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && sess.Done()
		}),
	)
	p.Run()
}

// completer suggests command names for the first word and content types
// for the third word of a set command.
func completer(d prompt.Document) []prompt.Suggest {
	words := strings.Fields(d.TextBeforeCursor())
	word := d.GetWordBeforeCursor()
	if word == "" && len(words) > 0 {
		words = append(words, "")
	}

	switch {
	case len(words) <= 1:
		return prompt.FilterHasPrefix(shellSuggestions, word, true)
	case len(words) == 3 && strings.EqualFold(words[0], "set"):
		return prompt.FilterHasPrefix(typeSuggestions, word, true)
	}
	return nil
}

// runScript reads commands line by line from r until EOF or exit.
func runScript(sess *Session, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for !sess.Done() && scanner.Scan() {
		if err := sess.Execute(scanner.Text()); err != nil {
			fmt.Fprintln(sess.Out, errorLine(err))
		}
	}
	return scanner.Err()
}
