package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"nationwide/internal/widget"
)

func (cli *commandLine) chat(ctx context.Context, args []string) error {
	chatCmd := flag.NewFlagSet("chat", flag.ContinueOnError)
	chatCmd.SetOutput(cli.out)
	message := chatCmd.String("message", "", "Send one message and exit.")
	if err := chatCmd.Parse(args); err != nil {
		return errHelp
	}

	kb, err := cli.api.Knowledge(ctx)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}
	ctl := widget.NewController(kb, cli.api, cli.logger)

	if *message != "" {
		before := len(ctl.State().Messages)
		cli.printMessages(ctl.Send(ctx, *message), before+1)
		return nil
	}

	cli.printMessages(ctl.State(), 0)
	cli.printQuickActions(ctl.State())
	fmt.Fprintln(cli.out, "Type a question, /help for commands, /quit to leave.")

	scanner := bufio.NewScanner(cli.in)
	for {
		fmt.Fprint(cli.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(cli.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		before := len(ctl.State().Messages)
		if !strings.HasPrefix(line, "/") {
			s := ctl.Send(ctx, line)
			cli.printMessages(s, before+1)
			if s.ShowUniversities {
				cli.printUniversities(s)
			}
			continue
		}

		cmd, arg, _ := strings.Cut(line[1:], " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(cli.out, "/quick [N]      list quick actions, or run number N")
			fmt.Fprintln(cli.out, "/category ID    filter quick actions (all, australia, canada, visa, consultation, universities)")
			fmt.Fprintln(cli.out, "/uni ID         show a partner university profile")
			fmt.Fprintln(cli.out, "/clear          start over")
			fmt.Fprintln(cli.out, "/quit           leave")
		case "quick":
			actions := widget.QuickActions(ctl.State().ActiveCategory)
			var n int
			if _, err := fmt.Sscan(arg, &n); err != nil || n < 1 || n > len(actions) {
				cli.printQuickActions(ctl.State())
				continue
			}
			cli.printMessages(ctl.RunQuickAction(ctx, actions[n-1]), before)
		case "category":
			s := ctl.SetCategory(arg)
			cli.printQuickActions(s)
		case "uni":
			s, err := ctl.SelectUniversity(arg)
			if err != nil {
				fmt.Fprintf(cli.out, "%s: %q\n", err, arg)
				cli.printUniversities(s)
				continue
			}
			cli.printMessages(s, before)
		case "clear":
			s := ctl.Clear()
			cli.printMessages(s, 0)
		default:
			fmt.Fprintf(cli.out, "unknown command /%s, try /help\n", cmd)
		}
	}
}

// printMessages writes the bot messages from index from onwards, in order.
func (cli *commandLine) printMessages(s widget.State, from int) {
	render := widget.RenderPlain
	if cli.color {
		render = widget.RenderANSI
	}
	for _, m := range s.Messages[min(from, len(s.Messages)):] {
		if m.From != widget.FromBot {
			continue
		}
		fmt.Fprintln(cli.out, render(m.Text))
		fmt.Fprintln(cli.out)
	}
}

func (cli *commandLine) printQuickActions(s widget.State) {
	actions := widget.QuickActions(s.ActiveCategory)
	if len(actions) == 0 {
		fmt.Fprintf(cli.out, "No quick actions under %q\n", s.ActiveCategory)
		return
	}
	fmt.Fprintln(cli.out, "Quick actions:")
	for i, qa := range actions {
		fmt.Fprintf(cli.out, "  %d. %s\n", i+1, qa.Label)
	}
}

func (cli *commandLine) printUniversities(s widget.State) {
	fmt.Fprintln(cli.out, "Partner universities (/uni ID):")
	for _, u := range widget.Universities(s.ActiveCategory) {
		fmt.Fprintf(cli.out, "  %-10s %s\n", u.ID, u.Name)
	}
}
