package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"vnrename/internal/contentflags"
	"vnrename/internal/matching"
	"vnrename/internal/workflow"
)

// linePrompter asks questions on a line-oriented terminal. End of input ends
// the whole run.
type linePrompter struct {
	in       *bufio.Reader
	out      io.Writer
	colorize bool

	readerOnce sync.Once
	lines      chan lineResult
}

type lineResult struct {
	line string
	err  error
}

func newLinePrompter(in io.Reader, out io.Writer, colorize bool) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out, colorize: colorize}
}

var _ workflow.Prompter = (*linePrompter)(nil)

// startReader feeds input lines to p.lines until the first read error, then
// closes the channel. A blocked read never holds up a cancelled prompt.
func (p *linePrompter) startReader() {
	p.readerOnce.Do(func() {
		p.lines = make(chan lineResult)
		go func() {
			defer close(p.lines)
			for {
				line, err := p.in.ReadString('\n')
				p.lines <- lineResult{line: line, err: err}
				if err != nil {
					return
				}
			}
		}()
	})
}

func (p *linePrompter) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.startReader()
	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", workflow.ErrQuit
		}
		if res.err == nil || (errors.Is(res.err, io.EOF) && res.line != "") {
			return strings.TrimSpace(res.line), nil
		}
		if errors.Is(res.err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", workflow.ErrQuit
		}
		return "", res.err
	}
}

func (p *linePrompter) PromptQuery(ctx context.Context, previous, extracted string) (string, error) {
	fmt.Fprintf(p.out, "No results for %q (extracted title %q).\n", previous, extracted)
	return p.readLine(ctx, "Enter a new search term (empty to skip this folder): ")
}

func (p *linePrompter) ChooseCandidate(ctx context.Context, folder string, candidates []matching.Candidate) (int, error) {
	fmt.Fprintf(p.out, "\n%s\n", folder)
	printCandidates(p.out, candidates, p.colorize)
	for {
		answer, err := p.readLine(ctx, fmt.Sprintf("Choose 1-%d, s to skip, q to quit [1]: ", len(candidates)))
		if err != nil {
			return -1, err
		}
		switch strings.ToLower(answer) {
		case "":
			return 0, nil
		case "s":
			return -1, nil
		case "q":
			return -1, workflow.ErrQuit
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(candidates) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Invalid choice %q.\n", answer)
	}
}

func (p *linePrompter) PromptDetails(ctx context.Context, _ string, detected contentflags.Flags) (workflow.Details, error) {
	if markers := detected.Markers(); len(markers) > 0 {
		fmt.Fprintf(p.out, "Detected markers: %s\n", strings.Join(markers, " "))
	}
	flags, err := p.readLine(ctx, "Extra flags, comma separated (empty for none): ")
	if err != nil {
		return workflow.Details{}, err
	}
	tags, err := p.readLine(ctx, "Tags, comma separated (empty for none): ")
	if err != nil {
		return workflow.Details{}, err
	}
	return workflow.Details{Flags: flags, Tags: tags}, nil
}

func (p *linePrompter) ConfirmRename(ctx context.Context, proposal workflow.Proposal) (bool, error) {
	fmt.Fprintf(p.out, "Old: %s\nNew: %s\n", proposal.Folder, proposal.NewName)
	answer, err := p.readLine(ctx, "Rename? [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
