package approval

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/somind-ai/somind/pkg/models"
)

// ErrInvalidResponse is returned when a console line does not start with
// a recognized response keyword.
var ErrInvalidResponse = errors.New("response must start with APPROVE, REJECT:, MODIFY:, or OVERRIDE:")

var divider = strings.Repeat("=", 60)

// Console answers checkpoints from a line-oriented reader, normally
// stdin. It blocks the workflow until the operator responds.
type Console struct {
	manager *Manager
	in      *bufio.Scanner
	out     io.Writer
}

// NewConsole creates a console bound to a manager and an input stream.
func NewConsole(manager *Manager, in io.Reader, out io.Writer) *Console {
	return &Console{
		manager: manager,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Serve answers checkpoints until the context is cancelled. Run it in
// its own goroutine alongside the workflow.
func (c *Console) Serve(ctx context.Context) {
	for {
		select {
		case req := <-c.manager.RequestCh():
			kind, reason := c.prompt(req)
			c.manager.SubmitDecision(req.ID, kind, reason)
		case <-ctx.Done():
			return
		}
	}
}

// prompt presents one checkpoint and reads until a valid response or
// end of input. Input exhaustion falls back to approval so a piped run
// completes instead of hanging.
func (c *Console) prompt(req Request) (models.DecisionKind, string) {
	header := color.New(color.FgYellow, color.Bold)
	fmt.Fprintf(c.out, "\n%s\n", divider)
	header.Fprintln(c.out, "HUMAN INPUT REQUIRED - EXECUTION PAUSED")
	fmt.Fprintf(c.out, "%s\n", divider)
	fmt.Fprintf(c.out, "Stage: %s\n", req.Stage)
	fmt.Fprintf(c.out, "%s\n", divider)
	fmt.Fprintln(c.out, req.Prompt)
	if req.Proposal != "" {
		fmt.Fprintf(c.out, "\n%s\n", req.Proposal)
	}
	fmt.Fprintf(c.out, "\n%s\n", divider)
	fmt.Fprintln(c.out, "Response Options:")
	fmt.Fprintln(c.out, "  APPROVE              - Accept the proposal")
	fmt.Fprintln(c.out, "  REJECT: [reason]     - Reject with specific reason")
	fmt.Fprintln(c.out, "  MODIFY: [changes]    - Request modifications")
	fmt.Fprintln(c.out, "  OVERRIDE: [decision] - Override agent decision")
	fmt.Fprintf(c.out, "%s\n", divider)

	for {
		fmt.Fprint(c.out, "Your response: ")
		if !c.in.Scan() {
			color.New(color.FgRed).Fprintln(c.out, "input closed, defaulting to APPROVE")
			return models.DecisionApprove, "default approval"
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			color.New(color.FgRed).Fprintln(c.out, "please provide a response")
			continue
		}

		kind, reason, err := ParseResponse(line)
		if err != nil {
			color.New(color.FgRed).Fprintln(c.out, err.Error())
			continue
		}
		color.New(color.FgGreen).Fprintf(c.out, "response recorded: %s\n", line)
		return kind, reason
	}
}

// ParseResponse maps a console line to a decision kind and its free-form
// reason. The keyword match is case-insensitive; the reason keeps the
// operator's original casing.
func ParseResponse(line string) (models.DecisionKind, string, error) {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)

	switch {
	case strings.HasPrefix(upper, "APPROVE"):
		return models.DecisionApprove, trailingReason(trimmed, "APPROVE"), nil
	case strings.HasPrefix(upper, "REJECT:"):
		return models.DecisionReject, trailingReason(trimmed, "REJECT:"), nil
	case strings.HasPrefix(upper, "MODIFY:"):
		return models.DecisionModify, trailingReason(trimmed, "MODIFY:"), nil
	case strings.HasPrefix(upper, "OVERRIDE:"):
		return models.DecisionOverride, trailingReason(trimmed, "OVERRIDE:"), nil
	default:
		return "", "", ErrInvalidResponse
	}
}

func trailingReason(line, keyword string) string {
	rest := line[len(keyword):]
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "-"))
}
