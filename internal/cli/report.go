package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/natasilva/task-tracker-front/internal/api"
	"github.com/natasilva/task-tracker-front/internal/calendar"
	"github.com/natasilva/task-tracker-front/internal/stringutil"
	"github.com/natasilva/task-tracker-front/internal/targets"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultChartWidth = 80

var (
	targetBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	metBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	belowTargetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

type reportAPI interface {
	usersAPI
	TargetReport(ctx context.Context, q api.TargetReportQuery) ([]api.TargetReportRow, error)
}

type reportOptions struct {
	userID api.ID
	rng    calendar.Range
	export string
	output string
	width  int
	now    time.Time
}

func newReportCmd() *cobra.Command {
	return LeafCommand{
		Use:   "report",
		Short: "Compare targets with achieved values for a user",
		Long: `Draws one pair of bars per service: the target for the period and what
was achieved. Without --user a user picker is shown.`,
		StrFlags: append([]StringFlag{
			{Name: "user", Usage: "user ID (default: pick from the user list)"},
			{Name: "export", Usage: "export format (pdf, html)"},
			{Name: "output", Usage: "export file path (default: derived from user and period)"},
		}, periodFlags...),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			client, err := env.client()
			if err != nil {
				return err
			}

			opts := reportOptions{now: time.Now(), width: terminalWidth(cmd.OutOrStdout())}
			if u, _ := cmd.Flags().GetString("user"); u != "" {
				opts.userID = api.ID(u)
			}
			opts.export, _ = cmd.Flags().GetString("export")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.rng, err = parsePeriod(readPeriodFlags(cmd), opts.now)
			if err != nil {
				return err
			}
			return runReport(cmd, client, NewPromptKit(), opts)
		},
	}.Build()
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultChartWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultChartWidth
	}
	return width
}

func runReport(cmd *cobra.Command, client reportAPI, kit PromptKit, opts reportOptions) error {
	switch opts.export {
	case "", "pdf", "html":
	default:
		return fmt.Errorf("unsupported export format %q (supported: pdf, html)", opts.export)
	}

	user, err := reportUser(cmd, client, kit, opts.userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	rng := checkRange(cmd, opts.rng, opts.now)
	rows, err := client.TargetReport(cmdContext(cmd), api.TargetReportQuery{
		UserID: user.ID,
		From:   *rng.Start,
		To:     *rng.End,
	})
	if err != nil {
		return err
	}
	chart := targets.Build(rows)
	title := "Targets of " + user.Name

	if opts.export != "" {
		path := opts.output
		if path == "" {
			path = exportFileName(user.Name, rng, opts.export)
		}
		doc := reportDocument{Title: title, Period: rangeLabel(rng), Chart: chart}
		if opts.export == "pdf" {
			err = renderReportPDF(doc, path)
		} else {
			err = renderReportHTML(doc, path)
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("exported to %s", Primary(path))))
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n", Primary(title), Silent(rangeLabel(rng)))
	if chart.Empty() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), Info("no targets for this period"))
		return nil
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), renderChart(chart, opts.width))
	return nil
}

// reportUser resolves the user of the report. A nil user means the picker
// was left without a choice. A given ID only looks up the display name, so
// a failing user listing falls back to the ID.
func reportUser(cmd *cobra.Command, client usersAPI, kit PromptKit, id api.ID) (*api.User, error) {
	if id != "" {
		users, _ := client.Users(cmdContext(cmd))
		for _, u := range users {
			if u.ID == id {
				return &u, nil
			}
		}
		return &api.User{ID: id, Name: "user " + id.String()}, nil
	}

	users, err := client.Users(cmdContext(cmd))
	if err != nil {
		return nil, err
	}

	if kit.Select == nil {
		return nil, fmt.Errorf("--user is required")
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to report on")
	}

	options := make([]string, 0, len(users)+1)
	for _, u := range users {
		options = append(options, u.Name)
	}
	options = append(options, "Back")
	idx, err := selectIn(kit, "Target report for", options)
	if err != nil {
		return nil, err
	}
	if idx == len(users) {
		return nil, nil
	}
	return &users[idx], nil
}

// exportFileName builds a default export path in the working directory.
func exportFileName(userName string, rng calendar.Range, ext string) string {
	return fmt.Sprintf("targets-%s-%s-%s.%s",
		stringutil.Slugify(userName),
		calendar.FormatISO(*rng.Start),
		calendar.FormatISO(*rng.End),
		ext)
}

// renderChart draws a target bar and an achieved bar for every row.
func renderChart(c targets.Chart, width int) string {
	const labelWidth = 12

	values := make([][2]string, len(c.Rows))
	valueWidth := 0
	for i, r := range c.Rows {
		values[i] = [2]string{
			r.Target.String(),
			fmt.Sprintf("%s (%s%%)", r.Achieved.String(), r.Percent.String()),
		}
		for _, v := range values[i] {
			if len(v) > valueWidth {
				valueWidth = len(v)
			}
		}
	}

	barWidth := width - labelWidth - valueWidth - 2
	if barWidth < 10 {
		barWidth = 10
	}

	bar := func(style lipgloss.Style, n int) string {
		return style.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
	}

	var b strings.Builder
	for i, r := range c.Rows {
		b.WriteString(Text(r.Name))
		if r.Description != "" {
			b.WriteString("  " + Silent(r.Description))
		}
		b.WriteString("\n")

		achievedStyle := belowTargetStyle
		if r.Met() {
			achievedStyle = metBarStyle
		}
		fmt.Fprintf(&b, "  %-*s%s %s\n", labelWidth-2, "target", bar(targetBarStyle, c.Bar(r.Target, barWidth)), values[i][0])
		fmt.Fprintf(&b, "  %-*s%s %s\n", labelWidth-2, "achieved", bar(achievedStyle, c.Bar(r.Achieved, barWidth)), values[i][1])
		b.WriteString("\n")
	}

	target, achieved := c.Totals()
	met := 0
	for _, r := range c.Rows {
		if r.Met() {
			met++
		}
	}
	fmt.Fprintf(&b, "%s\n", Text(fmt.Sprintf("Total: %s of %s, %d of %d targets met", achieved.String(), target.String(), met, len(c.Rows))))
	return b.String()
}
