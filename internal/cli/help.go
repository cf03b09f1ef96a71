package cli

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// helpRule colors the lines of cobra's help that match re. Lines with two
// groups keep the indent, color the name and render the rest as text.
type helpRule struct {
	re    *regexp.Regexp
	whole func(string) string
}

var helpRules = []helpRule{
	{re: regexp.MustCompile(`^[A-Z][A-Za-z ]+:$`), whole: Info},
	{re: regexp.MustCompile(`^Use "`), whole: Silent},
	{re: regexp.MustCompile(`^( +)(-.+?)( {2,}.*)$`)},
	{re: regexp.MustCompile(`^( {2})(\S+)(\s{2,}.*)$`)},
}

// colorizedHelpFunc renders cobra's usage text with the tracker colors.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		var buf strings.Builder
		cmd.SetOut(&buf)
		cmd.InitDefaultHelpFlag()
		_ = cmd.Usage()
		cmd.SetOut(out)

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		for i, line := range lines {
			lines[i] = colorizeLine(line)
		}
		long := cmd.Long
		if long == "" {
			long = cmd.Short
		}
		if long = strings.TrimSpace(long); long != "" {
			lines = append([]string{Text(long), ""}, lines...)
		}
		cmd.Print(strings.Join(lines, "\n") + "\n")
	}
}

func colorizeLine(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, r := range helpRules {
		if r.whole != nil {
			if r.re.MatchString(trimmed) {
				return r.whole(line)
			}
			continue
		}
		if m := r.re.FindStringSubmatch(line); m != nil {
			return m[1] + Primary(m[2]) + Text(m[3])
		}
	}
	return Text(line)
}
