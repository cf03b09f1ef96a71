package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const completionMarker = "tracker completion"

// shellConfigs maps shell names to their config file, relative to the home
// directory.
var shellConfigs = map[string]string{
	"bash":       ".bashrc",
	"zsh":        ".zshrc",
	"fish":       ".config/fish/config.fish",
	"powershell": ".config/powershell/Microsoft.PowerShell_profile.ps1",
}

var shellEvalLines = map[string]string{
	"bash":       `eval "$(tracker completion generate bash)"`,
	"zsh":        `eval "$(tracker completion generate zsh)"`,
	"fish":       `tracker completion generate fish | source`,
	"powershell": `tracker completion generate powershell | Out-String | Invoke-Expression`,
}

func newCompletionInstallCmd() *cobra.Command {
	cmd := LeafCommand{
		Use:   "install [SHELL]",
		Short: "Install shell completions into your shell config",
		Args:  cobra.RangeArgs(0, 1),
		BoolFlags: []BoolFlag{
			{Name: "yes", Usage: "skip the confirmation prompt"},
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			} else {
				shell = detectShell(os.Getenv("SHELL"))
				if shell == "" {
					return fmt.Errorf("could not detect shell from $SHELL environment variable; please specify one explicitly (bash, zsh, fish, powershell)")
				}
			}

			homeDir, err := os.UserHomeDir()
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			return runCompletionInstall(cmd, shell, homeDir, ResolveConfirmFunc(yes))
		},
	}.Build()
	cmd.ValidArgs = validShells
	return cmd
}

func runCompletionInstall(cmd *cobra.Command, shell, homeDir string, confirm ConfirmFunc) error {
	configFile, ok := shellConfigs[shell]
	if !ok {
		return fmt.Errorf("unsupported shell for completion install: %s", shell)
	}
	shown := filepath.Join("~", configFile)

	if isCompletionInstalled(shell, homeDir) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("shell completions already installed for %s in %s", Primary(shell), Primary(shown))))
		return nil
	}

	ok, err := confirm(fmt.Sprintf("Install shell completions for %s into %s?", shell, shown))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := installCompletion(shell, homeDir); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("shell completions installed for %s in %s", Primary(shell), Primary(shown))))
	return nil
}

// isCompletionInstalled checks whether the shell config already loads the
// completions.
func isCompletionInstalled(shell, homeDir string) bool {
	configPath, ok := shellConfigs[shell]
	if !ok {
		return false
	}
	data, err := os.ReadFile(filepath.Join(homeDir, configPath))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), completionMarker)
}

// installCompletion appends the eval line to the shell config file. It does
// nothing when the line is already there.
func installCompletion(shell, homeDir string) error {
	if isCompletionInstalled(shell, homeDir) {
		return nil
	}
	configRelPath, ok := shellConfigs[shell]
	if !ok {
		return fmt.Errorf("unsupported shell for completion install: %s", shell)
	}
	configPath := filepath.Join(homeDir, configRelPath)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	_, writeErr := fmt.Fprintf(f, "\n# tracker shell completion\n%s\n", shellEvalLines[shell])
	if closeErr := f.Close(); closeErr != nil {
		return closeErr
	}
	return writeErr
}
