package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/safearea/pkg/safearea"
)

func newAppearanceCmd() *cobra.Command {
	var (
		host       hostOptions
		theme      string
		systemDark bool
	)
	cmd := &cobra.Command{
		Use:   "appearance",
		Short: "Show the system bar calls for a theme",
		Example: `  safearea appearance --api 33 --theme light
  safearea appearance --api 34 --theme auto --system-dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps, err := host.capabilities(cfg)
			if err != nil {
				return err
			}
			mode, err := safearea.ParseThemeMode(theme)
			if err != nil {
				return err
			}
			isLight := mode.IsLight(systemDark)
			failures, err := host.failures()
			if err != nil {
				return err
			}

			p, rec := newPlugin(caps, failures)
			p.SetSystemBarsIconsAppearance(isLight)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "# %s: %s\n", cfg.AppName, caps)
			printActions(w, fmt.Sprintf("isLight=%v", isLight), rec, false)
			return nil
		},
	}
	host.register(cmd)
	cmd.Flags().StringVar(&theme, "theme", string(safearea.ThemeLight), "App theme: light, dark or auto")
	cmd.Flags().BoolVar(&systemDark, "system-dark", false, "System prefers dark mode (for --theme auto)")
	return cmd
}
