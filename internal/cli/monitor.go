package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nemecec/rs485/internal/tui"
)

var monitorInterval time.Duration

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor <port>",
	Short: "Live view of modem lines and direction control state",
	Long: `Open a port and continuously display the modem line levels together
with the active direction switching mechanism. Useful for watching the
control pin toggle while another process transmits.

Examples:
  rs485 monitor /dev/ttyUSB0
  rs485 monitor --interval 50ms /dev/ttyUSB0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		ctrl, err := openFromFlags(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer ctrl.Close()

		model := tui.NewMonitor(ctrl, portPath, monitorInterval)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", 100*time.Millisecond, "polling interval")
	rootCmd.AddCommand(monitorCmd)
}
