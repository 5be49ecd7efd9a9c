package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <port>",
	Short: "Show direction control and modem line status",
	Long: `Open a port with the configured RS-485 mode and report how
direction switching will be performed, plus the current modem line
states.

Examples:
  rs485 status /dev/ttyUSB0
  rs485 status --mode manual --pin dtr /dev/ttyUSB0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		ctrl, err := openFromFlags(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer ctrl.Close()

		fmt.Printf("Direction control for %s:\n\n", portPath)
		fmt.Printf("  Mode:              %s\n", ctrl.Mode())
		fmt.Printf("  Control pin:       %s\n", ctrl.ControlPin())
		fmt.Printf("  Kernel delegation: %v\n", ctrl.KernelActive())

		cfg := ctrl.RS485Settings()
		fmt.Printf("  Polarity:          active-%s\n", polarity(cfg.ActiveHigh))
		fmt.Printf("  RX during TX:      %v\n", cfg.RxDuringTx)
		fmt.Printf("  Bus termination:   %v\n", cfg.Termination)
		fmt.Printf("  Delay before send: %v\n", cfg.DelayBeforeSend)
		fmt.Printf("  Delay after send:  %v\n", cfg.DelayAfterSend)

		signals, err := ctrl.ModemSignals()
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nError reading modem signals: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nModem signals:\n\n")
		fmt.Printf("  CTS (Clear To Send):       %s\n", formatSignalState(signals.CTS))
		fmt.Printf("  DSR (Data Set Ready):      %s\n", formatSignalState(signals.DSR))
		fmt.Printf("  RI  (Ring Indicator):      %s\n", formatSignalState(signals.RI))
		fmt.Printf("  DCD (Data Carrier Detect): %s\n", formatSignalState(signals.DCD))
		fmt.Printf("  RTS (Request To Send):     %s\n", formatSignalState(signals.RTS))
		fmt.Printf("  DTR (Data Terminal Ready): %s\n", formatSignalState(signals.DTR))
	},
}

func polarity(activeHigh bool) string {
	if activeHigh {
		return "high"
	}
	return "low"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
