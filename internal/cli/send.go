package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nemecec/rs485"
)

var sendHex bool

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <port> <data>",
	Short: "Send data through the direction-controlled write path",
	Long: `Send data to an RS-485 bus.

The write runs through the turnaround-safe path: with --mode auto the
kernel switches the line where it can, otherwise the control pin is
toggled around the write and the output is drained before the line is
released.

Examples:
  rs485 send /dev/ttyUSB0 "hello"
  rs485 send /dev/ttyUSB0 --hex "01030000000bc40b"
  rs485 send --mode manual --pin dtr /dev/ttyUSB0 "ping"`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		portPath := args[0]

		var data []byte
		if sendHex {
			decoded, err := hex.DecodeString(strings.ReplaceAll(args[1], " ", ""))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error decoding hex data: %v\n", err)
				os.Exit(1)
			}
			data = decoded
		} else {
			data = []byte(args[1])
		}

		ctrl, err := openFromFlags(portPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening port: %v\n", err)
			os.Exit(1)
		}
		defer ctrl.Close()

		n, err := ctrl.Write(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing: %v\n", err)
			os.Exit(1)
		}

		direction := "manual " + ctrl.ControlPin().String() + " toggling"
		if ctrl.Mode() == rs485.ModeDisabled {
			direction = "no direction control"
		} else if ctrl.KernelActive() {
			direction = "kernel delegation"
		}
		fmt.Printf("Sent %d byte(s) to %s (%s)\n", n, portPath, direction)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolVarP(&sendHex, "hex", "x", false, "Interpret data as hex bytes")
}
